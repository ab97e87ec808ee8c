package dataset

import (
	"bufio"
	"io"
	"strconv"

	"github.com/arborist-go/bcrt/bcrterr"
)

// Load parses a whitespace-separated text dataset: 0/1 integers, one row per
// sample, D+1 fields per row with the last field the label. d is the
// feature count; the format carries no header, so the caller must know D
// ahead of time (from a companion manifest or CLI flag) rather than have it
// inferred from file content.
//
// The scanner is word-oriented (bufio.ScanWords) rather than line-oriented
// so that extra whitespace or wrapped lines never change the parse.
func Load(r io.Reader, d int) (*Dataset, error) {
	if d <= 0 {
		return nil, bcrterr.ErrEmptyDataset
	}
	width := d + 1

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	var flat []int
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, bcrterr.ErrNonBinaryEntry
		}
		flat = append(flat, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(flat) == 0 {
		return nil, bcrterr.ErrEmptyDataset
	}
	if len(flat)%width != 0 {
		return nil, bcrterr.ErrShapeMismatch
	}

	n := len(flat) / width
	rows := make([][]int, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		row := make([]int, d)
		base := i * width
		for f := 0; f < d; f++ {
			row[f] = flat[base+f]
		}
		rows[i] = row
		labels[i] = flat[base+d]
	}
	return New(rows, labels)
}
