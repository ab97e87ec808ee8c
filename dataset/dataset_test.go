package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborist-go/bcrt/bcrterr"
	"github.com/arborist-go/bcrt/dataset"
)

func TestNewRejectsBadShapes(t *testing.T) {
	_, err := dataset.New(nil, nil)
	require.ErrorIs(t, err, bcrterr.ErrEmptyDataset)

	_, err = dataset.New([][]int{{0, 1}}, []int{0, 1})
	require.ErrorIs(t, err, bcrterr.ErrShapeMismatch)

	_, err = dataset.New([][]int{{0, 1}, {1, 2}}, []int{0, 1})
	require.ErrorIs(t, err, bcrterr.ErrNonBinaryEntry)

	_, err = dataset.New([][]int{{0}, {1}}, []int{0, 2})
	require.ErrorIs(t, err, bcrterr.ErrNonBinaryEntry)
}

// s1 is a single-feature dataset fixture with perfect separation.
func s1(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([][]int{{0}, {0}, {1}, {1}}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	return ds
}

func TestSplitAndLabelCounts(t *testing.T) {
	ds := s1(t)
	full := ds.Full()
	left, right := ds.Split(full, 0)
	require.Equal(t, 2, ds.SubsetSize(left))
	require.Equal(t, 2, ds.SubsetSize(right))

	n0, n1 := ds.LabelCounts(left)
	require.Equal(t, 2, n0)
	require.Equal(t, 0, n1)

	n0, n1 = ds.LabelCounts(right)
	require.Equal(t, 0, n0)
	require.Equal(t, 2, n1)
}

func TestValidFeaturesOrderedAscending(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0, 1},
		{0, 1, 1},
		{1, 0, 0},
		{1, 1, 0},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	valid := ds.ValidFeatures(ds.Full())
	require.Equal(t, []int{0, 1, 2}, valid)
}

func TestNumValidFeaturesMatchesLen(t *testing.T) {
	ds := s1(t)
	require.Equal(t, len(ds.ValidFeatures(ds.Full())), ds.NumValidFeatures(ds.Full()))

	degenerate, err := dataset.New([][]int{{0, 0}, {0, 0}, {0, 0}, {0, 0}}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	require.Equal(t, 0, degenerate.NumValidFeatures(degenerate.Full()))
}

func TestLoadParsesWhitespaceSeparatedRows(t *testing.T) {
	r := strings.NewReader("0 0\n0 0\n1 1\n1 1\n")
	ds, err := dataset.Load(r, 1)
	require.NoError(t, err)
	require.Equal(t, 4, ds.N())
	require.Equal(t, 1, ds.D())
}

func TestLoadRejectsRaggedInput(t *testing.T) {
	r := strings.NewReader("0 0 1\n1 1\n")
	_, err := dataset.Load(r, 2)
	require.ErrorIs(t, err, bcrterr.ErrShapeMismatch)
}

func TestBitsetFingerprintStableAndDistinguishing(t *testing.T) {
	a := dataset.NewBitset(130)
	a.SetBit(1)
	a.SetBit(129)
	b := a.Clone()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.True(t, a.Equal(b))

	b.SetBit(5)
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	require.False(t, a.Equal(b))
}
