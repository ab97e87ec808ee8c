package dataset

import "github.com/arborist-go/bcrt/bcrterr"

// Dataset is an immutable N×D binary feature matrix with a binary label
// vector, stored column-major as one Bitset per feature plus one Bitset for
// the labels. Once constructed, a Dataset is never mutated; all algorithms
// in this module treat *Dataset as read-only and share a single instance
// across searches.
type Dataset struct {
	n        int      // sample count
	d        int      // feature count
	features []Bitset // len == d, one bit per sample
	labels   Bitset   // one bit per sample (1 == positive class)
}

// New builds a Dataset from row-major 0/1 data. rows[i] must have exactly d
// entries of 0 or 1; labels[i] must be 0 or 1. Returns bcrterr.ErrEmptyDataset,
// bcrterr.ErrShapeMismatch, or bcrterr.ErrNonBinaryEntry on invalid input.
func New(rows [][]int, labels []int) (*Dataset, error) {
	n := len(rows)
	if n == 0 || len(labels) != n {
		if n == 0 {
			return nil, bcrterr.ErrEmptyDataset
		}
		return nil, bcrterr.ErrShapeMismatch
	}
	d := len(rows[0])
	if d == 0 {
		return nil, bcrterr.ErrEmptyDataset
	}

	feats := make([]Bitset, d)
	for f := 0; f < d; f++ {
		feats[f] = NewBitset(n)
	}
	labelBits := NewBitset(n)

	for i := 0; i < n; i++ {
		if len(rows[i]) != d {
			return nil, bcrterr.ErrShapeMismatch
		}
		for f := 0; f < d; f++ {
			v := rows[i][f]
			if v != 0 && v != 1 {
				return nil, bcrterr.ErrNonBinaryEntry
			}
			if v == 1 {
				feats[f].SetBit(i)
			}
		}
		lv := labels[i]
		if lv != 0 && lv != 1 {
			return nil, bcrterr.ErrNonBinaryEntry
		}
		if lv == 1 {
			labelBits.SetBit(i)
		}
	}

	return &Dataset{n: n, d: d, features: feats, labels: labelBits}, nil
}

// N returns the sample count.
func (ds *Dataset) N() int { return ds.n }

// D returns the feature count.
func (ds *Dataset) D() int { return ds.d }

// Full returns the mask containing every sample, the root subproblem of any
// search.
func (ds *Dataset) Full() Bitset { return Full(ds.n) }

// SubsetSize returns the number of samples in mask.
func (ds *Dataset) SubsetSize(mask Bitset) int { return mask.PopCount() }

// CountWithFeature returns the number of samples in mask with feature f == 1.
func (ds *Dataset) CountWithFeature(mask Bitset, f int) int {
	return mask.And(ds.features[f]).PopCount()
}

// Split partitions mask into (left, right) on feature f: left holds samples
// with f == 0, right holds samples with f == 1. The returned masks are
// independent values; bitsets in this package are plain word slices, not
// aliased views, so mutating one after Split never affects mask or the
// dataset's feature columns.
func (ds *Dataset) Split(mask Bitset, f int) (left, right Bitset) {
	right = mask.And(ds.features[f])
	left = mask.AndNot(ds.features[f])
	return left, right
}

// LabelCounts returns (n0, n1), the number of samples in mask with label 0
// and label 1 respectively.
func (ds *Dataset) LabelCounts(mask Bitset) (n0, n1 int) {
	size := mask.PopCount()
	n1 = mask.And(ds.labels).PopCount()
	n0 = size - n1
	return n0, n1
}

// ValidFeatures returns the features f for which 0 < count_with_feature(mask,
// f) < subset_size(mask). Deterministically ascending, the order every
// searcher in this module relies on for tie-breaking by smallest feature
// index.
func (ds *Dataset) ValidFeatures(mask Bitset) []int {
	size := mask.PopCount()
	if size == 0 {
		return nil
	}
	out := make([]int, 0, ds.d)
	for f := 0; f < ds.d; f++ {
		c := ds.CountWithFeature(mask, f)
		if c > 0 && c < size {
			out = append(out, f)
		}
	}
	return out
}

// NumValidFeatures is a cheaper variant of len(ValidFeatures(mask)) that
// avoids the intermediate slice allocation; used on the scoring kernel's hot
// path.
func (ds *Dataset) NumValidFeatures(mask Bitset) int {
	size := mask.PopCount()
	if size == 0 {
		return 0
	}
	count := 0
	for f := 0; f < ds.d; f++ {
		c := ds.CountWithFeature(mask, f)
		if c > 0 && c < size {
			count++
		}
	}
	return count
}
