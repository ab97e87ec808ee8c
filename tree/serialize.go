package tree

import (
	"strconv"
	"strings"

	"github.com/arborist-go/bcrt/bcrterr"
)

// Serialize renders t in recursive parenthesized form: a leaf serializes to
// the empty string; an internal node with feature f and children L, R
// serializes as "(" + serialize(L) + str(f) + serialize(R) + ")".
func Serialize(t *Tree) string {
	if t == nil || t.IsLeaf() {
		return ""
	}
	var b strings.Builder
	writeNode(&b, t)
	return b.String()
}

func writeNode(b *strings.Builder, t *Tree) {
	if t.IsLeaf() {
		return
	}
	b.WriteByte('(')
	writeNode(b, t.Left)
	b.WriteString(strconv.Itoa(t.Feature))
	writeNode(b, t.Right)
	b.WriteByte(')')
}

// Parse recovers a Tree from its parenthesized serialization. The empty
// string, and the literal "nan", both parse to a single empty leaf. Feature
// indices must be non-negative integers; anything else is
// bcrterr.ErrMalformedSerialization.
func Parse(s string) (*Tree, error) {
	if s == "" || s == "nan" {
		return NewLeaf(), nil
	}
	node, i, err := parseNode(s, 0)
	if err != nil {
		return nil, err
	}
	if i != len(s) {
		return nil, bcrterr.ErrMalformedSerialization
	}
	return node, nil
}

// parseNode parses one node starting at s[i] and returns the node plus the
// index just past it.
func parseNode(s string, i int) (*Tree, int, error) {
	if i >= len(s) || s[i] != '(' {
		return NewLeaf(), i, nil
	}
	left, j, err := parseNode(s, i+1)
	if err != nil {
		return nil, 0, err
	}
	feature, j, err := parseFeature(s, j)
	if err != nil {
		return nil, 0, err
	}
	right, j, err := parseNode(s, j)
	if err != nil {
		return nil, 0, err
	}
	if j >= len(s) || s[j] != ')' {
		return nil, 0, bcrterr.ErrMalformedSerialization
	}
	return NewInternal(feature, left, right), j + 1, nil
}

// parseFeature reads a run of ASCII digits starting at s[i] and returns the
// parsed non-negative integer plus the index just past it.
func parseFeature(s string, i int) (int, int, error) {
	j := i
	for j < len(s) && s[j] != '(' && s[j] != ')' {
		if s[j] < '0' || s[j] > '9' {
			return 0, 0, bcrterr.ErrMalformedSerialization
		}
		j++
	}
	if j == i {
		return 0, 0, bcrterr.ErrMalformedSerialization
	}
	f, err := strconv.Atoi(s[i:j])
	if err != nil {
		return 0, 0, bcrterr.ErrMalformedSerialization
	}
	return f, j, nil
}
