package diagram

import (
	"cmp"
	"strings"
	"unicode/utf16"
)

// Label is an interned curve name. Obtain labels from [Registry.Label];
// two labels with equal text from the same registry are the same pointer.
type Label struct {
	text string
}

// String returns the label text.
func (l *Label) String() string { return l.text }

// Compare orders labels lexicographically by text.
func (l *Label) Compare(other *Label) int {
	return strings.Compare(l.text, other.text)
}

// Checksum returns the label's contribution to description checksums.
func (l *Label) Checksum() float64 {
	return float64(stringHash(l.text)) * 1e-7
}

// Curve is one closed contour of the diagram. Several curves may carry the
// same label; they are then told apart by their creation id.
type Curve struct {
	label *Label
	id    int
	reg   *Registry
}

// Label returns the curve's label.
func (c *Curve) Label() *Label { return c.label }

// ID returns the creation id. It is only meaningful for ordering.
func (c *Curve) ID() int { return c.id }

// Registry returns the registry that created the curve.
func (c *Curve) Registry() *Registry { return c.reg }

// Clone returns a new curve with the same label and a fresh creation id.
func (c *Curve) Clone() *Curve {
	return c.reg.NewCurve(c.label)
}

// Compare orders curves by label, then by creation id.
func (c *Curve) Compare(other *Curve) int {
	if n := c.label.Compare(other.label); n != 0 {
		return n
	}
	return cmp.Compare(c.id, other.id)
}

// MatchesLabel reports whether both curves carry the same label.
func (c *Curve) MatchesLabel(other *Curve) bool {
	return c.label == other.label
}

// Checksum returns the curve's contribution to checksums. It depends on the
// label only, so re-cloned curves checksum identically.
func (c *Curve) Checksum() float64 { return c.label.Checksum() }

// String returns the label text.
func (c *Curve) String() string { return c.label.text }

// CompareCurves is [Curve.Compare] in a form usable with slices.SortFunc.
func CompareCurves(a, b *Curve) int { return a.Compare(b) }

// stringHash is the 32-bit polynomial string hash (s[0]*31^(n-1) + ... + s[n-1])
// over UTF-16 code units, so checksums agree with diagrams produced elsewhere.
func stringHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}
