package diagram

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/venntower/pkg/errors"
)

// Description is an immutable snapshot of a diagram: its curves, the zones
// that must be present, the shaded subset of those zones and its spiders.
//
// Decomposition and recomposition never mutate a Description; every step
// builds a new one.
type Description struct {
	curves  []*Curve  // sorted, unique
	zones   []*Zone   // sorted, unique
	shaded  []*Zone   // sorted, unique
	spiders []*Spider // input order
}

// NewDescription creates a description. Curves and zones are sorted and
// de-duplicated; spiders keep their order. Consistency between the parts
// is not enforced here, see [Description.Validate].
func NewDescription(curves []*Curve, zones, shaded []*Zone, spiders []*Spider) *Description {
	cs := slices.Clone(curves)
	slices.SortFunc(cs, CompareCurves)
	return &Description{
		curves:  slices.Compact(cs),
		zones:   sortedZones(zones),
		shaded:  sortedZones(shaded),
		spiders: slices.Clone(spiders),
	}
}

// Curves returns the curves in curve order.
func (d *Description) Curves() []*Curve { return slices.Clone(d.curves) }

// Zones returns the zones in zone order.
func (d *Description) Zones() []*Zone { return slices.Clone(d.zones) }

// ShadedZones returns the shaded zones in zone order.
func (d *Description) ShadedZones() []*Zone { return slices.Clone(d.shaded) }

// Spiders returns the spiders in the order they were given.
func (d *Description) Spiders() []*Spider { return slices.Clone(d.spiders) }

// NumCurves returns the number of curves.
func (d *Description) NumCurves() int { return len(d.curves) }

// NumZones returns the number of zones.
func (d *Description) NumZones() int { return len(d.zones) }

// FirstCurve returns the smallest curve, or nil if there are none.
func (d *Description) FirstCurve() *Curve {
	if len(d.curves) == 0 {
		return nil
	}
	return d.curves[0]
}

// LastCurve returns the largest curve, or nil if there are none.
func (d *Description) LastCurve() *Curve {
	if len(d.curves) == 0 {
		return nil
	}
	return d.curves[len(d.curves)-1]
}

// Labels returns the distinct curve labels in label order.
func (d *Description) Labels() []*Label {
	var out []*Label
	for _, c := range d.curves {
		if n := len(out); n == 0 || out[n-1] != c.label {
			out = append(out, c.label)
		}
	}
	return out
}

// HasCurve reports whether c is one of the description's curves.
func (d *Description) HasCurve(c *Curve) bool {
	_, found := slices.BinarySearchFunc(d.curves, c, CompareCurves)
	return found
}

// HasZone reports whether z is one of the description's zones.
func (d *Description) HasZone(z *Zone) bool {
	_, found := slices.BinarySearchFunc(d.zones, z, CompareZones)
	return found
}

// HasShadedZone reports whether z is shaded.
func (d *Description) HasShadedZone(z *Zone) bool {
	_, found := slices.BinarySearchFunc(d.shaded, z, CompareZones)
	return found
}

// IncludesLabel reports whether any curve carries l.
func (d *Description) IncludesLabel(l *Label) bool {
	for _, c := range d.curves {
		if c.label == l {
			return true
		}
	}
	return false
}

// LabelEquivalentZone returns the first zone label-equivalent to z, or nil.
func (d *Description) LabelEquivalentZone(z *Zone) *Zone {
	for _, zone := range d.zones {
		if zone.LabelEquivalent(z) {
			return zone
		}
	}
	return nil
}

// ZonesInside returns the zones inside c in zone order.
func (d *Description) ZonesInside(c *Curve) []*Zone {
	var out []*Zone
	for _, z := range d.zones {
		if z.Contains(c) {
			out = append(out, z)
		}
	}
	return out
}

// LabelEquivalent reports whether both descriptions have the same labels
// and the same zones when curves are identified by label only. Shading and
// spiders are not compared. Curve
// instance counts may differ: a label drawn as two curves matches a label
// drawn as one as long as the zone topology agrees.
func (d *Description) LabelEquivalent(other *Description) bool {
	if !slices.EqualFunc(d.Labels(), other.Labels(), func(a, b *Label) bool {
		return a.text == b.text
	}) {
		return false
	}
	return slices.Equal(labelSignatures(d.zones), labelSignatures(other.zones))
}

// labelSignatures returns the sorted, distinct label sets of zones.
func labelSignatures(zones []*Zone) []string {
	out := make([]string, 0, len(zones))
	for _, z := range zones {
		labels := make([]string, 0, len(z.curves))
		for _, c := range z.curves {
			if n := len(labels); n == 0 || labels[n-1] != c.label.text {
				labels = append(labels, c.label.text)
			}
		}
		out = append(out, strings.Join(labels, "\x00"))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Checksum returns a weighted sum over curves and the zones inside each
// curve. Equal descriptions produce bit-identical checksums.
func (d *Description) Checksum() float64 {
	scaling := 2.1
	result := 0.0
	for _, c := range d.curves {
		result += c.Checksum() * scaling
		scaling += 0.12
		for _, z := range d.zones {
			if z.Contains(c) {
				result += z.Checksum() * scaling
				scaling += 0.09
			}
		}
	}
	return result
}

// Sentence renders the zones as a comma-separated list for debugging.
// The outside zone prints as 0 and curves sharing a label with another
// curve are suffixed with their id.
func (d *Description) Sentence() string {
	printable := make(map[*Curve]string, len(d.curves))
	for i, c := range d.curves {
		split := (i > 0 && d.curves[i-1].label == c.label) ||
			(i+1 < len(d.curves) && d.curves[i+1].label == c.label)
		if split {
			printable[c] = c.label.text + "_" + strconv.Itoa(c.id)
		} else {
			printable[c] = c.label.text
		}
	}

	var b strings.Builder
	for i, z := range d.zones {
		if i > 0 {
			b.WriteByte(',')
		}
		if z.IsOutside() {
			b.WriteByte('0')
			continue
		}
		for _, c := range z.curves {
			if s, ok := printable[c]; ok {
				b.WriteString(s)
			} else {
				b.WriteString(c.label.text)
			}
		}
	}
	return b.String()
}

// Notation renders the description in the text notation read by
// pkg/io: zones, then shaded zones, then one field per spider. The outside
// zone is implied in the zone list.
func (d *Description) Notation() string {
	var zones []string
	for _, z := range d.zones {
		if !z.IsOutside() {
			zones = append(zones, z.String())
		}
	}
	fields := []string{strings.Join(zones, " ")}

	if len(d.shaded) > 0 || len(d.spiders) > 0 {
		shaded := make([]string, 0, len(d.shaded))
		for _, z := range d.shaded {
			shaded = append(shaded, z.String())
		}
		fields = append(fields, strings.Join(shaded, " "))
	}
	for _, s := range d.spiders {
		fields = append(fields, s.String())
	}
	return strings.Join(fields, ", ")
}

// String returns the sentence form.
func (d *Description) String() string { return d.Sentence() }

// Validate checks the advisory consistency rules: every zone lies within the
// description's curves, the outside zone is present, every shaded zone and
// spider foot is a zone, and every curve bounds at least one zone.
func (d *Description) Validate() error {
	hasOutside := false
	bounded := make(map[*Curve]bool, len(d.curves))
	for _, z := range d.zones {
		if z.IsOutside() {
			hasOutside = true
		}
		for _, c := range z.curves {
			if !d.HasCurve(c) {
				return errors.New(errors.ErrCodeInvalidDescription,
					"zone %s uses curve %s which is not in the description", z, c)
			}
			bounded[c] = true
		}
	}
	if !hasOutside {
		return errors.New(errors.ErrCodeInvalidDescription, "outside zone is missing")
	}
	for _, c := range d.curves {
		if !bounded[c] {
			return errors.New(errors.ErrCodeInvalidDescription, "curve %s bounds no zone", c)
		}
	}
	for _, z := range d.shaded {
		if !d.HasZone(z) {
			return errors.New(errors.ErrCodeInvalidDescription, "shaded zone %s is not a zone", z)
		}
	}
	for _, s := range d.spiders {
		for _, z := range s.feet {
			if !d.HasZone(z) {
				return errors.New(errors.ErrCodeInvalidDescription,
					"spider %q stands in %s which is not a zone", s.name, z)
			}
		}
	}
	return nil
}
