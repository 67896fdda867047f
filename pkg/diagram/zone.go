package diagram

import (
	"cmp"
	"slices"
	"strings"
)

// Zone is the region inside exactly a set of curves. Zones are interned by
// their [Registry], so two zones over the same curve set are the same
// pointer and may be compared with ==.
type Zone struct {
	curves []*Curve // sorted by CompareCurves, no duplicates
	reg    *Registry
}

// Curves returns the curves containing the zone in curve order.
func (z *Zone) Curves() []*Curve { return slices.Clone(z.curves) }

// Len returns the number of curves containing the zone.
func (z *Zone) Len() int { return len(z.curves) }

// IsOutside reports whether the zone lies outside every curve.
func (z *Zone) IsOutside() bool { return len(z.curves) == 0 }

// Contains reports whether c is one of the curves containing the zone.
func (z *Zone) Contains(c *Curve) bool {
	_, found := slices.BinarySearchFunc(z.curves, c, CompareCurves)
	return found
}

// MoveOutside returns the zone with c removed from its curve set.
// If the zone is not inside c, z itself is returned.
func (z *Zone) MoveOutside(c *Curve) *Zone {
	i, found := slices.BinarySearchFunc(z.curves, c, CompareCurves)
	if !found {
		return z
	}
	set := make([]*Curve, 0, len(z.curves)-1)
	set = append(set, z.curves[:i]...)
	set = append(set, z.curves[i+1:]...)
	return z.reg.intern(set)
}

// MoveInside returns the zone with c added to its curve set.
// If the zone is already inside c, z itself is returned.
func (z *Zone) MoveInside(c *Curve) *Zone {
	i, found := slices.BinarySearchFunc(z.curves, c, CompareCurves)
	if found {
		return z
	}
	set := make([]*Curve, 0, len(z.curves)+1)
	set = append(set, z.curves[:i]...)
	set = append(set, c)
	set = append(set, z.curves[i:]...)
	return z.reg.intern(set)
}

// StraddledCurve returns the single curve that separates z from other, or
// nil when the two curve sets do not differ by exactly one curve.
// The result does not depend on argument order.
func (z *Zone) StraddledCurve(other *Zone) *Curve {
	big, small := z, other
	switch len(z.curves) - len(other.curves) {
	case 1:
	case -1:
		big, small = other, z
	default:
		return nil
	}

	var result *Curve
	for _, c := range big.curves {
		if small.Contains(c) {
			continue
		}
		if result != nil {
			return nil
		}
		result = c
	}
	return result
}

// IsSubsetOf reports whether every curve containing z also contains other.
func (z *Zone) IsSubsetOf(other *Zone) bool {
	for _, c := range z.curves {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Compare orders zones by curve count, then element-wise by curve order.
func (z *Zone) Compare(other *Zone) int {
	if n := cmp.Compare(len(z.curves), len(other.curves)); n != 0 {
		return n
	}
	for i, c := range z.curves {
		if n := c.Compare(other.curves[i]); n != 0 {
			return n
		}
	}
	return 0
}

// LabelEquivalent reports whether both zones are inside the same multiset
// of labels, ignoring which same-labeled curve instance is involved.
func (z *Zone) LabelEquivalent(other *Zone) bool {
	if len(z.curves) != len(other.curves) {
		return false
	}
	// Curves are sorted by label first, so label sequences line up.
	for i, c := range z.curves {
		if !c.MatchesLabel(other.curves[i]) {
			return false
		}
	}
	return true
}

// Checksum returns a weighted sum of the containing curves' checksums.
func (z *Zone) Checksum() float64 {
	result := 0.0
	scaling := 3.1
	for _, c := range z.curves {
		result += c.Checksum() * scaling
		scaling += 0.09
	}
	return result
}

// String returns the concatenated curve labels, or "." for the outside zone.
func (z *Zone) String() string {
	if len(z.curves) == 0 {
		return "."
	}
	var b strings.Builder
	for _, c := range z.curves {
		b.WriteString(c.label.text)
	}
	return b.String()
}

// CompareZones is [Zone.Compare] in a form usable with slices.SortFunc.
func CompareZones(a, b *Zone) int { return a.Compare(b) }

// sortedZones returns a sorted, duplicate-free copy of zones.
func sortedZones(zones []*Zone) []*Zone {
	out := slices.Clone(zones)
	slices.SortFunc(out, CompareZones)
	return slices.Compact(out)
}
