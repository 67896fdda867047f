package diagram

import (
	"cmp"
	"slices"
	"strings"
)

// Spider marks a named element that may live in any of its feet zones.
type Spider struct {
	name string
	feet []*Zone // sorted by CompareZones, no duplicates
}

// NewSpider creates a spider. Feet are sorted and de-duplicated.
func NewSpider(name string, feet ...*Zone) *Spider {
	return &Spider{name: name, feet: sortedZones(feet)}
}

// Name returns the spider's name, which may be empty.
func (s *Spider) Name() string { return s.name }

// Feet returns the zones the spider occupies in zone order.
func (s *Spider) Feet() []*Zone { return slices.Clone(s.feet) }

// Compare orders spiders by number of feet, then element-wise by zone, then
// by name.
func (s *Spider) Compare(other *Spider) int {
	if n := cmp.Compare(len(s.feet), len(other.feet)); n != 0 {
		return n
	}
	for i, z := range s.feet {
		if n := z.Compare(other.feet[i]); n != 0 {
			return n
		}
	}
	return strings.Compare(s.name, other.name)
}

// String renders the spider in text notation: its feet followed by 'name.
func (s *Spider) String() string {
	parts := make([]string, 0, len(s.feet)+1)
	for _, z := range s.feet {
		parts = append(parts, z.String())
	}
	if s.name != "" {
		parts = append(parts, "'"+s.name)
	}
	return strings.Join(parts, " ")
}
