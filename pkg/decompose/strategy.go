package decompose

import (
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// Strategy chooses which curves to remove next.
type Strategy int

const (
	// SortOrder removes the curves with the smallest label first.
	SortOrder Strategy = iota
	// SortOrderReverse removes the curves with the largest label first.
	SortOrderReverse
	// Innermost removes the curves enclosing the fewest zones first.
	Innermost
	// PiercedFirst removes piercing curves first and falls back to Innermost.
	PiercedFirst
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = PiercedFirst

var strategyInfo = []struct {
	name        string
	description string
}{
	SortOrder:        {"sort-order", "decompose in alphabetic order"},
	SortOrderReverse: {"sort-order-reverse", "decompose in reverse alphabetic order"},
	Innermost:        {"innermost", "decompose using fewest-zone contours first"},
	PiercedFirst:     {"pierced-first", "decompose using piercing curves first"},
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{SortOrder, SortOrderReverse, Innermost, PiercedFirst}
}

// String returns the strategy's configuration name.
func (s Strategy) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return strategyInfo[s].name
}

// Description returns a human-readable summary of the strategy.
func (s Strategy) Description() string {
	if !s.Valid() {
		return ""
	}
	return strategyInfo[s].description
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= SortOrder && s <= PiercedFirst
}

// ParseStrategy resolves a configuration name. The empty string selects
// DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return DefaultStrategy, nil
	}
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidStrategy, "unknown decomposition strategy %q", name)
}

// candidates returns the curves to remove next, in curve order. It returns
// nil only when d has no curves left.
func (s Strategy) candidates(d *diagram.Description) []*diagram.Curve {
	switch s {
	case SortOrder:
		return sameLabel(d, d.FirstCurve())
	case SortOrderReverse:
		return sameLabel(d, d.LastCurve())
	case Innermost:
		return innermost(d, d.Curves())
	default:
		return piercedFirst(d)
	}
}

func sameLabel(d *diagram.Description, pivot *diagram.Curve) []*diagram.Curve {
	if pivot == nil {
		return nil
	}
	var out []*diagram.Curve
	for _, c := range d.Curves() {
		if c.MatchesLabel(pivot) {
			out = append(out, c)
		}
	}
	return out
}

// innermost keeps the curves among cs that enclose the fewest zones.
func innermost(d *diagram.Description, cs []*diagram.Curve) []*diagram.Curve {
	var out []*diagram.Curve
	best := -1
	for _, c := range cs {
		n := len(d.ZonesInside(c))
		switch {
		case best < 0 || n < best:
			out, best = []*diagram.Curve{c}, n
		case n == best:
			out = append(out, c)
		}
	}
	return out
}

func piercedFirst(d *diagram.Description) []*diagram.Curve {
	var piercing []*diagram.Curve
	for _, c := range d.Curves() {
		if isPiercing(d, c) {
			piercing = append(piercing, c)
		}
	}
	if len(piercing) > 0 {
		return innermost(d, piercing)
	}
	return innermost(d, d.Curves())
}

// isPiercing reports whether the zones inside c can be removed together:
// every inside zone has a partner across c, and the inside zones form a
// hypercube of 2^k zones over a smallest zone using at most k other curves.
func isPiercing(d *diagram.Description, c *diagram.Curve) bool {
	zones := d.Zones()
	inside := d.ZonesInside(c)

	for _, z := range inside {
		partnered := false
		for _, other := range zones {
			if z.StraddledCurve(other) == c {
				partnered = true
				break
			}
		}
		if !partnered {
			return false
		}
	}

	power := log2(len(inside))
	if power < 0 {
		return false
	}

	// Zones are sorted by size, so the first is a smallest one.
	smallest := inside[0]
	for _, z := range inside {
		if !smallest.IsSubsetOf(z) {
			return false
		}
	}

	added := map[*diagram.Curve]bool{}
	for _, z := range inside {
		for _, zc := range z.Curves() {
			if smallest.Contains(zc) {
				continue
			}
			added[zc] = true
			if len(added) > power {
				return false
			}
		}
	}
	return true
}

// log2 returns k where n == 2^k, or -1 if n is not a power of two.
func log2(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return -1
	}
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}
