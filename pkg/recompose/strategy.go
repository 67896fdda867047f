package recompose

import (
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/diagram/dual"
	"github.com/matzehuels/venntower/pkg/errors"
)

// Strategy decides how zones to split are grouped into clusters.
type Strategy int

const (
	// Nested gives every zone its own curve.
	Nested Strategy = iota
	// SinglyPierced pairs zones across one existing curve.
	SinglyPierced
	// DoublyPierced groups four zones across two existing curves first and
	// then behaves like SinglyPierced.
	DoublyPierced
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = DoublyPierced

var strategyInfo = []struct {
	name        string
	description string
}{
	Nested:        {"nested", "recompose using zero-piercing (nesting)"},
	SinglyPierced: {"singly-pierced", "recompose using single piercings"},
	DoublyPierced: {"doubly-pierced", "recompose using double piercings"},
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Nested, SinglyPierced, DoublyPierced}
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
	return s >= Nested && s <= DoublyPierced
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
	return 0, errors.New(errors.ErrCodeInvalidStrategy, "unknown recomposition strategy %q", name)
}

// MakeClusters partitions zones into clusters. The result is deterministic
// for a given zone order.
func (s Strategy) MakeClusters(zones []*diagram.Zone) []Cluster {
	switch s {
	case Nested:
		return nested(zones)
	case SinglyPierced:
		return singlePiercings(dual.New(zones))
	default:
		return doublePiercings(zones)
	}
}

func nested(zones []*diagram.Zone) []Cluster {
	out := make([]Cluster, 0, len(zones))
	for _, z := range zones {
		out = append(out, NewCluster(z))
	}
	return out
}

// singlePiercings pairs up the endpoints of low-degree edges until the graph
// has no edges left. Remaining nodes become singletons.
func singlePiercings(g *dual.Graph) []Cluster {
	var out []Cluster
	for {
		e, ok := g.LowDegreeEdge()
		if !ok {
			break
		}
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		out = append(out, NewCluster(from.Zone, to.Zone))
		_ = g.RemoveNode(e.From)
		_ = g.RemoveNode(e.To)
	}
	for _, n := range g.Nodes() {
		out = append(out, NewCluster(n.Zone))
	}
	return out
}

func doublePiercings(zones []*diagram.Zone) []Cluster {
	g := dual.New(zones)
	var out []Cluster
	for {
		square, ok := g.FourTuple()
		if !ok {
			break
		}
		out = append(out, NewCluster(square[0].Zone, square[1].Zone, square[2].Zone, square[3].Zone))
		for _, n := range square {
			_ = g.RemoveNode(n.Index)
		}
	}
	return append(out, singlePiercings(g)...)
}
