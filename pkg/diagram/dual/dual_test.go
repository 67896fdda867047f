package dual

import (
	"errors"
	"testing"

	"github.com/matzehuels/venntower/pkg/diagram"
)

type fixture struct {
	reg     *diagram.Registry
	a, b, c *diagram.Curve
}

func newFixture() fixture {
	reg := diagram.NewRegistry()
	return fixture{
		reg: reg,
		a:   reg.NewCurve(reg.Label("a")),
		b:   reg.NewCurve(reg.Label("b")),
		c:   reg.NewCurve(reg.Label("c")),
	}
}

func TestNewBuildsStraddleEdges(t *testing.T) {
	f := newFixture()
	g := New([]*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.b), f.reg.Zone(f.a, f.b)})

	if got := g.NodeCount(); got != 4 {
		t.Errorf("NodeCount() = %d, want 4", got)
	}
	// Square: . - a, . - b, a - ab, b - ab.
	edges := g.Edges()
	if len(edges) != 4 {
		t.Fatalf("EdgeCount = %d, want 4", len(edges))
	}
	want := []struct {
		from, to int
		label    *diagram.Curve
	}{
		{0, 1, f.a},
		{0, 2, f.b},
		{1, 3, f.b},
		{2, 3, f.a},
	}
	for i, w := range want {
		e := edges[i]
		if e.From != w.from || e.To != w.to || e.Label != w.label {
			t.Errorf("edge %d = %d->%d (%v), want %d->%d (%v)", i, e.From, e.To, e.Label, w.from, w.to, w.label)
		}
	}
	for n := range 4 {
		if d := g.Degree(n); d != 2 {
			t.Errorf("Degree(%d) = %d, want 2", n, d)
		}
	}
}

func TestRemoveNode(t *testing.T) {
	f := newFixture()
	g := New([]*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.b)})

	if err := g.RemoveNode(0); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if got := g.EdgeCount(); got != 0 {
		t.Errorf("EdgeCount() = %d, want 0", got)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount() = %d, want 2", got)
	}
	if _, err := g.Node(0); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Node(0) error = %v, want ErrNodeNotFound", err)
	}
	if err := g.RemoveNode(0); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("second RemoveNode error = %v, want ErrNodeNotFound", err)
	}
	if err := g.RemoveNode(7); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("RemoveNode(7) error = %v, want ErrNodeNotFound", err)
	}
	if n, err := g.Node(1); err != nil || n.Zone != f.reg.Zone(f.a) {
		t.Errorf("Node(1) = %v, %v", n, err)
	}
}

func TestLowDegreeEdge(t *testing.T) {
	f := newFixture()

	t.Run("no edges", func(t *testing.T) {
		g := New([]*diagram.Zone{f.reg.Zone(f.a), f.reg.Zone(f.b)})
		if _, ok := g.LowDegreeEdge(); ok {
			t.Error("expected no edge")
		}
	})

	t.Run("single edge", func(t *testing.T) {
		g := New([]*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.b)})
		e, ok := g.LowDegreeEdge()
		if !ok || e.From != 0 || e.To != 1 || e.Label != f.b {
			t.Errorf("LowDegreeEdge() = %+v, %v", e, ok)
		}
	})

	t.Run("prefers leaf", func(t *testing.T) {
		// Path: a - . - b - bc. Degrees 1, 2, 2, 1.
		g := New([]*diagram.Zone{f.reg.Zone(f.a), f.reg.Outside(), f.reg.Zone(f.b), f.reg.Zone(f.b, f.c)})
		e, ok := g.LowDegreeEdge()
		if !ok {
			t.Fatal("expected an edge")
		}
		if e.From != 0 || e.To != 1 {
			t.Errorf("LowDegreeEdge() = %d->%d, want 0->1", e.From, e.To)
		}
	})

	t.Run("prefers low degree neighbour", func(t *testing.T) {
		// Star around the outside zone plus ab hanging off a and b.
		// Degrees: . = 3, a = 2, b = 2, c = 1, ab = 2.
		g := New([]*diagram.Zone{
			f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.b), f.reg.Zone(f.c), f.reg.Zone(f.a, f.b),
		})
		e, ok := g.LowDegreeEdge()
		if !ok {
			t.Fatal("expected an edge")
		}
		if e.From != 0 || e.To != 3 {
			t.Errorf("LowDegreeEdge() = %d->%d, want 0->3", e.From, e.To)
		}
	})
}

func TestFourTuple(t *testing.T) {
	f := newFixture()

	t.Run("square", func(t *testing.T) {
		g := New([]*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.b), f.reg.Zone(f.a, f.b)})
		nodes, ok := g.FourTuple()
		if !ok {
			t.Fatal("expected a square")
		}
		want := []*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.b), f.reg.Zone(f.a, f.b)}
		seen := map[int]bool{}
		for i, n := range nodes {
			if n.Zone != want[i] {
				t.Errorf("node %d = %s, want %s", i, n.Zone, want[i])
			}
			seen[n.Index] = true
		}
		if len(seen) != 4 {
			t.Errorf("square nodes not distinct: %v", nodes)
		}
	})

	t.Run("path has no square", func(t *testing.T) {
		g := New([]*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.a, f.b)})
		if _, ok := g.FourTuple(); ok {
			t.Error("expected no square")
		}
	})

	t.Run("removed nodes are ignored", func(t *testing.T) {
		g := New([]*diagram.Zone{f.reg.Outside(), f.reg.Zone(f.a), f.reg.Zone(f.b), f.reg.Zone(f.a, f.b)})
		if err := g.RemoveNode(3); err != nil {
			t.Fatal(err)
		}
		if _, ok := g.FourTuple(); ok {
			t.Error("expected no square after removing a corner")
		}
	})
}
