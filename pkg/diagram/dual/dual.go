// Package dual builds the dual graph of a set of zones: one node per zone and
// an edge between every pair of zones separated by exactly one curve.
//
// The graph is working state for recomposition clustering. It is an arena:
// nodes and edges are addressed by index and removal only marks them dead,
// so indices stay valid for the lifetime of the graph.
package dual

import (
	"errors"

	"github.com/matzehuels/venntower/pkg/diagram"
)

var (
	// ErrNodeNotFound is returned when a node index is out of range or dead.
	ErrNodeNotFound = errors.New("node not found")
)

// Node wraps one zone of the graph.
type Node struct {
	Index int
	Zone  *diagram.Zone
}

// Edge joins two nodes whose zones differ by Label, the straddled curve.
// From is always the node that was added first.
type Edge struct {
	Index int
	From  int
	To    int
	Label *diagram.Curve
}

// Other returns the endpoint of e that is not n.
func (e Edge) Other(n int) int {
	if e.From == n {
		return e.To
	}
	return e.From
}

// Graph is a dual graph over a set of zones.
//
// The zero value is not usable - use New.
type Graph struct {
	nodes     []Node
	edges     []Edge
	nodeAlive []bool
	edgeAlive []bool
	incident  [][]int // node index -> edge indices in insertion order
}

// New builds the dual graph of zones. Nodes keep the order of zones and edges
// are added for every pair i < j in that order.
func New(zones []*diagram.Zone) *Graph {
	g := &Graph{
		nodes:     make([]Node, 0, len(zones)),
		nodeAlive: make([]bool, 0, len(zones)),
		incident:  make([][]int, len(zones)),
	}
	for i, z := range zones {
		g.nodes = append(g.nodes, Node{Index: i, Zone: z})
		g.nodeAlive = append(g.nodeAlive, true)
	}
	for i := range zones {
		for j := i + 1; j < len(zones); j++ {
			if c := zones[i].StraddledCurve(zones[j]); c != nil {
				g.addEdge(i, j, c)
			}
		}
	}
	return g
}

func (g *Graph) addEdge(from, to int, label *diagram.Curve) {
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{Index: idx, From: from, To: to, Label: label})
	g.edgeAlive = append(g.edgeAlive, true)
	g.incident[from] = append(g.incident[from], idx)
	g.incident[to] = append(g.incident[to], idx)
}

// Node returns the live node at index i.
func (g *Graph) Node(i int) (Node, error) {
	if i < 0 || i >= len(g.nodes) || !g.nodeAlive[i] {
		return Node{}, ErrNodeNotFound
	}
	return g.nodes[i], nil
}

// Nodes returns the live nodes in insertion order.
func (g *Graph) Nodes() []Node {
	var out []Node
	for i, n := range g.nodes {
		if g.nodeAlive[i] {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the live edges in insertion order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for i, e := range g.edges {
		if g.edgeAlive[i] {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	n := 0
	for _, alive := range g.nodeAlive {
		if alive {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, alive := range g.edgeAlive {
		if alive {
			n++
		}
	}
	return n
}

// Degree returns the number of live edges incident to node n.
func (g *Graph) Degree(n int) int {
	d := 0
	for _, e := range g.incident[n] {
		if g.edgeAlive[e] {
			d++
		}
	}
	return d
}

// IncidentEdges returns the live edges touching node n in insertion order.
func (g *Graph) IncidentEdges(n int) []Edge {
	var out []Edge
	for _, e := range g.incident[n] {
		if g.edgeAlive[e] {
			out = append(out, g.edges[e])
		}
	}
	return out
}

// RemoveNode marks node n and all of its edges dead.
func (g *Graph) RemoveNode(n int) error {
	if n < 0 || n >= len(g.nodes) || !g.nodeAlive[n] {
		return ErrNodeNotFound
	}
	g.nodeAlive[n] = false
	for _, e := range g.incident[n] {
		g.edgeAlive[e] = false
	}
	return nil
}

// LowDegreeEdge returns an edge touching the live node of smallest nonzero
// degree, choosing among that node's edges the one whose other endpoint has
// the smallest degree. Ties go to the first node and edge in insertion order.
// It reports false when no edges remain.
func (g *Graph) LowDegreeEdge() (Edge, bool) {
	best, bestDegree := -1, 0
	for i := range g.nodes {
		if !g.nodeAlive[i] {
			continue
		}
		d := g.Degree(i)
		if d == 0 {
			continue
		}
		if best < 0 || d < bestDegree {
			best, bestDegree = i, d
		}
	}
	if best < 0 {
		return Edge{}, false
	}

	var result Edge
	resultDegree := -1
	for _, e := range g.IncidentEdges(best) {
		d := g.Degree(e.Other(best))
		if resultDegree < 0 || d < resultDegree {
			result, resultDegree = e, d
		}
	}
	return result, true
}

// FourTuple searches for a square n, n2, n3, n4 where n-n2 and n2-n4 are
// edges and n-n3 is an edge carrying the same curve as n2-n4. The nodes are
// returned in that order; false means no square exists.
func (g *Graph) FourTuple() ([4]Node, bool) {
	for n := range g.nodes {
		if !g.nodeAlive[n] {
			continue
		}
		for _, e := range g.IncidentEdges(n) {
			if e.From != n {
				continue
			}
			n2 := e.To
			for _, e2 := range g.IncidentEdges(n2) {
				if e2.From != n2 {
					continue
				}
				for _, e3 := range g.IncidentEdges(n) {
					if e3.Index == e.Index || e3.Label != e2.Label {
						continue
					}
					n3 := e3.Other(n)
					return [4]Node{g.nodes[n], g.nodes[n2], g.nodes[n3], g.nodes[e2.To]}, true
				}
			}
		}
	}
	return [4]Node{}, false
}
