// Package dual renders a description as its dual graph.
//
// Every zone becomes a node labelled with its curves and every pair of zones
// separated by exactly one curve becomes an undirected edge labelled with
// that curve. When recomposition steps are supplied, each node is annotated
// with the step that introduced it: the step that added the zone's last
// curve, or step 0 for the outside zone.
//
//	dot := dual.ToDOT(d, steps, dual.Options{})
//	svg, err := dual.RenderSVG(dot)
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package dual
