// Package render provides visual outputs for pipeline results.
//
// # Overview
//
// Descriptions are drawn as their dual graph: one node per zone and an edge
// between zones separated by a single curve. The [dual] subpackage builds
// the Graphviz source and renders it in-process.
//
//	dot := dual.ToDOT(d, steps, dual.Options{})
//	svg, err := dual.RenderSVG(dot)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [dual]: github.com/matzehuels/venntower/pkg/render/dual
package render
