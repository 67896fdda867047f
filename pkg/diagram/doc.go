// Package diagram provides the abstract vocabulary of an Euler diagram: curve
// labels, curves, zones, spiders and immutable diagram descriptions.
//
// # Overview
//
// A [Description] says which regions ("zones") of a diagram exist, where a
// zone is identified purely by the set of curves that contain it. Nothing in
// this package knows about geometry; it is the input and the intermediate
// state of the decomposition/recomposition pipeline.
//
// # Interning
//
// Labels and zones are canonical: a [Registry] hands out exactly one *Label
// per label text and exactly one *Zone per set of curves. Callers may
// therefore compare them with ==. Every pipeline run owns its own Registry,
// so identities never leak between unrelated diagrams:
//
//	reg := diagram.NewRegistry()
//	a := reg.NewCurve(reg.Label("a"))
//	b := reg.NewCurve(reg.Label("b"))
//	ab := reg.Zone(a, b)
//	ab == reg.Zone(b, a) // true
//
// # Split Curves
//
// Several curves may share one label. Curves are ordered by label and then by
// creation order, so even same-labeled curves have a strict total order.
// [Curve.Clone] creates a new same-labeled curve; recomposition uses it when a
// removed curve has to be drawn as several separate circles.
//
// # Concurrency
//
// A Registry, and the curves and zones it created, is not safe for concurrent
// use. Descriptions are immutable once built and may be read concurrently.
package diagram
