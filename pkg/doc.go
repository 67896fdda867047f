// Package pkg provides the core libraries for venntower.
//
// # Overview
//
// Venntower works on abstract Euler diagrams: a set of labelled curves and
// the zones (sets of curves) that a drawing must contain. Before a diagram
// can be drawn, it is decomposed by removing one curve at a time, and then
// recomposed by adding the curves back. Each recomposition step says which
// existing zones the new curve must split, which is exactly what a drawing
// routine needs to place it.
//
// # Architecture
//
// The data flow through venntower:
//
//	Notation / JSON / TOML description
//	         ↓
//	    [io] package (parse into a fresh [diagram] registry)
//	         ↓
//	    [decompose] package (remove curves, one step each)
//	         ↓
//	    [recompose] package (add curves back, split zones)
//	         ↓
//	    [render/dual] package (dual graph as DOT or SVG)
//	         ↓
//	    plan JSON / text / DOT / SVG / PNG / PDF output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/venntower/pkg/decompose"
//	    "github.com/matzehuels/venntower/pkg/diagram"
//	    "github.com/matzehuels/venntower/pkg/io"
//	    "github.com/matzehuels/venntower/pkg/recompose"
//	)
//
//	reg := diagram.NewRegistry()
//	d, _ := io.ParseNotation(reg, "a b ab c")
//
//	steps, _ := decompose.New(decompose.PiercedFirst, nil).Decompose(d)
//	plan, _ := recompose.New(recompose.DoublyPierced, nil).Recompose(steps)
//	for _, s := range plan {
//	    fmt.Println(s)
//	}
//
// # Main Packages
//
// ## Core Domain Logic
//
// [diagram] - Curves, zones, spiders and descriptions. A [diagram.Registry]
// interns zones so that equal zones are the same pointer.
//
// [diagram/dual] - The dual graph of a description: one node per zone, one
// edge per pair of zones that differ by a single curve.
//
// [decompose] - Decomposition strategies (sort order, reverse sort order,
// innermost, pierced first) and the step list they produce.
//
// [recompose] - Recomposition strategies (nested, singly pierced, doubly
// pierced) that decide how zones are clustered under one new curve.
//
// ## Serialization
//
// [io] - Text notation, JSON and TOML descriptions, and the JSON plan.
//
// ## Orchestration
//
// [pipeline] - Parse → decompose → recompose → render, shared by the CLI and
// the API server. Artifacts are cached by content hash.
//
// [cache] - File, Redis and null caches plus cache key construction.
//
// [store] - Saved runs in memory, on disk or in MongoDB.
//
// [api] - HTTP API over the pipeline and the run store.
//
// [config] - The TOML config file.
//
// [observability] - Hooks for metrics, with a Prometheus implementation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/recompose/...          # Specific package
//	go test -run Example                 # Examples only
//
// Store tests against MongoDB run when VENNTOWER_TEST_MONGO_URI is set.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/diagram
// [diagram/dual]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/diagram/dual
// [diagram.Registry]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/diagram#Registry
// [decompose]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/decompose
// [recompose]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/recompose
// [render/dual]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/render/dual
// [io]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/store
// [api]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/api
// [config]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/venntower/pkg/observability
package pkg
