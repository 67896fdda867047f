// Package io reads and writes diagram descriptions and recomposition plans.
//
// # Formats
//
// Descriptions can be read from three formats:
//
//   - text notation, a compact one-line form
//   - JSON
//   - TOML
//
// The text notation lists zones as words of single-character curve labels,
// then shaded zones, then one field per spider, separated by commas:
//
//	a b ab, ab, a b 'x
//
// This describes curves a and b with zones a, b and ab (the outside zone is
// always implied), shades ab, and places a spider named x with feet in a and
// b. In the shading and spider fields "." names the outside zone.
//
// JSON and TOML share one structure. Zones are lists of curve labels and
// labels may be longer than one character:
//
//	{
//	  "curves": ["a", "b"],
//	  "zones": [[], ["a"], ["b"], ["a", "b"]],
//	  "shaded": [["a", "b"]],
//	  "spiders": [{"name": "x", "feet": [["a"], ["b"]]}]
//	}
//
// The curves array is optional; when omitted, curves are taken from the
// zones in order of appearance. When present, zones may only use the listed
// labels.
//
// # Plans
//
// [BuildPlan] turns recomposition steps into a [Plan], the instruction
// stream for a geometric layout, and [WritePlan] encodes it as JSON.
//
// # Registries
//
// Every reader takes the [diagram.Registry] of the pipeline run the
// description belongs to. Descriptions read into different registries never
// share curves or zones.
package io
