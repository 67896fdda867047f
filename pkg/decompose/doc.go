// Package decompose reduces a diagram description to nothing, one curve at
// a time.
//
// A [Decomposer] repeatedly asks its [Strategy] which curves to remove,
// removes them in curve order and records each removal as a [Step]. Removing
// a curve moves every zone inside it to the outside of it, which may merge
// zones. The resulting step list is consumed in reverse by
// package recompose to rebuild the diagram.
//
//	d := decompose.New(decompose.PiercedFirst, nil)
//	steps, err := d.Decompose(desc)
//
// Decomposition is deterministic: the same description and strategy always
// yield the same steps. It never fails except for a description without
// zones, which is rejected with errors.ErrCodeInvalidDescription.
package decompose
