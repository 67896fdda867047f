// Package recompose rebuilds a diagram from its decomposition, reintroducing
// one removed curve per step.
//
// Steps from package decompose are walked in reverse. For each step the zones
// that the removed curve used to split are grouped into clusters by the
// configured [Strategy], using the dual graph of those zones. Every cluster
// becomes one new curve carrying the removed curve's label, so a label may be
// drawn as several curves when its zones cannot be carved out at once.
//
//	r := recompose.New(recompose.DoublyPierced, nil)
//	steps, err := r.Recompose(decomposition)
//
// The resulting [Step] list is the instruction stream for a geometric layout:
// each [Data] entry says which existing zones a new curve splits and which
// zones it creates.
package recompose
