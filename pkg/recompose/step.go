package recompose

import (
	"fmt"
	"slices"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// Data describes one new curve: the zones of the source description it
// splits and the zones it adds, pairwise aligned.
type Data struct {
	Curve *diagram.Curve
	Split []*diagram.Zone
	Added []*diagram.Zone
}

// Step reintroduces one label, drawn as one curve per Data entry.
type Step struct {
	From  *diagram.Description
	To    *diagram.Description
	Added []Data
}

// NewStep validates and builds a step. Every added curve must carry the same
// label, and that label must be new in to.
func NewStep(from, to *diagram.Description, added []Data) (Step, error) {
	if len(added) == 0 {
		return Step{}, errors.New(errors.ErrCodeInternal, "recomposition step adds no curve")
	}
	label := added[0].Curve.Label()
	for _, d := range added[1:] {
		if d.Curve.Label() != label {
			return Step{}, errors.New(errors.ErrCodeInternal,
				"recomposition step mixes labels %s and %s", label, d.Curve.Label())
		}
	}
	if from.IncludesLabel(label) {
		return Step{}, errors.New(errors.ErrCodeInternal, "added curve %s is already present", label)
	}
	if !to.IncludesLabel(label) {
		return Step{}, errors.New(errors.ErrCodeInternal, "added curve %s was not added", label)
	}
	return Step{From: from, To: to, Added: slices.Clone(added)}, nil
}

// Label returns the label reintroduced by the step.
func (s Step) Label() *diagram.Label {
	return s.Added[0].Curve.Label()
}

// Checksum weighs the source and target descriptions of the step.
func (s Step) Checksum() float64 {
	return 7.1*s.From.Checksum() + 7.3*s.To.Checksum()
}

// String describes the step for logs.
func (s Step) String() string {
	return fmt.Sprintf("add %s as %d curve(s): %s -> %s", s.Label(), len(s.Added), s.From.Sentence(), s.To.Sentence())
}

// Checksum returns a position-weighted sum of step checksums.
func Checksum(steps []Step) float64 {
	scaling := 11.23
	result := 0.0
	for _, s := range steps {
		result += s.Checksum() * scaling
		scaling += 0.1
	}
	return result
}
