package decompose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// Decomposer strips curves from a description until none remain.
type Decomposer struct {
	Strategy Strategy
	Logger   *log.Logger
}

// New creates a decomposer. A nil logger discards output.
func New(s Strategy, logger *log.Logger) *Decomposer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Decomposer{Strategy: s, Logger: logger}
}

// Decompose returns the removal steps for d, first removal first.
// A description with no curves yields an empty step list.
func (dc *Decomposer) Decompose(d *diagram.Description) ([]Step, error) {
	if d == nil || d.NumZones() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDescription, "cannot decompose a description without zones")
	}
	if !dc.Strategy.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidStrategy, "invalid decomposition strategy %d", int(dc.Strategy))
	}
	logger := dc.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	var steps []Step
	for {
		remove := dc.Strategy.candidates(d)
		if len(remove) == 0 {
			break
		}
		for _, c := range remove {
			step := removeCurve(d, c)
			logger.Debug("decomposition step", "strategy", dc.Strategy, "step", step)
			steps = append(steps, step)
			d = step.To
		}
	}
	logger.Debug("decomposition complete", "steps", len(steps))
	return steps, nil
}
