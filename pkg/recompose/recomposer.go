package recompose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// Recomposer rebuilds descriptions from decomposition steps.
type Recomposer struct {
	Strategy Strategy
	Logger   *log.Logger
}

// New creates a recomposer. A nil logger discards output.
func New(s Strategy, logger *log.Logger) *Recomposer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Recomposer{Strategy: s, Logger: logger}
}

// Recompose returns one step per decomposition step, starting from the last
// decomposition step. The steps must come from a single decomposition;
// anything else fails with errors.ErrCodeInternal.
func (r *Recomposer) Recompose(steps []decompose.Step) ([]Step, error) {
	if !r.Strategy.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidStrategy, "invalid recomposition strategy %d", int(r.Strategy))
	}
	logger := r.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	// matched maps zones on the decomposition side to their counterpart in
	// the description being rebuilt.
	matched := make(map[*diagram.Zone]*diagram.Zone)
	result := make([]Step, 0, len(steps))
	for i := len(steps) - 1; i >= 0; i-- {
		var (
			step Step
			err  error
		)
		if len(result) == 0 {
			step, err = r.first(steps[i], matched)
		} else {
			step, err = r.next(steps[i], result[len(result)-1], matched, logger)
		}
		if err != nil {
			return nil, err
		}
		logger.Debug("recomposition step", "strategy", r.Strategy, "step", step)
		result = append(result, step)
	}
	logger.Debug("recomposition complete", "steps", len(result))
	return result, nil
}

// first reintroduces the last removed curve into the empty diagram.
func (r *Recomposer) first(ds decompose.Step, matched map[*diagram.Zone]*diagram.Zone) (Step, error) {
	from := ds.To
	c := ds.Removed

	out := c.Registry().Outside()
	in := out.MoveInside(c)

	to := diagram.NewDescription([]*diagram.Curve{c}, []*diagram.Zone{out, in}, nil, nil)
	matched[out] = out
	matched[in] = in

	return NewStep(from, to, []Data{{
		Curve: c,
		Split: []*diagram.Zone{out},
		Added: []*diagram.Zone{in},
	}})
}

// next reintroduces ds.Removed on top of the previously rebuilt step.
func (r *Recomposer) next(ds decompose.Step, previous Step, matched map[*diagram.Zone]*diagram.Zone, logger *log.Logger) (Step, error) {
	from := previous.To

	toSplit := make([]*diagram.Zone, 0, len(ds.Moved))
	inverse := make(map[*diagram.Zone]*diagram.Zone, len(ds.Moved))
	for _, mv := range ds.Moved {
		z, ok := matched[mv.New]
		if !ok {
			return Step{}, errors.New(errors.ErrCodeInternal,
				"no rebuilt zone matches %s while adding %s", mv.New, ds.Removed)
		}
		inverse[z] = mv.New
		toSplit = append(toSplit, z)
	}

	clusters := r.Strategy.MakeClusters(toSplit)

	curves := from.Curves()
	zones := from.Zones()
	added := make([]Data, 0, len(clusters))
	for _, cl := range clusters {
		logger.Debug("cluster", "curve", ds.Removed, "zones", cl)
		c := ds.Removed.Clone()
		curves = append(curves, c)
		d := Data{Curve: c}
		for _, z := range cl.Zones() {
			nz := z.MoveInside(c)
			zones = append(zones, nz)
			d.Split = append(d.Split, z)
			d.Added = append(d.Added, nz)
			matched[inverse[z].MoveInside(ds.Removed)] = nz
		}
		added = append(added, d)
	}

	to := diagram.NewDescription(curves, zones, nil, nil)
	return NewStep(from, to, added)
}
