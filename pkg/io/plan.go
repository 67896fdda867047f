package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// Plan is the exported form of a recomposition: for every step, the curves
// to draw and which existing zones each of them splits.
type Plan struct {
	Checksum float64    `json:"checksum"`
	Steps    []PlanStep `json:"steps"`
}

// PlanStep reintroduces one label.
type PlanStep struct {
	Label  string      `json:"label"`
	From   string      `json:"from"`
	To     string      `json:"to"`
	Curves []PlanCurve `json:"curves"`
}

// PlanCurve is one new curve. Split[i] becomes Added[i] once the curve is
// drawn around it.
type PlanCurve struct {
	ID    int        `json:"id"`
	Label string     `json:"label"`
	Split []PlanZone `json:"split"`
	Added []PlanZone `json:"added"`
}

// PlanZone names a zone by its curves. Name concatenates labels and is "."
// for the outside zone; Curves holds curve ids.
type PlanZone struct {
	Name   string `json:"name"`
	Curves []int  `json:"curves"`
}

// BuildPlan converts recomposition steps into a plan.
func BuildPlan(steps []recompose.Step) Plan {
	p := Plan{
		Checksum: recompose.Checksum(steps),
		Steps:    make([]PlanStep, 0, len(steps)),
	}
	for _, s := range steps {
		ps := PlanStep{
			Label: s.Label().String(),
			From:  s.From.Sentence(),
			To:    s.To.Sentence(),
		}
		for _, d := range s.Added {
			ps.Curves = append(ps.Curves, PlanCurve{
				ID:    d.Curve.ID(),
				Label: d.Curve.Label().String(),
				Split: planZones(d.Split),
				Added: planZones(d.Added),
			})
		}
		p.Steps = append(p.Steps, ps)
	}
	return p
}

func planZones(zones []*diagram.Zone) []PlanZone {
	out := make([]PlanZone, len(zones))
	for i, z := range zones {
		ids := make([]int, 0, z.Len())
		for _, c := range z.Curves() {
			ids = append(ids, c.ID())
		}
		out[i] = PlanZone{Name: z.String(), Curves: ids}
	}
	return out
}

// WritePlan encodes p as indented JSON.
func WritePlan(p Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode plan")
	}
	return nil
}

// ReadPlan decodes a plan written by [WritePlan].
func ReadPlan(r io.Reader) (Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Plan{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan")
	}
	return p, nil
}
