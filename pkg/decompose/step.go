package decompose

import (
	"fmt"

	"github.com/matzehuels/venntower/pkg/diagram"
)

// Move records that a zone of the source description became another zone
// once the removed curve was gone.
type Move struct {
	Old *diagram.Zone
	New *diagram.Zone
}

// Step is the removal of one curve.
type Step struct {
	From    *diagram.Description
	To      *diagram.Description
	Removed *diagram.Curve
	// Moved lists only the zones that changed, ordered by Old.
	Moved []Move
}

// ZonesMoved returns Moved as a map from old zone to new zone.
func (s Step) ZonesMoved() map[*diagram.Zone]*diagram.Zone {
	m := make(map[*diagram.Zone]*diagram.Zone, len(s.Moved))
	for _, mv := range s.Moved {
		m[mv.Old] = mv.New
	}
	return m
}

// Checksum weighs the source and target descriptions of the step.
func (s Step) Checksum() float64 {
	return 1.1*s.From.Checksum() + 1.3*s.To.Checksum()
}

// String describes the step for logs.
func (s Step) String() string {
	return fmt.Sprintf("remove %s: %s -> %s", s.Removed, s.From.Sentence(), s.To.Sentence())
}

// Checksum returns a position-weighted sum of step checksums.
func Checksum(steps []Step) float64 {
	scaling := 1.11
	result := 0.0
	for _, s := range steps {
		result += s.Checksum() * scaling
		scaling += 0.1
	}
	return result
}

// removeCurve builds the step taking c out of d.
func removeCurve(d *diagram.Description, c *diagram.Curve) Step {
	var curves []*diagram.Curve
	for _, dc := range d.Curves() {
		if dc != c {
			curves = append(curves, dc)
		}
	}

	var zones []*diagram.Zone
	var moved []Move
	for _, z := range d.Zones() {
		nz := z.MoveOutside(c)
		zones = append(zones, nz)
		if nz != z {
			moved = append(moved, Move{Old: z, New: nz})
		}
	}

	return Step{
		From:    d,
		To:      diagram.NewDescription(curves, zones, nil, nil),
		Removed: c,
		Moved:   moved,
	}
}
