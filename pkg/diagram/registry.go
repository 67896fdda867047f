package diagram

import (
	"slices"
	"strconv"
	"strings"
)

// Registry interns curve labels and zones and numbers curves for a single
// pipeline run.
//
// The zero value is not usable - use NewRegistry.
type Registry struct {
	labels map[string]*Label
	zones  map[string]*Zone
	nextID int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		labels: make(map[string]*Label),
		zones:  make(map[string]*Zone),
	}
}

// Label returns the canonical label for text, creating it on first use.
func (r *Registry) Label(text string) *Label {
	if l, ok := r.labels[text]; ok {
		return l
	}
	l := &Label{text: text}
	r.labels[text] = l
	return l
}

// NewCurve creates a curve with the given label. Each call yields a distinct
// curve with a creation id larger than every curve created before it.
func (r *Registry) NewCurve(l *Label) *Curve {
	r.nextID++
	return &Curve{label: l, id: r.nextID, reg: r}
}

// Zone returns the canonical zone inside exactly the given curves.
// Duplicates in curves are ignored and order does not matter.
func (r *Registry) Zone(curves ...*Curve) *Zone {
	set := slices.Clone(curves)
	slices.SortFunc(set, CompareCurves)
	set = slices.Compact(set)
	return r.intern(set)
}

// Outside returns the zone inside no curve.
func (r *Registry) Outside() *Zone {
	return r.intern(nil)
}

// LabelCount returns the number of distinct labels interned so far.
func (r *Registry) LabelCount() int { return len(r.labels) }

// ZoneCount returns the number of distinct zones interned so far.
func (r *Registry) ZoneCount() int { return len(r.zones) }

// intern looks up or stores a zone for an already sorted, duplicate-free set.
func (r *Registry) intern(sorted []*Curve) *Zone {
	key := zoneKey(sorted)
	if z, ok := r.zones[key]; ok {
		return z
	}
	z := &Zone{curves: sorted, reg: r}
	r.zones[key] = z
	return z
}

// zoneKey identifies a curve set by the creation ids of its members.
func zoneKey(sorted []*Curve) string {
	var b strings.Builder
	for i, c := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c.id))
	}
	return b.String()
}
