package io

import (
	"slices"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// description is the shared JSON and TOML form of a diagram.Description.
type description struct {
	Curves  []string   `json:"curves,omitempty" toml:"curves,omitempty"`
	Zones   [][]string `json:"zones" toml:"zones"`
	Shaded  [][]string `json:"shaded,omitempty" toml:"shaded,omitempty"`
	Spiders []spider   `json:"spiders,omitempty" toml:"spiders,omitempty"`
}

type spider struct {
	Name string     `json:"name,omitempty" toml:"name,omitempty"`
	Feet [][]string `json:"feet" toml:"feet"`
}

// decode turns the raw form into a description over reg.
func (raw description) decode(reg *diagram.Registry) (*diagram.Description, error) {
	curves := map[string]*diagram.Curve{}
	var order []*diagram.Curve
	declare := func(label string) error {
		if err := errors.ValidateLabel(label); err != nil {
			return err
		}
		if _, ok := curves[label]; !ok {
			c := reg.NewCurve(reg.Label(label))
			curves[label] = c
			order = append(order, c)
		}
		return nil
	}

	for _, l := range raw.Curves {
		if err := declare(l); err != nil {
			return nil, err
		}
	}
	if len(raw.Curves) == 0 {
		for _, z := range raw.Zones {
			for _, l := range z {
				if err := declare(l); err != nil {
					return nil, err
				}
			}
		}
	}

	zoneOf := func(labels []string) (*diagram.Zone, error) {
		cs := make([]*diagram.Curve, 0, len(labels))
		for _, l := range labels {
			c, ok := curves[l]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDescription, "zone %v uses undeclared curve %q", labels, l)
			}
			if slices.Contains(cs, c) {
				return nil, errors.New(errors.ErrCodeInvalidDescription, "zone %v lists curve %q twice", labels, l)
			}
			cs = append(cs, c)
		}
		return reg.Zone(cs...), nil
	}

	zones := []*diagram.Zone{reg.Outside()}
	for _, labels := range raw.Zones {
		z, err := zoneOf(labels)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	existing := func(labels []string) (*diagram.Zone, error) {
		z, err := zoneOf(labels)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(zones, z) {
			return nil, errors.New(errors.ErrCodeInvalidDescription, "zone %v is not one of the diagram's zones", labels)
		}
		return z, nil
	}

	var shaded []*diagram.Zone
	for _, labels := range raw.Shaded {
		z, err := existing(labels)
		if err != nil {
			return nil, err
		}
		shaded = append(shaded, z)
	}

	var spiders []*diagram.Spider
	for _, s := range raw.Spiders {
		var feet []*diagram.Zone
		for _, labels := range s.Feet {
			z, err := existing(labels)
			if err != nil {
				return nil, err
			}
			feet = append(feet, z)
		}
		spiders = append(spiders, diagram.NewSpider(s.Name, feet...))
	}

	return diagram.NewDescription(order, zones, shaded, spiders), nil
}

// encode turns a description into the raw form. Descriptions that draw one
// label as several curves cannot be encoded.
func encode(d *diagram.Description) (description, error) {
	names := make(map[*diagram.Curve]string, d.NumCurves())
	var prev *diagram.Curve
	for _, c := range d.Curves() {
		if prev != nil && prev.MatchesLabel(c) {
			return description{}, errors.New(errors.ErrCodeUnsupported,
				"label %q is drawn as several curves and cannot be exported", c.Label())
		}
		names[c] = c.Label().String()
		prev = c
	}
	return encodeNamed(d, names), nil
}

// encodeNamed builds the raw form, naming each curve by names.
func encodeNamed(d *diagram.Description, names map[*diagram.Curve]string) description {
	var raw description
	for _, c := range d.Curves() {
		raw.Curves = append(raw.Curves, names[c])
	}
	raw.Zones = zoneLabels(d.Zones(), names)
	if shaded := d.ShadedZones(); len(shaded) > 0 {
		raw.Shaded = zoneLabels(shaded, names)
	}
	for _, s := range d.Spiders() {
		raw.Spiders = append(raw.Spiders, spider{Name: s.Name(), Feet: zoneLabels(s.Feet(), names)})
	}
	return raw
}

func zoneLabels(zones []*diagram.Zone, names map[*diagram.Curve]string) [][]string {
	out := make([][]string, len(zones))
	for i, z := range zones {
		labels := make([]string, 0, z.Len())
		for _, c := range z.Curves() {
			labels = append(labels, names[c])
		}
		out[i] = labels
	}
	return out
}
