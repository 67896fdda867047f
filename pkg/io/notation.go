package io

import (
	"strings"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// ParseNotation reads a description in text notation into reg.
//
// The first comma-separated field lists zones, one word per zone and one
// character per curve label. The optional second field lists shaded zones
// and every further field is a spider: its feet followed by an optional
// 'name. The outside zone is always present and is written "." where a zone
// has to be named explicitly.
func ParseNotation(reg *diagram.Registry, s string) (*diagram.Description, error) {
	if err := errors.ValidateNotation(s); err != nil {
		return nil, err
	}
	fields := strings.Split(strings.TrimSpace(s), ",")

	curves := map[rune]*diagram.Curve{}
	var order []*diagram.Curve
	zones := []*diagram.Zone{reg.Outside()}
	for _, word := range strings.Fields(fields[0]) {
		if word == "." {
			continue
		}
		var cs []*diagram.Curve
		for _, r := range word {
			if err := errors.ValidateLabel(string(r)); err != nil || r == '.' {
				return nil, errors.New(errors.ErrCodeInvalidNotation, "invalid curve label %q in zone %q", r, word)
			}
			c, ok := curves[r]
			if !ok {
				c = reg.NewCurve(reg.Label(string(r)))
				curves[r] = c
				order = append(order, c)
			}
			cs = append(cs, c)
		}
		zones = append(zones, reg.Zone(cs...))
	}

	lookup := func(word string) (*diagram.Zone, error) {
		if word == "." {
			return reg.Outside(), nil
		}
		var cs []*diagram.Curve
		for _, r := range word {
			c, ok := curves[r]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidNotation, "unknown curve %q in %q", r, word)
			}
			cs = append(cs, c)
		}
		z := reg.Zone(cs...)
		for _, known := range zones {
			if known == z {
				return z, nil
			}
		}
		return nil, errors.New(errors.ErrCodeInvalidNotation, "unknown zone %q", word)
	}

	var shaded []*diagram.Zone
	if len(fields) > 1 {
		for _, word := range strings.Fields(fields[1]) {
			z, err := lookup(word)
			if err != nil {
				return nil, err
			}
			shaded = append(shaded, z)
		}
	}

	var spiders []*diagram.Spider
	for _, field := range fields[min(2, len(fields)):] {
		words := strings.Fields(field)
		if len(words) == 0 {
			continue
		}
		var name string
		var feet []*diagram.Zone
		for _, word := range words {
			if strings.HasPrefix(word, "'") {
				name = word[1:]
				continue
			}
			z, err := lookup(word)
			if err != nil {
				return nil, err
			}
			feet = append(feet, z)
		}
		if len(feet) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidNotation, "spider %q has no feet", name)
		}
		spiders = append(spiders, diagram.NewSpider(name, feet...))
	}

	return diagram.NewDescription(order, zones, shaded, spiders), nil
}
