package io

import (
	"testing"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		sentence string
		curves   int
		shaded   int
		spiders  int
	}{
		{"empty", "", "0", 0, 0, 0},
		{"single", "a", "0,a", 1, 0, 0},
		{"venn", "a b ab", "0,a,b,ab", 2, 0, 0},
		{"duplicate zones", "a a ab", "0,a,ab", 2, 0, 0},
		{"explicit outside", ". a", "0,a", 1, 0, 0},
		{"shaded", "a b ab, ab .", "0,a,b,ab", 2, 2, 0},
		{"spiders", "a b ab, , a b 'x, ab", "0,a,b,ab", 2, 0, 2},
		{"unordered word", "ba", "0,ab", 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseNotation(diagram.NewRegistry(), tt.in)
			if err != nil {
				t.Fatalf("ParseNotation(%q): %v", tt.in, err)
			}
			if got := d.Sentence(); got != tt.sentence {
				t.Errorf("Sentence() = %q, want %q", got, tt.sentence)
			}
			if got := d.NumCurves(); got != tt.curves {
				t.Errorf("NumCurves() = %d, want %d", got, tt.curves)
			}
			if got := len(d.ShadedZones()); got != tt.shaded {
				t.Errorf("shaded zones = %d, want %d", got, tt.shaded)
			}
			if got := len(d.Spiders()); got != tt.spiders {
				t.Errorf("spiders = %d, want %d", got, tt.spiders)
			}
		})
	}
}

func TestParseNotationSpider(t *testing.T) {
	reg := diagram.NewRegistry()
	d, err := ParseNotation(reg, "a b ab, ab, a b 'x")
	if err != nil {
		t.Fatal(err)
	}
	s := d.Spiders()[0]
	if s.Name() != "x" || len(s.Feet()) != 2 {
		t.Errorf("spider = %s", s)
	}
	if got := d.Notation(); got != "a b ab, ab, a b 'x" {
		t.Errorf("Notation() = %q", got)
	}
}

func TestParseNotationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown curve in shading", "a b, c"},
		{"unknown zone in shading", "a b, ab"},
		{"unknown zone in spider", "a b, , ab 'x"},
		{"spider without feet", "a, , 'x"},
		{"dot inside word", "a.b"},
		{"reserved label", "a'b"},
		{"control characters", "a\x00b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNotation(diagram.NewRegistry(), tt.in)
			if err == nil {
				t.Fatalf("ParseNotation(%q) succeeded, want error", tt.in)
			}
			if !errors.Is(err, errors.ErrCodeInvalidNotation) {
				t.Errorf("error code = %s, want INVALID_NOTATION", errors.GetCode(err))
			}
		})
	}
}

func TestNotationRoundTrip(t *testing.T) {
	inputs := []string{
		"a b ab",
		"a b ab, ab",
		"a b c ab ac, . a, a b 'x, ab",
	}
	for _, in := range inputs {
		d, err := ParseNotation(diagram.NewRegistry(), in)
		if err != nil {
			t.Fatalf("ParseNotation(%q): %v", in, err)
		}
		again, err := ParseNotation(diagram.NewRegistry(), d.Notation())
		if err != nil {
			t.Fatalf("ParseNotation(%q): %v", d.Notation(), err)
		}
		if again.Notation() != d.Notation() || again.Checksum() != d.Checksum() {
			t.Errorf("round trip of %q gave %q", in, again.Notation())
		}
	}
}
