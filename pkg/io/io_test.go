package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/recompose"
)

func TestReadJSON(t *testing.T) {
	in := `{
		"curves": ["a", "b"],
		"zones": [[], ["a"], ["b"], ["a", "b"]],
		"shaded": [["a", "b"]],
		"spiders": [{"name": "x", "feet": [["a"], []]}]
	}`
	d, err := ReadJSON(diagram.NewRegistry(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got := d.Notation(); got != "a b ab, ab, . a 'x" {
		t.Errorf("Notation() = %q", got)
	}
}

func TestReadJSONDerivesCurves(t *testing.T) {
	d, err := ReadJSON(diagram.NewRegistry(), strings.NewReader(`{"zones": [["left"], ["left", "right"]]}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if d.NumCurves() != 2 || d.NumZones() != 3 {
		t.Errorf("got %s", d.Sentence())
	}
	if got := d.FirstCurve().Label().String(); got != "left" {
		t.Errorf("FirstCurve() = %q, want left", got)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"zones": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"zones": [], "extra": 1}`, errors.ErrCodeInvalidFormat},
		{"undeclared curve", `{"curves": ["a"], "zones": [["b"]]}`, errors.ErrCodeInvalidDescription},
		{"repeated curve", `{"zones": [["a", "a"]]}`, errors.ErrCodeInvalidDescription},
		{"shaded not a zone", `{"zones": [["a"], ["b"]], "shaded": [["a", "b"]]}`, errors.ErrCodeInvalidDescription},
		{"bad label", `{"zones": [["a b"]]}`, errors.ErrCodeInvalidLabel},
		{"empty label", `{"curves": [""], "zones": []}`, errors.ErrCodeInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(diagram.NewRegistry(), strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := ParseNotation(diagram.NewRegistry(), "a b ab c, ab, a 'x")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(diagram.NewRegistry(), &buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.Notation() != d.Notation() {
		t.Errorf("round trip = %q, want %q", got.Notation(), d.Notation())
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	d, err := ParseNotation(diagram.NewRegistry(), "a b ab, ab ., a b 'x")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteTOML(d, &buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	got, err := ReadTOML(diagram.NewRegistry(), &buf)
	if err != nil {
		t.Fatalf("ReadTOML: %v\n%s", err, buf.String())
	}
	if got.Notation() != d.Notation() {
		t.Errorf("round trip = %q, want %q", got.Notation(), d.Notation())
	}
}

func TestReadTOML(t *testing.T) {
	in := `
curves = ["a", "b"]
zones = [[], ["a"], ["a", "b"]]

[[spiders]]
name = "s"
feet = [["a"]]
`
	d, err := ReadTOML(diagram.NewRegistry(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if got := d.Notation(); got != "a ab, , a 's" {
		t.Errorf("Notation() = %q", got)
	}

	_, err = ReadTOML(diagram.NewRegistry(), strings.NewReader("zones = []\ncolour = \"red\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown key error = %v, want INVALID_FORMAT", err)
	}
}

func TestEncodeRejectsSplitCurves(t *testing.T) {
	reg := diagram.NewRegistry()
	a1 := reg.NewCurve(reg.Label("a"))
	a2 := a1.Clone()
	d := diagram.NewDescription([]*diagram.Curve{a1, a2},
		[]*diagram.Zone{reg.Outside(), reg.Zone(a1), reg.Zone(a2)}, nil, nil)

	if err := WriteJSON(d, &bytes.Buffer{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("WriteJSON() error = %v, want UNSUPPORTED", err)
	}
}

func TestMarshalJSONKeepsLabelsAndCurves(t *testing.T) {
	in := `{"curves":["ab","c"],"zones":[["ab"]]}`
	d, err := ReadJSON(diagram.NewRegistry(), strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ReadJSON(diagram.NewRegistry(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadJSON(%s): %v", data, err)
	}
	if back.NumCurves() != 2 || back.NumZones() != 2 {
		t.Errorf("round trip of %s: %d curves, %d zones", data, back.NumCurves(), back.NumZones())
	}
	if !bytes.Equal(Canonical(d), Canonical(back)) {
		t.Errorf("canonical forms differ: %s vs %s", Canonical(d), Canonical(back))
	}
}

func TestCanonicalSplitCurves(t *testing.T) {
	reg := diagram.NewRegistry()
	a1 := reg.NewCurve(reg.Label("a"))
	a2 := a1.Clone()
	split := diagram.NewDescription([]*diagram.Curve{a1, a2},
		[]*diagram.Zone{reg.Outside(), reg.Zone(a1), reg.Zone(a2)}, nil, nil)
	single := diagram.NewDescription([]*diagram.Curve{a1},
		[]*diagram.Zone{reg.Outside(), reg.Zone(a1)}, nil, nil)

	got := string(Canonical(split))
	if !strings.Contains(got, `"a#0"`) || !strings.Contains(got, `"a#1"`) {
		t.Errorf("Canonical(split) = %s", got)
	}
	if bytes.Equal(Canonical(split), Canonical(single)) {
		t.Error("split and single curve descriptions share a canonical form")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatNotation, false},
		{"text", FormatNotation, false},
		{"JSON", FormatJSON, false},
		{"toml", FormatTOML, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if DetectFormat("x.JSON") != FormatJSON || DetectFormat("x.toml") != FormatTOML || DetectFormat("x.vd") != FormatNotation {
		t.Error("DetectFormat mismatch")
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	d, err := ParseNotation(diagram.NewRegistry(), "a b ab, ab")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"d.json", "d.toml", "d.txt"} {
		path := filepath.Join(dir, name)
		if err := Export(d, path); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		got, err := Import(diagram.NewRegistry(), path)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if got.Notation() != d.Notation() {
			t.Errorf("%s: round trip = %q, want %q", name, got.Notation(), d.Notation())
		}
	}

	_, err = Import(diagram.NewRegistry(), filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "d.json")); err != nil {
		t.Error(err)
	}
}

func TestBuildPlan(t *testing.T) {
	reg := diagram.NewRegistry()
	d, err := ParseNotation(reg, "a b ab")
	if err != nil {
		t.Fatal(err)
	}
	dsteps, err := decompose.New(decompose.PiercedFirst, nil).Decompose(d)
	if err != nil {
		t.Fatal(err)
	}
	rsteps, err := recompose.New(recompose.DoublyPierced, nil).Recompose(dsteps)
	if err != nil {
		t.Fatal(err)
	}

	// a and b are created first with ids 1 and 2; the clone of a gets 3.
	want := []PlanStep{
		{
			Label: "b",
			From:  "0",
			To:    "0,b",
			Curves: []PlanCurve{{
				ID:    2,
				Label: "b",
				Split: []PlanZone{{Name: ".", Curves: []int{}}},
				Added: []PlanZone{{Name: "b", Curves: []int{2}}},
			}},
		},
		{
			Label: "a",
			From:  "0,b",
			To:    "0,a,b,ab",
			Curves: []PlanCurve{{
				ID:    3,
				Label: "a",
				Split: []PlanZone{{Name: ".", Curves: []int{}}, {Name: "b", Curves: []int{2}}},
				Added: []PlanZone{{Name: "a", Curves: []int{3}}, {Name: "ab", Curves: []int{3, 2}}},
			}},
		},
	}

	p := BuildPlan(rsteps)
	if diff := cmp.Diff(want, p.Steps); diff != "" {
		t.Errorf("BuildPlan() mismatch (-want +got):\n%s", diff)
	}
	if p.Checksum != recompose.Checksum(rsteps) {
		t.Errorf("Checksum = %v, want %v", p.Checksum, recompose.Checksum(rsteps))
	}

	var buf bytes.Buffer
	if err := WritePlan(p, &buf); err != nil {
		t.Fatalf("WritePlan: %v", err)
	}
	back, err := ReadPlan(&buf)
	if err != nil {
		t.Fatalf("ReadPlan: %v", err)
	}
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("ReadPlan() mismatch (-want +got):\n%s", diff)
	}
}
