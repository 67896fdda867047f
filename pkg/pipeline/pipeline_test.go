package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/diagram"
	verrors "github.com/matzehuels/venntower/pkg/errors"
	vio "github.com/matzehuels/venntower/pkg/io"
	"github.com/matzehuels/venntower/pkg/observability"
	"github.com/matzehuels/venntower/pkg/recompose"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"text", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !verrors.Is(err, verrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, verrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Decomposition != "pierced-first" || opts.Recomposition != "doubly-pierced" {
		t.Errorf("strategies = %q/%q", opts.Decomposition, opts.Recomposition)
	}
	if diff := cmp.Diff([]string{FormatJSON}, opts.Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}
	if opts.Logger == nil {
		t.Error("logger not defaulted")
	}
	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	opts = Options{Formats: []string{"dot", "json", "dot"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"dot", "json"}, opts.Formats); diff != "" {
		t.Errorf("deduped formats (-want +got):\n%s", diff)
	}
}

func TestOptionsInvalidStrategy(t *testing.T) {
	for _, opts := range []Options{
		{Decomposition: "outermost"},
		{Recomposition: "triply-pierced"},
	} {
		err := opts.ValidateAndSetDefaults()
		if !verrors.Is(err, verrors.ErrCodeInvalidStrategy) {
			t.Errorf("%+v: got %v, want INVALID_STRATEGY", opts, err)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true}
	if !opts.ArtifactKeyOpts(FormatDOT).Detailed {
		t.Error("detailed should key DOT artifacts")
	}
	if opts.ArtifactKeyOpts(FormatJSON).Detailed {
		t.Error("detailed should not key JSON artifacts")
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(Source{}); !verrors.Is(err, verrors.ErrCodeInvalidInput) {
		t.Errorf("empty source: got %v", err)
	}
	if _, err := Parse(Source{Notation: "a", Data: []byte("{}")}); !verrors.Is(err, verrors.ErrCodeInvalidInput) {
		t.Errorf("two sources: got %v", err)
	}

	d, err := Parse(Source{Notation: "a b ab"})
	if err != nil {
		t.Fatal(err)
	}
	if d.NumZones() != 4 {
		t.Errorf("zones = %d, want 4", d.NumZones())
	}

	fromJSON, err := Parse(Source{
		Data:   []byte(`{"curves":["a","b"],"zones":[[],["a"],["b"],["a","b"]]}`),
		Format: vio.FormatJSON,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !fromJSON.LabelEquivalent(d) {
		t.Errorf("JSON and notation differ: %s vs %s", fromJSON, d)
	}
	if DescriptionHash(fromJSON) != DescriptionHash(d) {
		t.Error("equal descriptions hash differently")
	}
}

func TestExecute(t *testing.T) {
	d, err := Parse(Source{Notation: "a b ab"})
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), d, Options{
		Formats: []string{FormatJSON, FormatText, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.Decomposition) != 2 || len(res.Recomposition) != 2 {
		t.Fatalf("steps = %d/%d, want 2/2", len(res.Decomposition), len(res.Recomposition))
	}
	if res.Checksum != recompose.Checksum(res.Recomposition) {
		t.Errorf("checksum = %v, want recomposition checksum", res.Checksum)
	}
	if res.Stats.Curves != 2 || res.Stats.Zones != 4 || res.Stats.CurvesAdded != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if !res.Rebuilt().LabelEquivalent(d) {
		t.Errorf("rebuilt %s, want %s", res.Rebuilt(), d)
	}

	var plan vio.Plan
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &plan); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Steps) != 2 || plan.Checksum != res.Checksum {
		t.Errorf("plan = %+v", plan)
	}

	text := string(res.Artifacts[FormatText])
	for _, want := range []string{"description: 0,a,b,ab", "decompose 2:", "recompose 2:", "checksum: "} {
		if !strings.Contains(text, want) {
			t.Errorf("text output missing %q:\n%s", want, text)
		}
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "graph G {") {
		t.Errorf("dot output = %s", res.Artifacts[FormatDOT])
	}
}

func TestExecuteInvalidDescription(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	for name, d := range map[string]*diagram.Description{
		"nil":   nil,
		"empty": diagram.NewDescription(nil, nil, nil, nil),
	} {
		_, err := runner.Execute(context.Background(), d, Options{})
		if !verrors.Is(err, verrors.ErrCodeInvalidDescription) {
			t.Errorf("%s: got %v, want INVALID_DESCRIPTION", name, err)
		}
	}
}

func TestExecuteCanceled(t *testing.T) {
	d, _ := Parse(Source{Notation: "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, d, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRenderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatJSON, FormatText}}

	run := func(o Options) *Result {
		t.Helper()
		d, err := Parse(Source{Notation: "a b ab c"})
		if err != nil {
			t.Fatal(err)
		}
		res, err := runner.Execute(ctx, d, o)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	first := run(opts)
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	second := run(opts)
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit")
	}
	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("cached artifacts differ (-first +second):\n%s", diff)
	}

	refreshed := opts
	refreshed.Refresh = true
	if run(refreshed).CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}

	other := opts
	other.Recomposition = "nested"
	if run(other).CacheInfo.RenderHit {
		t.Error("a different strategy should miss")
	}
}

func TestDescriptionHashKeepsLabelsAndCurves(t *testing.T) {
	parse := func(src Source) string {
		t.Helper()
		d, err := Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		return DescriptionHash(d)
	}
	fromJSON := func(s string) Source {
		return Source{Data: []byte(s), Format: vio.FormatJSON}
	}

	tests := []struct {
		name string
		a, b Source
	}{
		{"multi-character label", Source{Notation: "ab"}, fromJSON(`{"zones":[["ab"]]}`)},
		{"curve bounding no zone", Source{Notation: "a"}, fromJSON(`{"curves":["a","b"],"zones":[["a"]]}`)},
		{"shading", Source{Notation: "a b"}, Source{Notation: "a b, a"}},
		{"spider name", Source{Notation: "a b, , a 'x"}, Source{Notation: "a b, , a 'y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if parse(tt.a) == parse(tt.b) {
				t.Error("different descriptions share a hash")
			}
		})
	}
}

func TestRenderCacheSeparatesLabelSpellings(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatText}}

	run := func(src Source) *Result {
		t.Helper()
		d, err := Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		res, err := runner.Execute(ctx, d, opts)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	twoCurves := run(Source{Notation: "ab"})
	oneCurve := run(Source{Data: []byte(`{"zones":[["ab"]]}`), Format: vio.FormatJSON})
	if oneCurve.CacheInfo.RenderHit {
		t.Error("one-curve description was served from the two-curve cache entry")
	}
	if oneCurve.Stats.Steps != 1 || twoCurves.Stats.Steps != 2 {
		t.Fatalf("steps = %d and %d, want 1 and 2", oneCurve.Stats.Steps, twoCurves.Stats.Steps)
	}
	if text := string(oneCurve.Artifacts[FormatText]); strings.Contains(text, "recompose 2:") {
		t.Errorf("text artifact belongs to another description:\n%s", text)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnDecomposeStart(context.Context, string, int) {
	h.record("decompose-start")
}

func (h *recordingHooks) OnDecomposeComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.record("decompose-complete")
}

func (h *recordingHooks) OnRecomposeStart(context.Context, string, int) {
	h.record("recompose-start")
}

func (h *recordingHooks) OnRecomposeComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.record("recompose-complete")
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.record("render-start")
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render-complete")
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.record("cache-miss")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	d, _ := Parse(Source{Notation: "a b"})
	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), d, Options{}); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"decompose-start", "decompose-complete",
		"recompose-start", "recompose-complete",
		"cache-miss",
		"render-start", "render-complete",
	}
	if diff := cmp.Diff(want, hooks.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}
