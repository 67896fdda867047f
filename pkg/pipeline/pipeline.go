// Package pipeline provides the decompose → recompose → render pipeline for
// venntower.
//
// This package implements the complete pipeline that is used by the CLI and
// the API server. By centralizing this logic, every entry point resolves
// strategies, caches artifacts and reports metrics the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Read a description (notation, JSON or TOML) into a fresh registry
//  2. Decompose: Remove curves one at a time until only the outside zone is left
//  3. Recompose: Add them back, choosing how each new curve splits zones
//  4. Render: Generate outputs (plan JSON, text, DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	d, err := pipeline.Parse(pipeline.Source{Notation: "a b ab"})
//	result, err := runner.Execute(ctx, d, pipeline.Options{
//	    Decomposition: "pierced-first",
//	    Recomposition: "doubly-pierced",
//	    Formats:       []string{"json"},
//	})
//	plan := result.Artifacts["json"]
//
// Every Runner method validates a copy of the options, so one Options value
// can be shared between goroutines.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON and TOML serialization for API requests and
// config files.
type Options struct {
	// Decomposition and Recomposition name the strategies, for example
	// "pierced-first" and "doubly-pierced". Empty means the default.
	Decomposition string `json:"decomposition,omitempty" toml:"decomposition"`
	Recomposition string `json:"recomposition,omitempty" toml:"recomposition"`

	// Render options
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	Detailed bool     `json:"detailed,omitempty" toml:"detailed"` // curve ids and steps in DOT labels
	Refresh  bool     `json:"refresh,omitempty" toml:"-"`         // ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	decomposition decompose.Strategy
	recomposition recompose.Strategy

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Description is the input description.
	Description *diagram.Description

	// Hash is the content hash of the description, used in cache keys.
	Hash string

	// Decomposition and Recomposition are the computed step lists.
	Decomposition []decompose.Step
	Recomposition []recompose.Step

	// Checksum is the recomposition checksum.
	Checksum float64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Rebuilt returns the description produced by the last recomposition step,
// or the input description when there were no steps.
func (r *Result) Rebuilt() *diagram.Description {
	if len(r.Recomposition) == 0 {
		return r.Description
	}
	return r.Recomposition[len(r.Recomposition)-1].To
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Curves                int
	Zones                 int
	Steps                 int
	CurvesAdded           int
	DecompositionChecksum float64
	DecomposeTime         time.Duration
	RecomposeTime         time.Duration
	RenderTime            time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateAndSetDefaults resolves the strategy names, checks the formats and
// applies defaults. Strategy names are rewritten to their canonical form.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	ds, err := decompose.ParseStrategy(o.Decomposition)
	if err != nil {
		return err
	}
	rs, err := recompose.ParseStrategy(o.Recomposition)
	if err != nil {
		return err
	}
	o.decomposition, o.Decomposition = ds, ds.String()
	o.recomposition, o.Recomposition = rs, rs.String()

	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DecompositionStrategy returns the resolved decomposition strategy.
// Only meaningful after ValidateAndSetDefaults.
func (o *Options) DecompositionStrategy() decompose.Strategy { return o.decomposition }

// RecompositionStrategy returns the resolved recomposition strategy.
// Only meaningful after ValidateAndSetDefaults.
func (o *Options) RecompositionStrategy() recompose.Strategy { return o.recomposition }

// RunKeyOpts returns cache key options for a pipeline run.
func (o *Options) RunKeyOpts() cache.RunKeyOpts {
	return cache.RunKeyOpts{
		Decomposition: o.Decomposition,
		Recomposition: o.Recomposition,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed && (format == FormatDOT || format == FormatSVG || format == FormatPNG || format == FormatPDF),
	}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
