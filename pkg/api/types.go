package api

import (
	"encoding/json"
	"time"

	vio "github.com/matzehuels/venntower/pkg/io"
	"github.com/matzehuels/venntower/pkg/store"
)

// RunRequest executes the pipeline. Exactly one of Notation and
// Description is set; Description is decoded with Format (json or toml).
type RunRequest struct {
	Notation      string          `json:"notation,omitempty" validate:"required_without=Description,excluded_with=Description,max=65536"`
	Description   json.RawMessage `json:"description,omitempty"`
	Format        string          `json:"format,omitempty" validate:"omitempty,oneof=json toml"`
	Decomposition string          `json:"decomposition,omitempty" validate:"omitempty,max=64"`
	Recomposition string          `json:"recomposition,omitempty" validate:"omitempty,max=64"`
	Formats       []string        `json:"formats,omitempty" validate:"omitempty,max=6,dive,oneof=json text dot svg"`
	Detailed      bool            `json:"detailed,omitempty"`
	Save          bool            `json:"save,omitempty"`
}

// RunResponse reports a pipeline execution.
type RunResponse struct {
	ID                    string            `json:"id,omitempty"`
	Hash                  string            `json:"hash"`
	Sentence              string            `json:"sentence"`
	Decomposition         string            `json:"decomposition"`
	Recomposition         string            `json:"recomposition"`
	Steps                 int               `json:"steps"`
	CurvesAdded           int               `json:"curves_added"`
	DecompositionChecksum float64           `json:"decomposition_checksum"`
	Checksum              float64           `json:"checksum"`
	Plan                  vio.Plan          `json:"plan"`
	Artifacts             map[string]string `json:"artifacts,omitempty"`
	Cached                bool              `json:"cached"`
	Duration              time.Duration     `json:"duration_ns"`
}

// RunList is the body of GET /v1/runs.
type RunList struct {
	Runs []*store.Run `json:"runs"`
}

// StrategyInfo describes one strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

// StrategiesResponse is the body of GET /v1/strategies.
type StrategiesResponse struct {
	Decomposition []StrategyInfo `json:"decomposition"`
	Recomposition []StrategyInfo `json:"recomposition"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
