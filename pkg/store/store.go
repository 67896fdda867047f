// Package store persists pipeline runs.
//
// A [Run] records the input description, the strategies, the checksums and the
// exported recomposition plan of one pipeline execution, under a random
// UUID. Implementations exist for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files for the CLI run history
//   - mongo: MongoDB for the API server
//
// # Usage
//
//	run, err := store.NewRun(result, store.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	if err := s.Put(ctx, run); err != nil {
//	    return err
//	}
//	got, err := s.Get(ctx, run.ID)
//
// Expired runs behave as missing and are removed by Cleanup (Mongo also
// removes them through a TTL index).
package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/venntower/pkg/errors"
	vio "github.com/matzehuels/venntower/pkg/io"
	"github.com/matzehuels/venntower/pkg/pipeline"
)

// DefaultTTL is how long a run is kept.
const DefaultTTL = 30 * 24 * time.Hour

// DefaultListLimit bounds List when the caller passes zero.
const DefaultListLimit = 50

// Run is one persisted pipeline execution. Notation is for display;
// Description holds the JSON description the run replays from.
type Run struct {
	ID                    string    `json:"id" bson:"_id"`
	Notation              string    `json:"notation" bson:"notation"`
	Description           string    `json:"description" bson:"description"`
	Hash                  string    `json:"hash" bson:"hash"`
	Decomposition         string    `json:"decomposition" bson:"decomposition"`
	Recomposition         string    `json:"recomposition" bson:"recomposition"`
	Curves                int       `json:"curves" bson:"curves"`
	Zones                 int       `json:"zones" bson:"zones"`
	DecompositionChecksum float64   `json:"decomposition_checksum" bson:"decomposition_checksum"`
	Checksum              float64   `json:"checksum" bson:"checksum"`
	Plan                  vio.Plan  `json:"plan" bson:"plan"`
	CreatedAt             time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt             time.Time `json:"expires_at" bson:"expires_at"`
}

// IsExpired returns true if the run has outlived its TTL.
func (r *Run) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// NewRun records a pipeline result under a fresh ID. A ttl of zero selects
// DefaultTTL.
func NewRun(res *pipeline.Result, decomposition, recomposition string, ttl time.Duration) (*Run, error) {
	if res == nil || res.Description == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "run has no result")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	desc, err := vio.MarshalJSON(res.Description)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Run{
		ID:                    uuid.NewString(),
		Notation:              res.Description.Notation(),
		Description:           string(desc),
		Hash:                  res.Hash,
		Decomposition:         decomposition,
		Recomposition:         recomposition,
		Curves:                res.Stats.Curves,
		Zones:                 res.Stats.Zones,
		DecompositionChecksum: res.Stats.DecompositionChecksum,
		Checksum:              res.Checksum,
		Plan:                  vio.BuildPlan(res.Recomposition),
		CreatedAt:             now,
		ExpiresAt:             now.Add(ttl),
	}, nil
}

// Store is the interface for run storage backends.
type Store interface {
	// Get retrieves a run by ID. Missing and expired runs yield an
	// ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*Run, error)

	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit live runs, newest first.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Cleanup removes expired runs and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// ValidateID checks that id is a run ID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid run id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "run %s not found", id)
}

// newestFirst sorts runs by creation time, newest first, and trims to limit.
func newestFirst(runs []*Run, limit int) []*Run {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	slices.SortFunc(runs, func(a, b *Run) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareStrings(a.ID, b.ID)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Source returns the pipeline source that replays the run.
func (r *Run) Source() pipeline.Source {
	return pipeline.Source{Data: []byte(r.Description), Format: vio.FormatJSON}
}
