package pipeline

import (
	"bytes"

	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
	vio "github.com/matzehuels/venntower/pkg/io"
)

// Source identifies the description to run. Exactly one of Notation, Data
// or Path must be set.
type Source struct {
	Notation string     `json:"notation,omitempty"`
	Data     []byte     `json:"-"`
	Format   vio.Format `json:"format,omitempty"` // encoding of Data
	Path     string     `json:"-"`
}

// Parse reads the source into a registry of its own, so that zone identity
// never leaks between runs.
func Parse(src Source) (*diagram.Description, error) {
	set := 0
	for _, ok := range []bool{src.Notation != "", src.Data != nil, src.Path != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "exactly one of notation, data or path is required")
	}

	reg := diagram.NewRegistry()
	switch {
	case src.Path != "":
		if err := errors.ValidatePath(src.Path); err != nil {
			return nil, err
		}
		return vio.Import(reg, src.Path)
	case src.Data != nil:
		return vio.Read(reg, bytes.NewReader(src.Data), src.Format)
	default:
		return vio.ParseNotation(reg, src.Notation)
	}
}

// DescriptionHash returns the content hash used to key cached results.
// It covers every label, curve, zone, shading and spider of d.
func DescriptionHash(d *diagram.Description) string {
	return cache.Hash(vio.Canonical(d))
}
