package io

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// ReadTOML decodes a TOML description from r into reg. Unknown keys are
// rejected.
func ReadTOML(reg *diagram.Registry, r io.Reader) (*diagram.Description, error) {
	var raw description
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML description")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys in TOML description: %s", strings.Join(keys, ", "))
	}
	return raw.decode(reg)
}

// WriteTOML encodes d as TOML.
func WriteTOML(d *diagram.Description, w io.Writer) error {
	raw, err := encode(d)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(raw); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode TOML description")
	}
	return nil
}
