package io

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// ReadJSON decodes a JSON description from r into reg.
func ReadJSON(reg *diagram.Registry, r io.Reader) (*diagram.Description, error) {
	var raw description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON description")
	}
	return raw.decode(reg)
}

// WriteJSON encodes d as indented JSON.
// The output can be read back with [ReadJSON].
func WriteJSON(d *diagram.Description, w io.Writer) error {
	raw, err := encode(d)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode JSON description")
	}
	return nil
}

// MarshalJSON returns the compact JSON encoding of d, readable with
// [ReadJSON]. Unlike the notation it keeps multi-character labels and
// curves that bound no zone.
func MarshalJSON(d *diagram.Description) ([]byte, error) {
	raw, err := encode(d)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode JSON description")
	}
	return data, nil
}

// Canonical returns a compact JSON encoding of d that tells any two
// different descriptions apart. Curves sharing a label are named
// label#rank, so the result of such a description is not readable.
func Canonical(d *diagram.Description) []byte {
	curves := d.Curves()
	names := make(map[*diagram.Curve]string, len(curves))
	rank := 0
	for i, c := range curves {
		after := i > 0 && curves[i-1].MatchesLabel(c)
		before := i+1 < len(curves) && curves[i+1].MatchesLabel(c)
		if after {
			rank++
		} else {
			rank = 0
		}
		names[c] = c.Label().String()
		if after || before {
			names[c] += "#" + strconv.Itoa(rank)
		}
	}
	// string-only values always marshal
	data, _ := json.Marshal(encodeNamed(d, names))
	return data
}
