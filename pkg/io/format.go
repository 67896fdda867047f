package io

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
)

// Format identifies a description encoding.
type Format string

const (
	FormatNotation Format = "notation"
	FormatJSON     Format = "json"
	FormatTOML     Format = "toml"
)

// ParseFormat resolves a format name. The empty string yields FormatNotation.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatNotation, "text", "txt":
		return FormatNotation, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown description format %q", name)
}

// DetectFormat guesses the format of a file from its extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatNotation
	}
}

// Read decodes a description in the given format from r into reg.
func Read(reg *diagram.Registry, r io.Reader, f Format) (*diagram.Description, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(reg, r)
	case FormatTOML:
		return ReadTOML(reg, r)
	case FormatNotation, "":
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, io.LimitReader(r, errors.MaxNotationLength+1)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read notation")
		}
		return ParseNotation(reg, buf.String())
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown description format %q", f)
}

// Write encodes d in the given format.
func Write(d *diagram.Description, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(d, w)
	case FormatTOML:
		return WriteTOML(d, w)
	case FormatNotation, "":
		_, err := io.WriteString(w, d.Notation()+"\n")
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown description format %q", f)
}

// Import reads a description file, choosing the format from its extension.
func Import(reg *diagram.Registry, path string) (*diagram.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(reg, f, DetectFormat(path))
}

// Export writes d to path, choosing the format from its extension.
func Export(d *diagram.Description, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return Write(d, f, DetectFormat(path))
}
