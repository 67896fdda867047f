package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/venntower/pkg/errors"
	vio "github.com/matzehuels/venntower/pkg/io"
	"github.com/matzehuels/venntower/pkg/render"
	"github.com/matzehuels/venntower/pkg/render/dual"
)

// Render generates output artifacts in the requested formats. Options must
// already be validated.
func Render(res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	dot := dual.ToDOT(res.Rebuilt(), res.Recomposition, dual.Options{Detailed: opts.Detailed})
	var svg []byte
	dualSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = dual.RenderSVG(dot)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = vio.WritePlan(vio.BuildPlan(res.Recomposition), &buf)
			data = buf.Bytes()
		case FormatText:
			data = renderText(res)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = dualSVG()
		case FormatPNG:
			if data, err = dualSVG(); err == nil {
				data, err = render.ToPNG(data, 2.0)
			}
		case FormatPDF:
			if data, err = dualSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderText writes one line per step followed by the checksums.
func renderText(res *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "description: %s\n", res.Description.Sentence())
	for i, s := range res.Decomposition {
		fmt.Fprintf(&buf, "decompose %d: %s\n", i+1, s)
	}
	for i, s := range res.Recomposition {
		fmt.Fprintf(&buf, "recompose %d: %s\n", i+1, s)
	}
	fmt.Fprintf(&buf, "checksum: decomposition=%.6f recomposition=%.6f\n",
		res.Stats.DecompositionChecksum, res.Checksum)
	return buf.Bytes()
}
