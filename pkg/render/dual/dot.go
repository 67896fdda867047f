package dual

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/venntower/pkg/diagram"
	dualgraph "github.com/matzehuels/venntower/pkg/diagram/dual"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// Options configures dual graph rendering.
type Options struct {
	// Detailed adds curve ids and the introducing step to node labels.
	Detailed bool
}

// palette colours nodes by introducing step, cycling when steps outnumber it.
var palette = []string{
	"white", "#dbeafe", "#dcfce7", "#fef9c3", "#fde2e4", "#ede9fe", "#ffedd5", "#ccfbf1",
}

// ToDOT converts the dual graph of d to Graphviz DOT format. Steps may be
// nil, in which case no node is annotated.
func ToDOT(d *diagram.Description, steps []recompose.Step, opts Options) string {
	introduced := introducedBy(steps)
	g := dualgraph.New(d.Zones())

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  edge [fontsize=14, fontcolor=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		step, ok := stepOf(n.Zone, introduced)
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n.Zone, step, ok, opts.Detailed))}
		if ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", palette[step%len(palette)]))
		}
		if d.HasShadedZone(n.Zone) {
			attrs = append(attrs, "style=\"filled,dashed\"", "fontcolor=\"#777777\"")
		}
		fmt.Fprintf(&buf, "  z%d [%s];\n", n.Index, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  z%d -- z%d [label=%q];\n", e.From, e.To, e.Label.Label().String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

// introducedBy maps each added curve to the 1-based step that added it.
func introducedBy(steps []recompose.Step) map[*diagram.Curve]int {
	if len(steps) == 0 {
		return nil
	}
	m := make(map[*diagram.Curve]int)
	for i, s := range steps {
		for _, data := range s.Added {
			m[data.Curve] = i + 1
		}
	}
	return m
}

func stepOf(z *diagram.Zone, introduced map[*diagram.Curve]int) (int, bool) {
	if introduced == nil {
		return 0, false
	}
	step := 0
	for _, c := range z.Curves() {
		if s, ok := introduced[c]; ok && s > step {
			step = s
		}
	}
	return step, true
}

func fmtLabel(z *diagram.Zone, step int, annotated, detailed bool) string {
	name := z.String()
	if z.IsOutside() {
		name = "outside"
	}
	if !detailed {
		return name
	}

	var parts []string
	if !z.IsOutside() {
		ids := make([]string, 0, z.Len())
		for _, c := range z.Curves() {
			ids = append(ids, strconv.Itoa(c.ID()))
		}
		parts = append(parts, "curves: "+strings.Join(ids, " "))
	}
	if annotated {
		parts = append(parts, fmt.Sprintf("step: %d", step))
	}
	if len(parts) == 0 {
		return name
	}
	return name + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin regardless of the translation Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
