// Package linkgraph draws the hyperlink structure of a planner as a
// Graphviz diagram: one node per page, one edge per distinct source and
// destination pair.
//
//	dot := linkgraph.ToDOT(d, linkgraph.Options{Kinds: []string{"monthly", "weekly"}})
//	svg, err := linkgraph.RenderSVG(ctx, dot)
package linkgraph

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"maps"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/errors"
)

// Options configures the diagram.
type Options struct {
	// Kinds restricts the graph to pages of these kinds. Empty keeps all.
	Kinds []string

	// Detailed adds page numbers to node labels and link counts to edges.
	Detailed bool
}

// kindColors fills nodes by page kind.
var kindColors = map[string]string{
	"cover":         "white",
	"index":         "lightgoldenrod",
	"key":           "white",
	"future":        "lightsalmon",
	"monthly":       "lightblue",
	"monthly-tasks": "lightcyan",
	"weekly":        "palegreen",
	"daily":         "whitesmoke",
	"collection":    "thistle",
}

type edge struct{ from, to int }

// ToDOT converts the links of d to Graphviz DOT.
func ToDOT(d *doc.Document, opts Options) string {
	keep := func(i int) bool {
		return len(opts.Kinds) == 0 || slices.Contains(opts.Kinds, d.Pages[i].Kind)
	}

	counts := make(map[edge]int)
	for i, p := range d.Pages {
		if !keep(i) {
			continue
		}
		for _, l := range p.Links {
			if l.Dest == i || l.Dest < 0 || l.Dest >= len(d.Pages) || !keep(l.Dest) {
				continue
			}
			counts[edge{i, l.Dest}]++
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for i, p := range d.Pages {
		if !keep(i) {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(i), strings.Join(fmtAttrs(i, p, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	edges := slices.SortedFunc(maps.Keys(counts), func(a, b edge) int {
		return cmp.Or(cmp.Compare(a.from, b.from), cmp.Compare(a.to, b.to))
	})
	for _, e := range edges {
		if opts.Detailed && counts[e] > 1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\"];\n", nodeID(e.from), nodeID(e.to), counts[e])
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(e.from), nodeID(e.to))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "p" + strconv.Itoa(i) }

func fmtLabel(i int, p *doc.Page, detailed bool) string {
	label := p.Label
	if label == "" {
		label = p.Kind
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\npage %d", label, i+1)
}

func fmtAttrs(i int, p *doc.Page, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(i, p, detailed))}
	if c, ok := kindColors[p.Kind]; ok && c != "white" {
		attrs = append(attrs, "fillcolor="+c)
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and scales with its container.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPNG rasterises a DOT graph through SVG with rsvg-convert at the
// given scale. Requires librsvg (brew install librsvg, apt install
// librsvg2-bin).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "png export requires rsvg-convert from librsvg")
	}

	cmd := exec.CommandContext(ctx, "rsvg-convert", "-f", "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
