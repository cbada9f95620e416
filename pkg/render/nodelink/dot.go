package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/render"
	"github.com/matzehuels/stltree/pkg/render/tikz"
	"github.com/matzehuels/stltree/pkg/stl"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends the operator name to every node label.
	Detailed bool
	// Registry decides which operators are supported and whether a node is
	// drawn as a leaf or an intermediate node. Nil means
	// [tikz.DefaultRegistry].
	Registry *tikz.Registry
}

var shapes = map[tikz.Style]string{
	tikz.StyleLeaf:         "shape=ellipse",
	tikz.StyleIntermediate: `shape=box, style="rounded"`,
}

// ToDOT converts a formula tree to Graphviz DOT format. Nodes are named n0,
// n1, ... in pre-order and edges are emitted in child order, so the left
// operand of implies and until is drawn first.
//
// Trees that fail [stl.Validate] are rejected. Operators the registry does
// not support fail with [errors.UnsupportedOperatorError], and nothing is
// returned.
func ToDOT(n stl.Node, opts Options) (string, error) {
	if err := stl.Validate(n); err != nil {
		return "", err
	}
	reg := opts.Registry
	if reg == nil {
		reg = tikz.DefaultRegistry()
	}

	var nodes, edges bytes.Buffer
	next := 0
	var visit func(n stl.Node, path string) (string, error)
	visit = func(n stl.Node, path string) (string, error) {
		if n == nil {
			return "", errors.New(errors.ErrCodeInvalidAST, "%s: missing operand", stl.PathOrRoot(path))
		}
		style, err := reg.StyleOf(n.Kind())
		if err != nil {
			return "", err
		}
		label, err := fmtLabel(n, opts.Detailed)
		if err != nil {
			return "", err
		}
		shape, ok := shapes[style]
		if !ok {
			shape = "shape=box"
		}

		id := "n" + strconv.Itoa(next)
		next++
		fmt.Fprintf(&nodes, "  %s [label=%q, %s];\n", id, label, shape)

		for i, ch := range n.Children() {
			cid, err := visit(ch, stl.JoinPath(path, stl.OperandName(n, i)))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&edges, "  %s -> %s;\n", id, cid)
		}
		return id, nil
	}
	if _, err := visit(n, ""); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  node [fontsize=20, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.Write(nodes.Bytes())
	if edges.Len() > 0 {
		buf.WriteString("\n")
		buf.Write(edges.Bytes())
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
