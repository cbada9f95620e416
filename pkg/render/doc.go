// Package render holds the formula tree renderers and shared format
// conversion.
//
// # Renderers
//
//   - [tikz]: LaTeX/TikZ tree source, either a standalone document or a
//     figure fragment. This is the primary output.
//   - [nodelink]: Graphviz node-link diagram of the same tree, as DOT or SVG.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	dot, err := nodelink.ToDOT(n, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// A missing rsvg-convert yields an UNSUPPORTED error; use [Available] to
// check beforehand.
//
// [tikz]: github.com/matzehuels/stltree/pkg/render/tikz
// [nodelink]: github.com/matzehuels/stltree/pkg/render/nodelink
package render
