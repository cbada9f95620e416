// Package nodelink renders formula trees as Graphviz node-link diagrams.
//
// # Overview
//
// This is an alternative to the TikZ output for cases where an image is
// wanted without a LaTeX toolchain. Every AST node becomes a Graphviz node
// with a plain Unicode label (⊤ ⊥ ∧ ∨ ⇒ ¬ □ ◇ U); leaves are ellipses and
// operators are rounded boxes. Edges point from an operator to its operands.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(n, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Supported Operators
//
// Support is decided by the same registry as the TikZ renderer, so a tree
// the TikZ renderer rejects (for example one containing release) is
// rejected here with the same error.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
