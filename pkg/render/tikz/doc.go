// Package tikz renders STL formula trees as TikZ tree diagrams.
//
// # Overview
//
// Rendering happens in two steps:
//
//  1. [Renderer.Render] walks the formula depth-first and produces the
//     nested "node [style] {label} child {...}" markup of the TikZ tree
//     syntax, plus the set of styles the tree uses.
//  2. [Assemble] wraps that markup in a tikzpicture and, in standalone mode,
//     in a complete LaTeX document whose \tikzset block declares exactly
//     the styles used.
//
// [ToDocument] runs both steps:
//
//	doc, err := tikz.ToDocument(phi, tikz.WithLibraries("arrows", "shapes"))
//
// # Registry
//
// Each operator kind maps to a [Style] ("leaf" or "intermediate") and to a
// [LabelFunc] producing its math-mode label: $\top$, $x > 10$, $\land$,
// $\square_{[0, 2]}$ and so on. The tables live in a [Registry];
// [DefaultRegistry] covers every operator except Release, which is rejected
// with [errors.UnsupportedOperatorError] rather than drawn with a guessed
// label. Custom registries are built with [NewRegistry].
//
// # Layout
//
// Child blocks are indented four spaces per tree level. LaTeX ignores the
// whitespace, but the output is byte-for-byte deterministic so it can be
// compared against golden files.
//
// [errors.UnsupportedOperatorError]: github.com/matzehuels/stltree/pkg/errors.UnsupportedOperatorError
package tikz
