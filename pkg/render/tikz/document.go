package tikz

import (
	"strings"

	"github.com/matzehuels/stltree/pkg/stl"
)

// Document templates. These are consumed by LaTeX and must not change.
const (
	documentTemplate = "\n" +
		`\documentclass{standalone}` + "\n" +
		`\usepackage{amsmath}` + "\n" +
		`\usepackage{amssymb}` + "\n" +
		`\usepackage{amsfonts}` + "\n" +
		`\usepackage{tikz}` + "\n" +
		"{libraries}\n" +
		"\n" +
		"{style}\n" +
		"\n" +
		`\begin{document}` + "\n" +
		"{figure}\n" +
		`\end{document}` + "\n"

	figureTemplate = "\n" +
		`\begin{tikzpicture}[->,>=stealth',level/.style={sibling distance = 5cm/#1, level distance = 1.5cm}]` + "\n" +
		"{tree}\n" +
		`\end{tikzpicture}` + "\n"

	treeTemplate = `\{tree}` + "\n;\n"

	libraryTemplate = `\usetikzlibrary{{lib}}`

	styleBlockTemplate = `\tikzset{` + "\n" +
		`    treenode/.style = {align=center, text centered},` + "\n" +
		"{styles}\n" +
		"}"
)

// Options configures document assembly.
type Options struct {
	// Standalone wraps the figure in a complete LaTeX document with a
	// preamble and a style block. When false only the tikzpicture is emitted.
	Standalone bool
	// Libraries are TikZ libraries declared with \usetikzlibrary, in order.
	// Only used in standalone mode.
	Libraries []string
	// Registry supplies styles, labels and style declarations.
	// Nil means [DefaultRegistry].
	Registry *Registry
}

// Option configures [ToDocument].
type Option func(*Options)

// WithStandalone selects between a full document (true, the default) and a
// bare tikzpicture fragment (false).
func WithStandalone(standalone bool) Option {
	return func(o *Options) { o.Standalone = standalone }
}

// WithLibraries declares TikZ libraries in the document preamble.
func WithLibraries(libs ...string) Option {
	return func(o *Options) { o.Libraries = append(o.Libraries, libs...) }
}

// WithRegistry renders with a custom registry.
func WithRegistry(r *Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// DefaultOptions returns standalone mode with no libraries.
func DefaultOptions() Options {
	return Options{Standalone: true}
}

// ToDocument renders n and assembles the result into a LaTeX document.
//
//	doc, err := tikz.ToDocument(phi, tikz.WithLibraries("arrows", "shapes"))
//
// It fails with [errors.UnsupportedOperatorError] if the tree contains an
// operator the registry does not cover; no partial output is returned.
func ToDocument(n stl.Node, opts ...Option) (string, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tree, err := NewRenderer(o.Registry).Render(n)
	if err != nil {
		return "", err
	}
	return Assemble(tree, o), nil
}

// Assemble wraps a rendered tree in a tikzpicture and, in standalone mode,
// in a full document whose style block declares exactly tree.Styles.
func Assemble(tree Tree, o Options) string {
	figure := fill(figureTemplate, "{tree}", fill(treeTemplate, "{tree}", tree.Text))
	if !o.Standalone {
		return figure
	}

	reg := o.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	libs := make([]string, len(o.Libraries))
	for i, lib := range o.Libraries {
		libs[i] = fill(libraryTemplate, "{lib}", lib)
	}
	style := fill(styleBlockTemplate, "{styles}", strings.Join(reg.Definitions(tree.Styles), "\n"))

	return strings.NewReplacer(
		"{libraries}", strings.Join(libs, "\n"),
		"{style}", style,
		"{figure}", figure,
	).Replace(documentTemplate)
}

// fill substitutes a single placeholder. Substituted text is never rescanned.
func fill(template, placeholder, value string) string {
	return strings.Replace(template, placeholder, value, 1)
}
