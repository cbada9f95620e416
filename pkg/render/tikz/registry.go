package tikz

import (
	"fmt"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/stl"
)

// Style is the TikZ node style a node is drawn with.
type Style string

// Built-in styles.
const (
	StyleLeaf         Style = "leaf"
	StyleIntermediate Style = "intermediate"
)

// StyleDef pairs a style with the line that declares it inside \tikzset.
type StyleDef struct {
	Style      Style
	Definition string
}

// LabelFunc formats the label of a node, including math-mode delimiters.
type LabelFunc func(n stl.Node) (string, error)

// Registry maps operator kinds to styles and label formatters.
//
// A Registry is read-only after construction and safe for concurrent use.
// Kinds missing from either table cannot be rendered.
type Registry struct {
	styles map[stl.Kind]Style
	labels map[stl.Kind]LabelFunc
	defs   []StyleDef
}

// NewRegistry builds a registry from the given tables. The maps are copied.
// Every style referenced by styles must have a definition in defs; the order
// of defs fixes the order of declarations in generated style blocks.
func NewRegistry(styles map[stl.Kind]Style, labels map[stl.Kind]LabelFunc, defs []StyleDef) (*Registry, error) {
	r := &Registry{
		styles: make(map[stl.Kind]Style, len(styles)),
		labels: make(map[stl.Kind]LabelFunc, len(labels)),
		defs:   append([]StyleDef(nil), defs...),
	}
	declared := make(map[Style]bool, len(defs))
	for _, d := range defs {
		if declared[d.Style] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "style %q defined twice", d.Style)
		}
		declared[d.Style] = true
	}
	for k, s := range styles {
		if !declared[s] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "style %q of operator %s has no definition", s, k)
		}
		r.styles[k] = s
	}
	for k, fn := range labels {
		if fn == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "nil label formatter for operator %s", k)
		}
		r.labels[k] = fn
	}
	return r, nil
}

// StyleOf returns the style registered for kind.
func (r *Registry) StyleOf(kind stl.Kind) (Style, error) {
	s, ok := r.styles[kind]
	if !ok {
		return "", &errors.UnsupportedOperatorError{Operator: kind.String(), Table: "style"}
	}
	return s, nil
}

// LabelOf returns the label text of n.
func (r *Registry) LabelOf(n stl.Node) (string, error) {
	fn, ok := r.labels[n.Kind()]
	if !ok {
		return "", &errors.UnsupportedOperatorError{Operator: n.Kind().String(), Table: "label"}
	}
	return fn(n)
}

// Supports reports whether kind has both a style and a label.
func (r *Registry) Supports(kind stl.Kind) bool {
	_, hasStyle := r.styles[kind]
	_, hasLabel := r.labels[kind]
	return hasStyle && hasLabel
}

// Definitions returns the declaration lines for styles, in registry order.
// Styles without a definition are skipped.
func (r *Registry) Definitions(styles []Style) []string {
	want := make(map[Style]bool, len(styles))
	for _, s := range styles {
		want[s] = true
	}
	var out []string
	for _, d := range r.defs {
		if want[d.Style] {
			out = append(out, d.Definition)
		}
	}
	return out
}

// order sorts a style set into registry declaration order.
func (r *Registry) order(set map[Style]bool) []Style {
	out := make([]Style, 0, len(set))
	for _, d := range r.defs {
		if set[d.Style] {
			out = append(out, d.Style)
		}
	}
	return out
}

var defaultStyleDefs = []StyleDef{
	{StyleLeaf, `    leaf/.style = {treenode, ellipse, black, draw=black},`},
	{StyleIntermediate, `    intermediate/.style = {treenode, ellipse, black, draw=black},`},
}

// Release is deliberately absent from both tables.
var defaultStyles = map[stl.Kind]Style{
	stl.KindBool:       StyleLeaf,
	stl.KindPredicate:  StyleLeaf,
	stl.KindAnd:        StyleIntermediate,
	stl.KindOr:         StyleIntermediate,
	stl.KindImplies:    StyleIntermediate,
	stl.KindNot:        StyleIntermediate,
	stl.KindAlways:     StyleIntermediate,
	stl.KindEventually: StyleIntermediate,
	stl.KindUntil:      StyleIntermediate,
}

var defaultLabels = map[stl.Kind]LabelFunc{
	stl.KindBool:       boolLabel,
	stl.KindPredicate:  predicateLabel,
	stl.KindAnd:        symbolLabel(`$\land$`),
	stl.KindOr:         symbolLabel(`$\lor$`),
	stl.KindImplies:    symbolLabel(`$\implies$`),
	stl.KindNot:        symbolLabel(`$\lnot$`),
	stl.KindAlways:     boundedLabel(`\square`),
	stl.KindEventually: boundedLabel(`\lozenge`),
	stl.KindUntil:      boundedLabel(`\mathcal{U}`),
}

var defaultRegistry = mustRegistry(NewRegistry(defaultStyles, defaultLabels, defaultStyleDefs))

func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(fmt.Sprintf("tikz: default registry: %v", err))
	}
	return r
}

// DefaultRegistry returns the shared registry covering every operator except
// [stl.Release].
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// DefaultStyleDefs returns a copy of the built-in style declarations, for
// building custom registries on top of them.
func DefaultStyleDefs() []StyleDef {
	return append([]StyleDef(nil), defaultStyleDefs...)
}
