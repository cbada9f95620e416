package tikz

import (
	"strings"
	"unicode"

	"github.com/matzehuels/stltree/pkg/stl"
)

// indentSize is the number of spaces per tree level in nested child blocks.
const indentSize = 4

// Tree is a rendered TikZ node tree.
type Tree struct {
	// Text is the "node [...] {...} child {...}" markup of the root node.
	Text string
	// Styles lists each style used by the tree once, in registry order.
	Styles []Style
}

// Renderer turns formula trees into TikZ node markup.
type Renderer struct {
	reg *Registry
}

// NewRenderer returns a renderer backed by reg, or by [DefaultRegistry]
// when reg is nil.
func NewRenderer(reg *Registry) *Renderer {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Renderer{reg: reg}
}

// Render renders the tree rooted at n. The root sits at depth 1.
//
// The tree is checked with [stl.Validate] first, so a missing operand or an
// And/Or with fewer than two operands is an INVALID_AST error. Rendering is
// all-or-nothing: an operator without a style or label yields an
// [errors.UnsupportedOperatorError] and an empty Tree.
func (r *Renderer) Render(n stl.Node) (Tree, error) {
	if err := stl.Validate(n); err != nil {
		return Tree{}, err
	}
	used := make(map[Style]bool)
	text, err := r.render(n, 1, used)
	if err != nil {
		return Tree{}, err
	}
	return Tree{Text: text, Styles: r.reg.order(used)}, nil
}

func (r *Renderer) render(n stl.Node, depth int, used map[Style]bool) (string, error) {
	style, err := r.reg.StyleOf(n.Kind())
	if err != nil {
		return "", err
	}
	label, err := r.reg.LabelOf(n)
	if err != nil {
		return "", err
	}
	used[style] = true

	var blocks []string
	for _, ch := range n.Children() {
		text, err := r.render(ch, depth+1, used)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, "child {\n"+text+"\n}")
	}

	children := strings.Join(blocks, "\n")
	if children != "" {
		children = indent(children, depth)
	}
	return "node [" + string(style) + "] {" + label + "} " + children, nil
}

// indent moves the child blocks onto a fresh line and prefixes every line
// but the first with indentSize*depth spaces.
func indent(children string, depth int) string {
	pad := strings.Repeat(" ", indentSize*depth)
	lines := strings.SplitAfter("\n"+strings.TrimLeftFunc(children, unicode.IsSpace), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, pad)
}
