package stl

import (
	"fmt"

	"github.com/matzehuels/stltree/pkg/errors"
)

// Walk visits n and its descendants in pre-order. The root has depth 1.
// Returning false from fn skips the children of the visited node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 1, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, ch := range n.Children() {
		walk(ch, depth+1, fn)
	}
}

// Size returns the number of nodes in the tree rooted at n.
func Size(n Node) int {
	count := 0
	Walk(n, func(Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the nesting depth of n. A single leaf has depth 1.
func Depth(n Node) int {
	max := 0
	Walk(n, func(_ Node, d int) bool {
		if d > max {
			max = d
		}
		return true
	})
	return max
}

// KindsUsed returns the distinct operator kinds in n, in [Kind] order.
func KindsUsed(n Node) []Kind {
	seen := make(map[Kind]bool)
	Walk(n, func(n Node, _ int) bool {
		seen[n.Kind()] = true
		return true
	})
	var out []Kind
	for _, k := range Kinds() {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// Validate checks the structural shape of a tree: no nil operands and at
// least two operands for [And] and [Or]. Interval bounds are not checked.
// The returned error carries [errors.ErrCodeInvalidAST] and names the
// offending position, e.g. "children[1].child".
func Validate(n Node) error {
	return validate(n, "")
}

func validate(n Node, path string) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidAST, "%s: missing operand", PathOrRoot(path))
	}
	children := n.Children()
	switch n.Kind() {
	case KindAnd, KindOr:
		if len(children) < 2 {
			return errors.New(errors.ErrCodeInvalidAST, "%s: %s needs at least 2 operands, got %d", PathOrRoot(path), n.Kind(), len(children))
		}
	}
	for i, ch := range children {
		if err := validate(ch, JoinPath(path, OperandName(n, i))); err != nil {
			return err
		}
	}
	return nil
}

// OperandName names the i-th operand of parent the way serialized trees do:
// "child", "left", "right" or "children[i]".
func OperandName(parent Node, i int) string {
	switch parent.Kind() {
	case KindAnd, KindOr:
		return fmt.Sprintf("children[%d]", i)
	}
	switch len(parent.Children()) {
	case 1:
		return "child"
	case 2:
		if i == 0 {
			return "left"
		}
		return "right"
	}
	return fmt.Sprintf("operand[%d]", i)
}

// JoinPath appends elem to a dotted operand path.
func JoinPath(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "." + elem
}

// PathOrRoot returns path, or "root" for the empty path.
func PathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
