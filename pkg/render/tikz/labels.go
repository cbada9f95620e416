package tikz

import (
	"fmt"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/stl"
)

var relationSymbols = map[stl.Relation]string{
	stl.LT:  `<`,
	stl.LE:  `\leq`,
	stl.GT:  `>`,
	stl.GE:  `\geq`,
	stl.EQ:  `=`,
	stl.NEQ: `\neq`,
}

func boolLabel(n stl.Node) (string, error) {
	b, ok := n.(stl.Bool)
	if !ok {
		return "", mismatch(n, "bool")
	}
	if b.Value {
		return `$\top$`, nil
	}
	return `$\bot$`, nil
}

func predicateLabel(n stl.Node) (string, error) {
	p, ok := n.(stl.Predicate)
	if !ok {
		return "", mismatch(n, "predicate")
	}
	sym, ok := relationSymbols[p.Relation]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidAST, "predicate %s: unknown relation %s", p.Variable, p.Relation)
	}
	return fmt.Sprintf("$%s %s %s$", p.Variable, sym, stl.FormatNumber(p.Threshold)), nil
}

// symbolLabel returns a formatter producing the same text for every node.
func symbolLabel(text string) LabelFunc {
	return func(stl.Node) (string, error) {
		return text, nil
	}
}

// boundedLabel returns a formatter for temporal operators that subscripts
// op with the node's interval, e.g. $\square_{[0, 2]}$.
func boundedLabel(op string) LabelFunc {
	return func(n stl.Node) (string, error) {
		low, high, ok := stl.Interval(n)
		if !ok {
			return "", mismatch(n, "temporal operator")
		}
		return fmt.Sprintf("$%s_{[%s, %s]}$", op, stl.FormatNumber(low), stl.FormatNumber(high)), nil
	}
}

func mismatch(n stl.Node, want string) error {
	return errors.New(errors.ErrCodeInvalidAST, "%s node has type %T, want %s", n.Kind(), n, want)
}
