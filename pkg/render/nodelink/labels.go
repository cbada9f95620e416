package nodelink

import (
	"fmt"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/stl"
)

var relationSymbols = map[stl.Relation]string{
	stl.LT:  "<",
	stl.LE:  "≤",
	stl.GT:  ">",
	stl.GE:  "≥",
	stl.EQ:  "=",
	stl.NEQ: "≠",
}

// fmtLabel returns the plain Unicode label of a node.
func fmtLabel(n stl.Node, detailed bool) (string, error) {
	var label string
	switch n := n.(type) {
	case stl.Bool:
		label = "⊥"
		if n.Value {
			label = "⊤"
		}
	case stl.Predicate:
		label = fmt.Sprintf("%s %s %s", n.Variable, relationSymbols[n.Relation], stl.FormatNumber(n.Threshold))
	case stl.And:
		label = "∧"
	case stl.Or:
		label = "∨"
	case stl.Implies:
		label = "⇒"
	case stl.Not:
		label = "¬"
	case stl.Always:
		label = bounded("□", n)
	case stl.Eventually:
		label = bounded("◇", n)
	case stl.Until:
		label = bounded("U", n)
	default:
		return "", &errors.UnsupportedOperatorError{Operator: n.Kind().String(), Table: "label"}
	}
	if detailed {
		label += "\n" + n.Kind().String()
	}
	return label, nil
}

func bounded(op string, n stl.Node) string {
	low, high, _ := stl.Interval(n)
	return fmt.Sprintf("%s[%s, %s]", op, stl.FormatNumber(low), stl.FormatNumber(high))
}
