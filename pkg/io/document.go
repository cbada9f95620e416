package io

import (
	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/stl"
)

// document is the wire shape of a node. Pointer fields distinguish absent
// keys from zero values.
type document struct {
	Op        string      `json:"op" yaml:"op"`
	Value     *bool       `json:"value,omitempty" yaml:"value,omitempty"`
	Variable  string      `json:"variable,omitempty" yaml:"variable,omitempty"`
	Relation  string      `json:"relation,omitempty" yaml:"relation,omitempty"`
	Threshold *float64    `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Low       *float64    `json:"low,omitempty" yaml:"low,omitempty"`
	High      *float64    `json:"high,omitempty" yaml:"high,omitempty"`
	Child     *document   `json:"child,omitempty" yaml:"child,omitempty"`
	Left      *document   `json:"left,omitempty" yaml:"left,omitempty"`
	Right     *document   `json:"right,omitempty" yaml:"right,omitempty"`
	Children  []*document `json:"children,omitempty" yaml:"children,omitempty"`
}

func invalid(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidAST, "%s: "+format, append([]any{stl.PathOrRoot(path)}, args...)...)
}

// toNode converts a decoded document into an AST, checking arity as it goes.
func toNode(d *document, path string) (stl.Node, error) {
	if d == nil {
		return nil, invalid(path, "missing node")
	}
	if d.Op == "" {
		return nil, invalid(path, "missing op")
	}
	kind, ok := stl.ParseKind(d.Op)
	if !ok {
		return nil, invalid(path, "unknown op %q", d.Op)
	}

	switch kind {
	case stl.KindBool:
		if d.Value == nil {
			return nil, invalid(path, "bool needs a value")
		}
		return stl.Bool{Value: *d.Value}, nil

	case stl.KindPredicate:
		if d.Variable == "" {
			return nil, invalid(path, "predicate needs a variable")
		}
		rel, ok := stl.ParseRelation(d.Relation)
		if !ok {
			return nil, invalid(path, "unknown relation %q", d.Relation)
		}
		if d.Threshold == nil {
			return nil, invalid(path, "predicate needs a threshold")
		}
		return stl.Predicate{Variable: d.Variable, Relation: rel, Threshold: *d.Threshold}, nil

	case stl.KindAnd, stl.KindOr:
		if len(d.Children) < 2 {
			return nil, invalid(path, "%s needs at least 2 children, got %d", kind, len(d.Children))
		}
		ops := make([]stl.Node, len(d.Children))
		for i, ch := range d.Children {
			n, err := toNode(ch, stl.JoinPath(path, childrenElem(i)))
			if err != nil {
				return nil, err
			}
			ops[i] = n
		}
		if kind == stl.KindAnd {
			return stl.And{Operands: ops}, nil
		}
		return stl.Or{Operands: ops}, nil

	case stl.KindNot, stl.KindAlways, stl.KindEventually:
		if d.Child == nil {
			return nil, invalid(path, "%s needs a child", kind)
		}
		child, err := toNode(d.Child, stl.JoinPath(path, "child"))
		if err != nil {
			return nil, err
		}
		if kind == stl.KindNot {
			return stl.Not{Child: child}, nil
		}
		low, high, err := bounds(d, path, kind)
		if err != nil {
			return nil, err
		}
		if kind == stl.KindAlways {
			return stl.Always{Low: low, High: high, Child: child}, nil
		}
		return stl.Eventually{Low: low, High: high, Child: child}, nil

	case stl.KindImplies, stl.KindUntil, stl.KindRelease:
		if d.Left == nil || d.Right == nil {
			return nil, invalid(path, "%s needs left and right", kind)
		}
		left, err := toNode(d.Left, stl.JoinPath(path, "left"))
		if err != nil {
			return nil, err
		}
		right, err := toNode(d.Right, stl.JoinPath(path, "right"))
		if err != nil {
			return nil, err
		}
		if kind == stl.KindImplies {
			return stl.Implies{Left: left, Right: right}, nil
		}
		low, high, err := bounds(d, path, kind)
		if err != nil {
			return nil, err
		}
		if kind == stl.KindUntil {
			return stl.Until{Low: low, High: high, Left: left, Right: right}, nil
		}
		return stl.Release{Low: low, High: high, Left: left, Right: right}, nil
	}
	return nil, invalid(path, "unknown op %q", d.Op)
}

func bounds(d *document, path string, kind stl.Kind) (float64, float64, error) {
	if d.Low == nil || d.High == nil {
		return 0, 0, invalid(path, "%s needs low and high", kind)
	}
	return *d.Low, *d.High, nil
}

func childrenElem(i int) string {
	return stl.OperandName(stl.And{}, i)
}

// fromNode converts an AST into its wire shape.
func fromNode(n stl.Node) (*document, error) {
	if n == nil {
		return nil, errors.New(errors.ErrCodeInvalidAST, "nil node")
	}
	d := &document{Op: n.Kind().String()}
	switch n := n.(type) {
	case stl.Bool:
		v := n.Value
		d.Value = &v
	case stl.Predicate:
		t := n.Threshold
		d.Variable, d.Relation, d.Threshold = n.Variable, n.Relation.String(), &t
	case stl.And, stl.Or:
		for _, ch := range n.Children() {
			cd, err := fromNode(ch)
			if err != nil {
				return nil, err
			}
			d.Children = append(d.Children, cd)
		}
		return d, nil
	default:
		if low, high, ok := stl.Interval(n); ok {
			d.Low, d.High = &low, &high
		}
		children := n.Children()
		var err error
		switch len(children) {
		case 1:
			d.Child, err = fromNode(children[0])
		case 2:
			if d.Left, err = fromNode(children[0]); err == nil {
				d.Right, err = fromNode(children[1])
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidAST, "cannot encode %s", n.Kind())
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}
