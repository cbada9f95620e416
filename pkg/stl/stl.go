package stl

import "fmt"

// Kind identifies the operator of a [Node].
type Kind int

// Operator kinds.
const (
	KindBool Kind = iota
	KindPredicate
	KindAnd
	KindOr
	KindImplies
	KindNot
	KindAlways
	KindEventually
	KindUntil
	KindRelease
)

var kindNames = [...]string{
	KindBool:       "bool",
	KindPredicate:  "predicate",
	KindAnd:        "and",
	KindOr:         "or",
	KindImplies:    "implies",
	KindNot:        "not",
	KindAlways:     "always",
	KindEventually: "eventually",
	KindUntil:      "until",
	KindRelease:    "release",
}

// String returns the serialized name of the kind, e.g. "eventually".
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind returns the kind with the given serialized name.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Kinds returns every operator kind known to the AST model.
func Kinds() []Kind {
	ks := make([]Kind, len(kindNames))
	for i := range kindNames {
		ks[i] = Kind(i)
	}
	return ks
}

// Relation is the comparison operator of a [Predicate].
type Relation int

// Relations.
const (
	LT Relation = iota
	LE
	GT
	GE
	EQ
	NEQ
)

var relationOps = [...]string{
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",
	EQ:  "==",
	NEQ: "!=",
}

// String returns the textual operator, e.g. "<=".
func (r Relation) String() string {
	if r >= 0 && int(r) < len(relationOps) {
		return relationOps[r]
	}
	return fmt.Sprintf("relation(%d)", int(r))
}

// ParseRelation parses a textual operator. Both "!=" and "<>" denote NEQ,
// and "=" is accepted for EQ.
func ParseRelation(s string) (Relation, bool) {
	switch s {
	case "=":
		return EQ, true
	case "<>":
		return NEQ, true
	}
	for r, op := range relationOps {
		if op == s {
			return Relation(r), true
		}
	}
	return 0, false
}

// Node is a formula AST node.
type Node interface {
	// Kind reports the operator of the node.
	Kind() Kind
	// Children returns the operands in left-to-right order. Leaves return nil.
	Children() []Node
}

// Bool is the constant true or false.
type Bool struct {
	Value bool
}

// Predicate compares a signal variable with a threshold: Variable Relation Threshold.
type Predicate struct {
	Variable  string
	Relation  Relation
	Threshold float64
}

// And is the conjunction of two or more formulas.
type And struct {
	Operands []Node
}

// Or is the disjunction of two or more formulas.
type Or struct {
	Operands []Node
}

// Implies is Left => Right.
type Implies struct {
	Left, Right Node
}

// Not negates Child.
type Not struct {
	Child Node
}

// Always requires Child to hold at every time in [Low, High].
type Always struct {
	Low, High float64
	Child     Node
}

// Eventually requires Child to hold at some time in [Low, High].
type Eventually struct {
	Low, High float64
	Child     Node
}

// Until requires Left to hold until Right holds, within [Low, High].
type Until struct {
	Low, High   float64
	Left, Right Node
}

// Release is the dual of [Until]. It is part of the AST model but renderers
// may not support it.
type Release struct {
	Low, High   float64
	Left, Right Node
}

func (Bool) Kind() Kind       { return KindBool }
func (Predicate) Kind() Kind  { return KindPredicate }
func (And) Kind() Kind        { return KindAnd }
func (Or) Kind() Kind         { return KindOr }
func (Implies) Kind() Kind    { return KindImplies }
func (Not) Kind() Kind        { return KindNot }
func (Always) Kind() Kind     { return KindAlways }
func (Eventually) Kind() Kind { return KindEventually }
func (Until) Kind() Kind      { return KindUntil }
func (Release) Kind() Kind    { return KindRelease }

func (Bool) Children() []Node         { return nil }
func (Predicate) Children() []Node    { return nil }
func (n And) Children() []Node        { return n.Operands }
func (n Or) Children() []Node         { return n.Operands }
func (n Implies) Children() []Node    { return []Node{n.Left, n.Right} }
func (n Not) Children() []Node        { return []Node{n.Child} }
func (n Always) Children() []Node     { return []Node{n.Child} }
func (n Eventually) Children() []Node { return []Node{n.Child} }
func (n Until) Children() []Node      { return []Node{n.Left, n.Right} }
func (n Release) Children() []Node    { return []Node{n.Left, n.Right} }
