package nodelink

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/stl"
)

func TestToDOT(t *testing.T) {
	n := stl.Implies{
		Left:  stl.Predicate{Variable: "x", Relation: stl.GE, Threshold: 0.5},
		Right: stl.Eventually{Low: 0, High: 2, Child: stl.Bool{Value: true}},
	}
	got, err := ToDOT(n, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	want := `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ordering=out;
  node [fontsize=20, margin="0.15,0.08"];
  ranksep=0.5;
  nodesep=0.3;

  n0 [label="⇒", shape=box, style="rounded"];
  n1 [label="x ≥ 0.5", shape=ellipse];
  n2 [label="◇[0, 2]", shape=box, style="rounded"];
  n3 [label="⊤", shape=ellipse];

  n0 -> n1;
  n0 -> n2;
  n2 -> n3;
}
`
	if got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOTLeaf(t *testing.T) {
	got, err := ToDOT(stl.Bool{}, Options{Detailed: true})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if !strings.Contains(got, `n0 [label="⊥\nbool", shape=ellipse];`) {
		t.Errorf("ToDOT() = %s", got)
	}
	if strings.Contains(got, "->") {
		t.Errorf("ToDOT() leaf has edges: %s", got)
	}
}

func TestToDOTChildOrder(t *testing.T) {
	n := stl.And{Operands: []stl.Node{
		stl.Predicate{Variable: "a"}, stl.Predicate{Variable: "b"}, stl.Predicate{Variable: "c"},
	}}
	got, err := ToDOT(n, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	a := strings.Index(got, `"a < 0"`)
	b := strings.Index(got, `"b < 0"`)
	c := strings.Index(got, `"c < 0"`)
	if a < 0 || !(a < b && b < c) {
		t.Errorf("ToDOT() node order wrong:\n%s", got)
	}
	if !strings.Contains(got, "n0 -> n1;\n  n0 -> n2;\n  n0 -> n3;\n") {
		t.Errorf("ToDOT() edge order wrong:\n%s", got)
	}
}

func TestToDOTUnsupported(t *testing.T) {
	n := stl.Not{Child: stl.Release{Left: stl.Bool{}, Right: stl.Bool{}}}
	got, err := ToDOT(n, Options{})
	if got != "" {
		t.Errorf("ToDOT() returned partial output %q", got)
	}
	var uerr *errors.UnsupportedOperatorError
	if !stderrors.As(err, &uerr) || uerr.Operator != "release" {
		t.Errorf("ToDOT() error = %v, want unsupported release", err)
	}
}

func TestToDOTMissingOperand(t *testing.T) {
	_, err := ToDOT(stl.Not{Child: stl.Until{Left: stl.Bool{}}}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidAST) || !strings.Contains(err.Error(), "child.right") {
		t.Errorf("ToDOT() error = %v", err)
	}
}

func TestToDOTTooFewOperands(t *testing.T) {
	dot, err := ToDOT(stl.Or{Operands: []stl.Node{stl.Bool{Value: true}}}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidAST) || dot != "" {
		t.Errorf("ToDOT(one-operand or) = %q, %v; want INVALID_AST", dot, err)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		node stl.Node
		want string
	}{
		{stl.Bool{Value: true}, "⊤"},
		{stl.Predicate{Variable: "v", Relation: stl.NEQ, Threshold: -1}, "v ≠ -1"},
		{stl.Or{}, "∨"},
		{stl.Not{}, "¬"},
		{stl.Always{Low: 1, High: 2.5}, "□[1, 2.5]"},
		{stl.Until{Low: 0, High: 10}, "U[0, 10]"},
	}
	for _, tt := range tests {
		got, err := fmtLabel(tt.node, false)
		if err != nil || got != tt.want {
			t.Errorf("fmtLabel(%v) = %q, %v; want %q", tt.node.Kind(), got, err, tt.want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ToDOT(stl.Not{Child: stl.Bool{Value: true}}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
