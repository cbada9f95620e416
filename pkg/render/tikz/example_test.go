package tikz_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stltree/pkg/render/tikz"
	"github.com/matzehuels/stltree/pkg/stl"
)

func ExampleToDocument() {
	// G[0, 2] (y > 2)
	phi := stl.Always{Low: 0, High: 2, Child: stl.Predicate{Variable: "y", Relation: stl.GT, Threshold: 2}}

	doc, err := tikz.ToDocument(phi, tikz.WithStandalone(false))
	if err != nil {
		panic(err)
	}
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	// Output:
	// \begin{tikzpicture}[->,>=stealth',level/.style={sibling distance = 5cm/#1, level distance = 1.5cm}]
	// \node [intermediate] {$\square_{[0, 2]}$}
	//     child {
	//     node [leaf] {$y > 2$}
	//     }
	// ;
	//
	// \end{tikzpicture}
}

func ExampleRegistry_LabelOf() {
	reg := tikz.DefaultRegistry()
	label, _ := reg.LabelOf(stl.Predicate{Variable: "x", Relation: stl.GE, Threshold: 0.5})
	fmt.Println(label)

	_, err := reg.StyleOf(stl.KindRelease)
	fmt.Println(err)
	// Output:
	// $x \geq 0.5$
	// unsupported operator "release": no style registered
}
