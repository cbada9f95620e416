package pipeline

import (
	"github.com/matzehuels/stltree/pkg/render/tikz"
	"github.com/matzehuels/stltree/pkg/stl"
)

// Summary describes a formula tree without rendering it.
type Summary struct {
	Size        int      `json:"size"`
	Depth       int      `json:"depth"`
	Kinds       []string `json:"kinds"`
	Unsupported []string `json:"unsupported,omitempty"`
}

// Renderable reports whether every operator in the tree has a style and a label.
func (s Summary) Renderable() bool {
	return len(s.Unsupported) == 0
}

// Summarize computes a Summary of n against the default registry.
func Summarize(n stl.Node) Summary {
	reg := tikz.DefaultRegistry()
	s := Summary{Size: stl.Size(n), Depth: stl.Depth(n)}
	for _, k := range stl.KindsUsed(n) {
		s.Kinds = append(s.Kinds, k.String())
		if !reg.Supports(k) {
			s.Unsupported = append(s.Unsupported, k.String())
		}
	}
	return s
}
