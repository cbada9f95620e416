// Package stl models the abstract syntax tree of Signal Temporal Logic
// (STL) and weighted STL formulas.
//
// # Overview
//
// A formula is a tree of [Node] values. Each operator kind has its own
// struct type:
//
//   - [Bool] and [Predicate] are leaves
//   - [Not], [Always] and [Eventually] have one child
//   - [Implies], [Until] and [Release] have a left and a right operand
//   - [And] and [Or] have two or more children
//
// Temporal operators carry a closed time interval [Low, High]. The package
// does not check Low <= High; that is the job of whatever produced the tree.
//
// # Traversal
//
// [Node.Children] returns operands in left-to-right visual order, so generic
// walks such as [Walk], [Size] and [Depth] need no per-kind logic:
//
//	phi := stl.And{Operands: []stl.Node{
//	    stl.Not{Child: stl.Predicate{Variable: "x", Relation: stl.GT, Threshold: 10}},
//	    stl.Eventually{Low: 0, High: 2, Child: stl.Predicate{Variable: "y", Relation: stl.GT, Threshold: 2}},
//	}}
//	fmt.Println(stl.Size(phi), stl.Depth(phi)) // 5 3
//
// Trees are immutable values once built. Renderers read them and never keep
// references after returning.
package stl
