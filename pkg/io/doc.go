// Package io provides JSON and YAML import and export for formula ASTs.
//
// # Overview
//
// An external STL parser hands its output to stltree as a serialized AST.
// The format is a tree of objects, each tagged with an "op":
//
//	{"op": "and", "children": [
//	  {"op": "not", "child": {"op": "predicate", "variable": "x", "relation": ">", "threshold": 10}},
//	  {"op": "eventually", "low": 0, "high": 2,
//	   "child": {"op": "predicate", "variable": "y", "relation": ">", "threshold": 2}}
//	]}
//
// # Fields
//
//   - op: one of bool, predicate, and, or, implies, not, always,
//     eventually, until, release
//   - value: the constant of a bool node
//   - variable, relation, threshold: predicate fields. relation is one of
//     <, <=, >, >=, == (or =), != (or <>)
//   - low, high: interval bounds of always, eventually, until and release
//   - child: operand of not, always and eventually
//   - left, right: operands of implies, until and release
//   - children: the two or more operands of and and or
//
// The same field names are used for YAML documents.
//
// # Import
//
// Use [ImportJSON] or [ImportYAML] to read a tree from a file path, [Import]
// to pick the decoder from the file extension, or [ReadJSON] and [ReadYAML]
// to read from any io.Reader:
//
//	n, err := io.Import("formula.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding enforces operator arity and known op and relation names. Errors
// carry [errors.ErrCodeInvalidAST] and name the offending position, for
// example "children[1].child: not needs a child". A release node decodes
// normally; rejecting it is left to the renderers.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the canonical form of a tree. The
// canonical form is stable for a given tree, which makes it suitable as
// cache key material.
//
// [errors.ErrCodeInvalidAST]: github.com/matzehuels/stltree/pkg/errors.ErrCodeInvalidAST
package io
