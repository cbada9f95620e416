// Package pkg provides the libraries behind stltree, a renderer for Signal
// Temporal Logic formula trees.
//
// # Overview
//
// A formula tree is produced by an external parser and handed to stltree as
// JSON or YAML. The pkg directory is organized into these areas:
//
//  1. [stl] - The formula tree: node types, intervals, traversal
//  2. [io] - JSON and YAML encoding of trees
//  3. [render] - TikZ output ([render/tikz]) and Graphviz diagrams ([render/nodelink])
//  4. [pipeline] - Rendering with caching, shared by the CLI and the server
//  5. [cache], [config], [observability] - Infrastructure
//  6. [server], [watch], [compile] - Ways to run the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	formula.json / formula.yaml
//	         ↓
//	    [io] package (decode and check arity)
//	         ↓
//	    [pipeline] package (cache lookup, render)
//	         ↓
//	    [render/tikz] or [render/nodelink]
//	         ↓
//	    TeX/DOT/SVG/PDF/PNG output
//
// # Quick Start
//
//	tree, err := io.ImportJSON("formula.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := tikz.ToDocument(tree, tikz.WithLibraries("arrows"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(doc)
package pkg
