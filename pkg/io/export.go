package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stltree/pkg/stl"
)

// WriteJSON encodes a formula tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(n stl.Node, w io.Writer) error {
	doc, err := fromNode(n)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a formula tree to a JSON file at path.
func ExportJSON(n stl.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(n, f)
}

// Canonical returns the compact JSON encoding of n. Equal trees yield equal
// bytes.
func Canonical(n stl.Node) ([]byte, error) {
	doc, err := fromNode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
