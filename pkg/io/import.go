package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/stl"
)

// ReadJSON decodes a JSON formula tree from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or has trailing data
//   - A node has an unknown op or relation
//   - A node is missing an operand or attribute its op requires
//
// Errors carry [errors.ErrCodeInvalidAST] and name the offending node.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (stl.Node, error) {
	dec := json.NewDecoder(r)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAST, err, "decode json")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidAST, "decode json: trailing data after document")
	}
	return toNode(&doc, "")
}

// ReadYAML decodes a YAML formula tree from r. Field names and checks are
// the same as for [ReadJSON].
func ReadYAML(r io.Reader) (stl.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read yaml")
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAST, err, "decode yaml")
	}
	if len(root.Content) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAST, "decode yaml: empty document")
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAST, err, "decode yaml")
	}
	return toNode(&doc, "")
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
func ImportJSON(path string) (stl.Node, error) {
	return importFile(path, ReadJSON)
}

// ImportYAML reads a YAML file at path and returns the decoded tree.
func ImportYAML(path string) (stl.Node, error) {
	return importFile(path, ReadYAML)
}

// Import reads a tree from path, choosing the decoder from the extension:
// .yaml and .yml are YAML, everything else is JSON.
func Import(path string) (stl.Node, error) {
	return importFile(path, DecoderFor(path))
}

// DecoderFor returns the decoder [Import] would use for name.
func DecoderFor(name string) func(io.Reader) (stl.Node, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ReadYAML
	}
	return ReadJSON
}

// Decode sniffs data and decodes it as JSON when it starts with '{',
// otherwise as YAML.
func Decode(data []byte) (stl.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return ReadJSON(bytes.NewReader(data))
	}
	return ReadYAML(bytes.NewReader(data))
}

func importFile(path string, read func(io.Reader) (stl.Node, error)) (stl.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	n, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return n, nil
}
