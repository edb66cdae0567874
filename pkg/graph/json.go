package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lockgraph/pkg/manifest"
)

type document struct {
	Project manifest.Project `json:"project"`
	Nodes   []node           `json:"nodes"`
	Edges   []Edge           `json:"edges"`
}

type node struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
	Leaf    bool   `json:"leaf,omitempty"`
}

// WriteJSON encodes the edges of m as an indented node-link document.
// Nodes appear in first-appearance order and carry the recorded version.
func WriteJSON(w io.Writer, m *manifest.Manifest, edges []Edge) error {
	doc := document{Nodes: []node{}, Edges: edges}
	if m != nil {
		doc.Project = m.Project
	}
	for _, n := range Nodes(edges) {
		nd := node{ID: n}
		if rec, ok := m.Lookup(n); ok {
			nd.Version = rec.Version
			nd.Leaf = len(rec.Dependencies) == 0
		} else {
			nd.Leaf = true
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSONFile writes the node-link document to path.
func WriteJSONFile(path string, m *manifest.Manifest, edges []Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteJSON(f, m, edges); err != nil {
		return err
	}
	return f.Close()
}
