package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// WriteJSON encodes g as indented JSON.
func WriteJSON(g visgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ExportJSON writes g to path.
func ExportJSON(g visgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a graph document and checks that ids are unique and
// every edge endpoint is a node.
func ReadJSON(r io.Reader) (visgraph.Graph, error) {
	var g visgraph.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return visgraph.Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}

	nodes := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return visgraph.Graph{}, errors.New(errors.ErrCodeInvalidInput, "node without id")
		}
		if nodes[n.ID] {
			return visgraph.Graph{}, errors.New(errors.ErrCodeInvalidInput, "duplicate node %s", n.ID)
		}
		nodes[n.ID] = true
	}
	edges := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edges[e.ID] {
			return visgraph.Graph{}, errors.New(errors.ErrCodeInvalidInput, "duplicate edge %s", e.ID)
		}
		edges[e.ID] = true
		if !nodes[e.From] || !nodes[e.To] {
			return visgraph.Graph{}, errors.New(errors.ErrCodeDanglingReference, "edge %s: %s -> %s", e.ID, e.From, e.To)
		}
	}
	return g, nil
}

// ImportJSON reads a graph document from path.
func ImportJSON(path string) (visgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return visgraph.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
