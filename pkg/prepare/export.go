package prepare

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Serialized registry forms. The full form keeps origin paths for tooling
// that needs to trace a node back to its source file; the minimal form is
// what gets embedded next to the viewer, so paths are dropped and only
// declared strategies survive.

type exportNodeFull struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Type string `json:"type"`
}

type exportNodeMinimal struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Strategy string `json:"strategy,omitempty"`
}

type exportGraphFull struct {
	Nodes []exportNodeFull `json:"nodes"`
	Edges []RawEdge        `json:"edges"`
}

type exportGraphMinimal struct {
	Nodes []exportNodeMinimal `json:"nodes"`
	Edges []RawEdge           `json:"edges"`
}

// ExportFull serializes the raw graph with paths retained. Edges pass
// through unmodified.
func ExportFull(g RawGraph) ([]byte, error) {
	out := exportGraphFull{Edges: edgesOrEmpty(g.Edges)}
	for _, id := range sortedIDs(g.Nodes) {
		raw := g.Nodes[id]
		out.Nodes = append(out.Nodes, exportNodeFull{ID: id, Path: raw.Path, Type: raw.Type})
	}
	if out.Nodes == nil {
		out.Nodes = []exportNodeFull{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal full export: %w", err)
	}
	return data, nil
}

// ExportMinimal serializes the raw graph with paths always absent and
// strategy present iff the source node declared one.
func ExportMinimal(g RawGraph) ([]byte, error) {
	out := exportGraphMinimal{Edges: edgesOrEmpty(g.Edges)}
	for _, id := range sortedIDs(g.Nodes) {
		raw := g.Nodes[id]
		out.Nodes = append(out.Nodes, exportNodeMinimal{ID: id, Type: raw.Type, Strategy: raw.Strategy})
	}
	if out.Nodes == nil {
		out.Nodes = []exportNodeMinimal{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal minimal export: %w", err)
	}
	return data, nil
}

// ParseRawGraph decodes a raw graph from JSON.
func ParseRawGraph(data []byte) (RawGraph, error) {
	var g RawGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return RawGraph{}, fmt.Errorf("parse raw graph: %w", err)
	}
	if g.Nodes == nil {
		g.Nodes = map[string]RawNode{}
	}
	return g, nil
}

func sortedIDs(nodes map[string]RawNode) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func edgesOrEmpty(edges []RawEdge) []RawEdge {
	if edges == nil {
		return []RawEdge{}
	}
	return edges
}
