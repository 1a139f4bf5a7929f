// Package prepare turns a raw configuration graph into the render-ready
// payload consumed by the layout engine.
//
// Preparation is a pure transformation: cluster assignment via
// longest-matching-prefix against the known cluster keys, label derivation
// from the node id, self-loop filtering, and merge-strategy pass-through.
// It is all-or-nothing: an edge referencing an unknown node aborts the
// whole run with no partial payload.
package prepare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanderheijden86/impgraph/pkg/model"
)

// RawNode is one unit in the input graph. The classifier (Type) decides the
// cluster a node is colored by; Strategy is an optional merge-strategy tag
// carried through untouched.
type RawNode struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Strategy string `json:"strategy,omitempty"`
}

// RawEdge is a directed import/merge relationship between two node ids.
type RawEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Type     string `json:"type,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// RawGraph is the preparation input: node records keyed by id plus a flat
// edge list. It may be cyclic, disconnected, and may contain duplicate
// edges (which are preserved, never deduplicated).
type RawGraph struct {
	Nodes map[string]RawNode `json:"nodes"`
	Edges []RawEdge          `json:"edges"`
}

// InvalidGraphError reports an edge referencing a node id that is not in
// the node set. Preparation aborts; no partial payload is produced.
type InvalidGraphError struct {
	From    string
	To      string
	Missing string
}

func (e *InvalidGraphError) Error() string {
	return fmt.Sprintf("invalid graph: edge %s -> %s references unknown node %q", e.From, e.To, e.Missing)
}

// Prepare converts a raw graph into a full payload, retaining node paths.
// colorOverrides are merged key-wise on top of the default cluster color
// map before cluster resolution; pass nil for the defaults.
func Prepare(g RawGraph, colorOverrides map[string]string) (*model.Payload, error) {
	return convert(g, colorOverrides, true)
}

// PrepareMinimal converts a raw graph into a minimal payload with paths
// omitted entirely, used when payload size matters. Edge filtering and
// cluster resolution are identical to Prepare.
func PrepareMinimal(g RawGraph, colorOverrides map[string]string) (*model.Payload, error) {
	return convert(g, colorOverrides, false)
}

func convert(g RawGraph, colorOverrides map[string]string, keepPath bool) (*model.Payload, error) {
	colors := ClusterColors(colorOverrides)
	keys := clusterKeys(colors)

	// Validate every edge endpoint before building anything, so a bad edge
	// cannot leave a half-built payload behind.
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			return nil, &InvalidGraphError{From: e.From, To: e.To, Missing: e.From}
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return nil, &InvalidGraphError{From: e.From, To: e.To, Missing: e.To}
		}
	}

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]model.Node, 0, len(ids))
	for _, id := range ids {
		raw := g.Nodes[id]
		n := model.Node{
			ID:       id,
			Label:    trailingSegment(id),
			Group:    GroupFor(raw.Type, keys),
			Strategy: raw.Strategy,
		}
		if keepPath {
			n.Path = raw.Path
		}
		nodes = append(nodes, n)
	}

	links := make([]model.Link, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.From == e.To {
			// A self-loop is a zero-length spring: it has no meaningful
			// force contribution and must never reach the simulation.
			continue
		}
		links = append(links, model.Link{
			Source:   e.From,
			Target:   e.To,
			Type:     e.Type,
			Strategy: e.Strategy,
		})
	}

	return &model.Payload{Nodes: nodes, Links: links}, nil
}

// GroupFor resolves a node classifier to a cluster key by longest matching
// prefix. A match is exact or at a dotted boundary, so "modules.homework"
// does not match "modules.home". Unmatched classifiers fall through
// unchanged so the renderer's palette fallback can still color them.
func GroupFor(classifier string, keys []string) string {
	best := ""
	for _, k := range keys {
		if len(k) <= len(best) {
			continue
		}
		if classifier == k || strings.HasPrefix(classifier, k+".") {
			best = k
		}
	}
	if best == "" {
		return classifier
	}
	return best
}

// trailingSegment returns the last dotted segment of an id, used as the
// default display label.
func trailingSegment(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 && i+1 < len(id) {
		return id[i+1:]
	}
	return id
}

// clusterKeys returns the map keys sorted for deterministic prefix matching.
func clusterKeys(colors map[string]string) []string {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
