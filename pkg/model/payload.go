// Package model defines the render-ready graph payload consumed by the
// layout engine: node and link records plus startup validation.
//
// Payload records are created once from JSON at engine start and never
// added or removed during a session. Mutable simulation state (positions,
// velocities, pin flags) lives in the engine arena, not here.
package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// Node is a single configuration unit in the graph.
type Node struct {
	// ID is globally unique and stable across ticks.
	ID string `json:"id"`
	// Label is the display string, defaulted from the ID's trailing segment.
	Label string `json:"label"`
	// Group is the cluster key used for coloring (e.g. "modules.home").
	Group string `json:"group"`
	// Path is the origin location. Present in full payloads, absent in
	// minimal ones.
	Path string `json:"path,omitempty"`
	// Strategy is the merge-strategy tag carried through for display only.
	Strategy string `json:"strategy,omitempty"`
}

// Link is a directed edge between two nodes, addressed by node ID.
type Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// Payload is the engine input: an arbitrary directed multigraph, possibly
// cyclic or disconnected. Self-loops are filtered during preparation and
// must never appear here.
type Payload struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// MalformedPayloadError reports a payload that failed schema validation at
// engine start. It is fatal for the view: no frames are scheduled.
type MalformedPayloadError struct {
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %s", e.Reason)
}

// Validate checks the payload invariants the engine depends on: non-empty
// unique node IDs, link endpoints resolving to known nodes, and no
// self-loops. Returns a *MalformedPayloadError on the first violation.
func (p *Payload) Validate() error {
	seen := make(map[string]bool, len(p.Nodes))
	for i, n := range p.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return &MalformedPayloadError{Reason: fmt.Sprintf("node %d has empty id", i)}
		}
		if seen[n.ID] {
			return &MalformedPayloadError{Reason: fmt.Sprintf("duplicate node id %q", n.ID)}
		}
		seen[n.ID] = true
	}
	for i, l := range p.Links {
		if !seen[l.Source] {
			return &MalformedPayloadError{Reason: fmt.Sprintf("link %d source %q is not a known node", i, l.Source)}
		}
		if !seen[l.Target] {
			return &MalformedPayloadError{Reason: fmt.Sprintf("link %d target %q is not a known node", i, l.Target)}
		}
		if l.Source == l.Target {
			return &MalformedPayloadError{Reason: fmt.Sprintf("link %d is a self-loop on %q", i, l.Source)}
		}
	}
	return nil
}

// ParsePayload decodes and validates a JSON payload.
func ParsePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &MalformedPayloadError{Reason: err.Error()}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadPayload decodes and validates a JSON payload from r.
func ReadPayload(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return ParsePayload(data)
}

// Marshal encodes the payload as compact JSON.
func (p *Payload) Marshal() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}
