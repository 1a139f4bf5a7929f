// Package testutil provides payload generators for various graph
// topologies. All generators produce deterministic output for
// reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/impgraph/pkg/model"
)

// Chain generates a linear chain: n0 -> n1 -> ... -> n(count-1).
func Chain(count int) *model.Payload {
	p := &model.Payload{}
	for i := 0; i < count; i++ {
		p.Nodes = append(p.Nodes, model.Node{
			ID:    fmt.Sprintf("n%d", i),
			Label: fmt.Sprintf("n%d", i),
			Group: "chain",
		})
		if i > 0 {
			p.Links = append(p.Links, model.Link{
				Source: fmt.Sprintf("n%d", i-1),
				Target: fmt.Sprintf("n%d", i),
			})
		}
	}
	return p
}

// Star generates a hub with count-1 spokes pointing at it.
func Star(count int) *model.Payload {
	p := &model.Payload{
		Nodes: []model.Node{{ID: "hub", Label: "hub", Group: "star"}},
	}
	for i := 1; i < count; i++ {
		id := fmt.Sprintf("spoke%d", i)
		p.Nodes = append(p.Nodes, model.Node{ID: id, Label: id, Group: "star"})
		p.Links = append(p.Links, model.Link{Source: id, Target: "hub"})
	}
	return p
}

// Clusters generates groups of densely connected nodes with one bridge
// link between consecutive clusters.
func Clusters(clusters, perCluster int) *model.Payload {
	p := &model.Payload{}
	for c := 0; c < clusters; c++ {
		group := fmt.Sprintf("cluster%d", c)
		for i := 0; i < perCluster; i++ {
			id := fmt.Sprintf("c%dn%d", c, i)
			p.Nodes = append(p.Nodes, model.Node{ID: id, Label: id, Group: group})
			if i > 0 {
				p.Links = append(p.Links, model.Link{
					Source: fmt.Sprintf("c%dn%d", c, i-1),
					Target: id,
				})
			}
		}
		if c > 0 {
			p.Links = append(p.Links, model.Link{
				Source: fmt.Sprintf("c%dn0", c-1),
				Target: fmt.Sprintf("c%dn0", c),
			})
		}
	}
	return p
}

// Random generates a seeded random graph. The same seed always produces
// the same graph.
func Random(nodes, links int, seed int64) *model.Payload {
	rng := rand.New(rand.NewSource(seed))
	p := &model.Payload{}
	for i := 0; i < nodes; i++ {
		p.Nodes = append(p.Nodes, model.Node{
			ID:    fmt.Sprintf("r%d", i),
			Label: fmt.Sprintf("r%d", i),
			Group: fmt.Sprintf("g%d", i%4),
		})
	}
	for len(p.Links) < links {
		a := rng.Intn(nodes)
		b := rng.Intn(nodes)
		if a == b {
			continue
		}
		p.Links = append(p.Links, model.Link{
			Source: fmt.Sprintf("r%d", a),
			Target: fmt.Sprintf("r%d", b),
		})
	}
	return p
}
