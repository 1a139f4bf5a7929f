package datasource

import (
	"fmt"
	"sort"

	"github.com/vanderheijden86/impgraph/pkg/model"
)

// PayloadDiff summarizes what changed between two payloads, used to log
// what a live reload actually picked up.
type PayloadDiff struct {
	AddedNodes   []string
	RemovedNodes []string
	LinkDelta    int
}

// Empty reports whether the diff carries no changes.
func (d PayloadDiff) Empty() bool {
	return len(d.AddedNodes) == 0 && len(d.RemovedNodes) == 0 && d.LinkDelta == 0
}

// String renders a compact one-line summary.
func (d PayloadDiff) String() string {
	if d.Empty() {
		return "no changes"
	}
	return fmt.Sprintf("+%d nodes, -%d nodes, %+d links",
		len(d.AddedNodes), len(d.RemovedNodes), d.LinkDelta)
}

// Diff compares two payloads by node ID and link count.
func Diff(old, new *model.Payload) PayloadDiff {
	oldIDs := make(map[string]bool, len(old.Nodes))
	for _, n := range old.Nodes {
		oldIDs[n.ID] = true
	}
	newIDs := make(map[string]bool, len(new.Nodes))
	for _, n := range new.Nodes {
		newIDs[n.ID] = true
	}

	var d PayloadDiff
	for id := range newIDs {
		if !oldIDs[id] {
			d.AddedNodes = append(d.AddedNodes, id)
		}
	}
	for id := range oldIDs {
		if !newIDs[id] {
			d.RemovedNodes = append(d.RemovedNodes, id)
		}
	}
	sort.Strings(d.AddedNodes)
	sort.Strings(d.RemovedNodes)
	d.LinkDelta = len(new.Links) - len(old.Links)
	return d
}
