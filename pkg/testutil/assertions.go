package testutil

import (
	"math"
	"testing"

	"github.com/vanderheijden86/impgraph/pkg/model"
)

// AssertValidPayload verifies the payload passes validation.
func AssertValidPayload(t *testing.T, p *model.Payload) {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("payload invalid: %v", err)
	}
}

// AssertNodeCount verifies the expected number of nodes.
func AssertNodeCount(t *testing.T, p *model.Payload, expected int) {
	t.Helper()
	if len(p.Nodes) != expected {
		t.Errorf("expected %d nodes, got %d", expected, len(p.Nodes))
	}
}

// AssertNoDuplicateIDs verifies all node IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, p *model.Payload) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range p.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}
}

// AssertFinite fails if the value is NaN or infinite.
func AssertFinite(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Errorf("%s is not finite: %v", name, v)
	}
}

// AssertClose fails if got is not within tol of want.
func AssertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}
