package prepare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestExportFullKeepsPathsAndSortsNodes(t *testing.T) {
	data, err := ExportFull(sampleGraph())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var out struct {
		Nodes []struct {
			ID   string `json:"id"`
			Path string `json:"path"`
			Type string `json:"type"`
		} `json:"nodes"`
		Edges []RawEdge `json:"edges"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(out.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(out.Nodes))
	}
	for i := 1; i < len(out.Nodes); i++ {
		if out.Nodes[i-1].ID >= out.Nodes[i].ID {
			t.Errorf("nodes not sorted: %s before %s", out.Nodes[i-1].ID, out.Nodes[i].ID)
		}
	}
	for _, n := range out.Nodes {
		if n.Path == "" {
			t.Errorf("full export dropped path for %s", n.ID)
		}
	}
}

func TestExportMinimalDropsPaths(t *testing.T) {
	g := sampleGraph()
	n := g.Nodes["flake"]
	n.Strategy = "eager"
	g.Nodes["flake"] = n

	data, err := ExportMinimal(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(string(data), `"path"`) {
		t.Error("minimal export contains paths")
	}
	if !strings.Contains(string(data), `"strategy":"eager"`) {
		t.Error("declared strategy missing from minimal export")
	}
}

func TestExportEdgesPassThroughUnmodified(t *testing.T) {
	// Exports do not filter self-loops; only payload preparation does.
	g := sampleGraph()
	g.Edges = append(g.Edges, RawEdge{From: "flake", To: "flake"})

	data, err := ExportFull(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var out struct {
		Edges []RawEdge `json:"edges"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Edges) != len(g.Edges) {
		t.Errorf("edges changed: %d -> %d", len(g.Edges), len(out.Edges))
	}
}

func TestExportEmptyGraphEmitsEmptyArrays(t *testing.T) {
	data, err := ExportMinimal(RawGraph{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"nodes":[]`) || !strings.Contains(s, `"edges":[]`) {
		t.Errorf("empty graph should emit empty arrays, got %s", s)
	}
}

func TestParseRawGraph(t *testing.T) {
	raw := `{"nodes":{"a":{"path":"/a.nix","type":"flake"}},"edges":[{"from":"a","to":"a"}]}`
	g, err := ParseRawGraph([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Nodes["a"].Path != "/a.nix" {
		t.Errorf("path lost: %+v", g.Nodes["a"])
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges lost: %d", len(g.Edges))
	}
}

func TestParseRawGraphNilNodes(t *testing.T) {
	g, err := ParseRawGraph([]byte(`{}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Nodes == nil {
		t.Error("Nodes should be initialized, not nil")
	}
}
