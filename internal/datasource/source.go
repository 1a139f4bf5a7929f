// Package datasource detects and loads graph data for impgraph. A graph
// can come from a prepared payload JSON, a raw classifier/edge JSON
// document, or a SQLite database with nodes and edges tables. Detection
// is by extension first, content sniffing second.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SourceType identifies the kind of graph source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database with nodes/edges tables.
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypePayload is a prepared payload JSON (nodes + links).
	SourceTypePayload SourceType = "payload"
	// SourceTypeRaw is a raw graph JSON (classified nodes + from/to edges).
	SourceTypeRaw SourceType = "raw"
)

// Source describes a detected graph source.
type Source struct {
	Type    SourceType
	Path    string
	ModTime time.Time
	Size    int64
}

// String returns a human-readable description of the source.
func (s Source) String() string {
	return fmt.Sprintf("%s (%s, mod=%s, %d bytes)",
		s.Path, s.Type, s.ModTime.Format(time.RFC3339), s.Size)
}

// Detect classifies the file at path. JSON files are sniffed to tell a
// prepared payload from a raw graph.
func Detect(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, fmt.Errorf("stat source: %w", err)
	}

	src := Source{Path: abs, ModTime: info.ModTime(), Size: info.Size()}

	switch strings.ToLower(filepath.Ext(abs)) {
	case ".db", ".sqlite", ".sqlite3":
		src.Type = SourceTypeSQLite
		return src, nil
	}

	t, err := sniffJSON(abs)
	if err != nil {
		return Source{}, err
	}
	src.Type = t
	return src, nil
}

// sniffJSON distinguishes payload JSON from raw graph JSON. A payload has
// a "links" array; a raw graph has an "edges" array.
func sniffJSON(path string) (SourceType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	head := string(data)
	if len(head) > 4096 {
		head = head[:4096]
	}
	hasLinks := strings.Contains(head, `"links"`)
	hasEdges := strings.Contains(head, `"edges"`)
	switch {
	case hasLinks && !hasEdges:
		return SourceTypePayload, nil
	case hasEdges:
		return SourceTypeRaw, nil
	case hasLinks:
		return SourceTypePayload, nil
	default:
		return "", fmt.Errorf("cannot classify %s: neither links nor edges found", path)
	}
}
