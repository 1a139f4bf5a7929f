package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/impgraph/pkg/prepare"
)

// SQLiteReader provides read access to a graph stored in SQLite. The
// expected schema is a nodes table (id, path, type, strategy) and an
// edges table (from_id, to_id, type, strategy). Missing strategy columns
// are tolerated.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(source Source) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{
		db:   db,
		path: source.Path,
	}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadGraph reads the full raw graph from the database.
func (r *SQLiteReader) LoadGraph() (prepare.RawGraph, error) {
	g := prepare.RawGraph{Nodes: make(map[string]prepare.RawNode)}

	rows, err := r.db.Query(`SELECT id, path, type, strategy FROM nodes`)
	if err != nil {
		// Retry without the optional strategy column.
		rows, err = r.db.Query(`SELECT id, path, type FROM nodes`)
		if err != nil {
			return g, fmt.Errorf("querying nodes: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			var n prepare.RawNode
			var path, typ sql.NullString
			if err := rows.Scan(&id, &path, &typ); err != nil {
				return g, fmt.Errorf("scanning node row: %w", err)
			}
			n.Path = path.String
			n.Type = typ.String
			g.Nodes[id] = n
		}
		if err := rows.Err(); err != nil {
			return g, fmt.Errorf("iterating nodes: %w", err)
		}
	} else {
		defer rows.Close()
		for rows.Next() {
			var id string
			var n prepare.RawNode
			var path, typ, strategy sql.NullString
			if err := rows.Scan(&id, &path, &typ, &strategy); err != nil {
				return g, fmt.Errorf("scanning node row: %w", err)
			}
			n.Path = path.String
			n.Type = typ.String
			n.Strategy = strategy.String
			g.Nodes[id] = n
		}
		if err := rows.Err(); err != nil {
			return g, fmt.Errorf("iterating nodes: %w", err)
		}
	}

	edges, err := r.loadEdges()
	if err != nil {
		return g, err
	}
	g.Edges = edges
	return g, nil
}

func (r *SQLiteReader) loadEdges() ([]prepare.RawEdge, error) {
	rows, err := r.db.Query(`SELECT from_id, to_id, type, strategy FROM edges`)
	if err != nil {
		rows, err = r.db.Query(`SELECT from_id, to_id FROM edges`)
		if err != nil {
			return nil, fmt.Errorf("querying edges: %w", err)
		}
		defer rows.Close()
		var edges []prepare.RawEdge
		for rows.Next() {
			var e prepare.RawEdge
			if err := rows.Scan(&e.From, &e.To); err != nil {
				return nil, fmt.Errorf("scanning edge row: %w", err)
			}
			edges = append(edges, e)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating edges: %w", err)
		}
		return edges, nil
	}
	defer rows.Close()

	var edges []prepare.RawEdge
	for rows.Next() {
		var e prepare.RawEdge
		var typ, strategy sql.NullString
		if err := rows.Scan(&e.From, &e.To, &typ, &strategy); err != nil {
			return nil, fmt.Errorf("scanning edge row: %w", err)
		}
		e.Type = typ.String
		e.Strategy = strategy.String
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}
	return edges, nil
}

// CountNodes returns the number of nodes in the database.
func (r *SQLiteReader) CountNodes() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
