package datasource

import (
	"fmt"
	"os"

	"github.com/vanderheijden86/impgraph/pkg/debug"
	"github.com/vanderheijden86/impgraph/pkg/metrics"
	"github.com/vanderheijden86/impgraph/pkg/model"
	"github.com/vanderheijden86/impgraph/pkg/prepare"
)

// Load reads a graph payload from any supported source. Raw graphs are
// run through the preparation pipeline with the given color overrides;
// prepared payloads are validated and returned as-is (overrides do not
// apply because grouping already happened upstream).
func Load(path string, colorOverrides map[string]string) (*model.Payload, error) {
	defer metrics.Timer(metrics.GraphLoad)()

	src, err := Detect(path)
	if err != nil {
		return nil, err
	}
	debug.Log("loading %s", src)

	switch src.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(src)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		g, err := reader.LoadGraph()
		if err != nil {
			return nil, err
		}
		return prepare.Prepare(g, colorOverrides)

	case SourceTypeRaw:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("reading graph: %w", err)
		}
		g, err := prepare.ParseRawGraph(data)
		if err != nil {
			return nil, err
		}
		return prepare.Prepare(g, colorOverrides)

	case SourceTypePayload:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("reading payload: %w", err)
		}
		return model.ParsePayload(data)

	default:
		return nil, fmt.Errorf("unsupported source type %q", src.Type)
	}
}
