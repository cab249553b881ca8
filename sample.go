package logstruct

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SampleGraph builds a starter graph for data: every array of records gets
// a heading, take "all" and the columns of its first element. Nested
// records that contain such arrays get a nested entry.
func SampleGraph(data any) Graph {
	rec, ok := FieldsOf(Normalize(data))
	if !ok {
		return Graph{}
	}
	return sampleRecord(rec)
}

func sampleRecord(rec *Record) Graph {
	g := Graph{}
	for key, value := range rec.All() {
		switch KindOf(value) {
		case KindRecord:
			child, _ := FieldsOf(value)
			if sub := sampleRecord(child); len(sub) > 0 {
				g[key] = sub
			}
		case KindSequence:
			items := Items(value)
			if len(items) == 0 || IsBasic(items[0]) {
				continue
			}
			first, ok := FieldsOf(items[0])
			if !ok {
				continue
			}
			cols := make([]any, 0, first.Len())
			for _, k := range first.Keys() {
				cols = append(cols, k)
			}
			g[key] = Graph{
				"heading": key,
				"take":    "all",
				"columns": cols,
			}
		}
	}
	return g
}

// WriteSampleGraph writes SampleGraph(data) as "yaml" or "toml".
func WriteSampleGraph(w io.Writer, data any, format string) error {
	g := SampleGraph(data)
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plainGraph(g)); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(plainGraph(g))
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func plainGraph(g Graph) map[string]any {
	out := make(map[string]any, len(g))
	for k, v := range g {
		if sub, ok := v.(Graph); ok {
			out[k] = plainGraph(sub)
			continue
		}
		out[k] = v
	}
	return out
}
