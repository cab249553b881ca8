package logstruct

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseData decodes a JSON or YAML document into *Record, []any and
// scalars, keeping the document's field order.
func ParseData(b []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidData, err)
	}
	return decodeNode(&doc)
}

// LoadData reads and decodes a JSON or YAML file.
func LoadData(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseData(b)
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		r := NewRecord()
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			r.Set(n.Content[i].Value, val)
		}
		return r, nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			val, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrInvalidData, n.Line, err)
		}
		return v, nil
	}
}
