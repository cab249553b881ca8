package logstruct

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Graph is a nested per-path configuration. Keys are either field names
// of the data (nesting deeper) or settings for the node they sit in:
//
//	skip, ignore        bool
//	skip_empty          bool
//	heading             string
//	heading_style       "heading" | "subheading" | "section" (alias heading_type)
//	transform           TransformFunc | func(any) any
//	filter              FilterFunc | func(any) bool
//	sort                SortFunc | func(a, b any) int
//	sort_by             field name, "-field" for descending
//	take                int | "all"
//	columns             list of column specs (alias array_columns)
//
// A field that collides with a setting name is still addressable through
// Resolve; it just cannot carry its own settings.
type Graph map[string]any

// TransformFunc replaces a value before it is rendered.
type TransformFunc func(value any) any

// FilterFunc keeps array items for which it returns true.
type FilterFunc func(item any) bool

// SortFunc orders array items; it returns a negative number when a sorts
// before b, zero when equal and a positive number otherwise.
type SortFunc func(a, b any) int

const (
	keyColumns      = "columns"
	keyArrayColumns = "array_columns"
)

// Tree is a parsed Graph.
type Tree struct {
	entries map[string]any
}

// ParseGraph converts a nested configuration into a Tree. Nested mappings
// become subtrees, lists are parsed element-wise and column lists are kept
// verbatim. Any other value is a leaf. A nil or non-mapping configuration
// yields an empty tree.
func ParseGraph(cfg any) *Tree {
	if t, ok := parseNode(cfg); ok {
		return t
	}
	return &Tree{entries: map[string]any{}}
}

func parseNode(v any) (*Tree, bool) {
	m, ok := asMapping(v)
	if !ok {
		return nil, false
	}
	t := &Tree{entries: make(map[string]any, len(m))}
	for k, val := range m {
		if (k == keyColumns || k == keyArrayColumns) && isList(val) {
			t.entries[k] = val
			continue
		}
		t.entries[k] = parseValue(val)
	}
	return t, true
}

func parseValue(v any) any {
	if t, ok := parseNode(v); ok {
		return t
	}
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		for i := range list {
			out[i] = parseValue(list[i])
		}
		return out
	}
	return v
}

func asMapping(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Graph:
		return t, true
	case map[string]any:
		return t, true
	case *Tree:
		return t.entries, t != nil
	case *Record:
		return t.Map(), t != nil
	case Fielder:
		if isNil(t) {
			return nil, false
		}
		return t.Fields().Map(), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func (t *Tree) get(key string) any {
	if t == nil {
		return nil
	}
	return t.entries[key]
}

// first returns the value of the first key present.
func (t *Tree) first(keys ...string) any {
	for _, k := range keys {
		if v := t.get(k); v != nil {
			return v
		}
	}
	return nil
}

// Len returns the number of entries at the root of the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Resolve walks path from the root and returns the settings found there.
// Any missing segment yields the null node.
func (t *Tree) Resolve(path ...string) Node {
	cur := t
	for _, key := range path {
		next, ok := cur.get(key).(*Tree)
		if !ok {
			return newNode(nil)
		}
		cur = next
	}
	return newNode(cur)
}

// Node is the effective configuration at one path.
type Node struct {
	Skip         bool
	SkipEmpty    bool
	Heading      string
	HeadingStyle HeadingStyle
	Transform    TransformFunc
	Filter       FilterFunc
	Sort         SortFunc
	Take         int
	TakeAll      bool
	Columns      []any
}

func newNode(t *Tree) Node {
	n := Node{HeadingStyle: StyleSection, TakeAll: true}
	if t == nil {
		return n
	}
	n.Skip = isTrue(t.get("skip")) || isTrue(t.get("ignore"))
	n.SkipEmpty = isTrue(t.get("skip_empty"))
	if h, ok := t.get("heading").(string); ok {
		n.Heading = h
	}
	n.HeadingStyle = headingStyleOf(t.first("heading_style", "heading_type"))
	n.Transform = transformOf(t.get("transform"))
	n.Filter = filterOf(t.get("filter"))
	n.Sort = sortOf(t.get("sort"))
	if n.Sort == nil {
		if by, ok := t.get("sort_by").(string); ok && by != "" {
			n.Sort = sortByField(by)
		}
	}
	n.Take, n.TakeAll = takeOf(t.get("take"))
	n.Columns = columnsOf(t.first(keyColumns, keyArrayColumns))
	return n
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func headingStyleOf(v any) HeadingStyle {
	var s string
	switch t := v.(type) {
	case HeadingStyle:
		s = string(t)
	case string:
		s = t
	default:
		return StyleSection
	}
	style, err := ParseHeadingStyle(s)
	if err != nil {
		return StyleSection
	}
	return style
}

func transformOf(v any) TransformFunc {
	switch f := v.(type) {
	case TransformFunc:
		return f
	case func(any) any:
		return f
	}
	return nil
}

func filterOf(v any) FilterFunc {
	switch f := v.(type) {
	case FilterFunc:
		return f
	case func(any) bool:
		return f
	}
	return nil
}

func sortOf(v any) SortFunc {
	switch f := v.(type) {
	case SortFunc:
		return f
	case func(any, any) int:
		return f
	}
	return nil
}

func takeOf(v any) (int, bool) {
	n, ok := intOf(v)
	if !ok || n < 0 {
		return 0, true
	}
	return n, false
}

func intOf(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

func columnsOf(v any) []any {
	if !isList(v) {
		return nil
	}
	return Items(v)
}

func sortByField(spec string) SortFunc {
	field, desc := spec, false
	if rest, ok := strings.CutPrefix(spec, "-"); ok {
		field, desc = rest, true
	}
	return func(a, b any) int {
		av, _ := Field(a, field)
		bv, _ := Field(b, field)
		c := CompareValues(av, bv)
		if desc {
			return -c
		}
		return c
	}
}

// CompareValues orders two scalars: numbers numerically, bools false
// first, strings lexically, nil first, anything else by its printed form.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(formatValue(a), formatValue(b))
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// LoadGraph reads a graph from a YAML or TOML file, chosen by extension.
// Function-valued settings cannot be expressed in files; use sort_by and
// column templates instead.
func LoadGraph(path string) (Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := Graph{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, (*map[string]any)(&g))
	case ".yaml", ".yml", ".json":
		err = yaml.Unmarshal(b, (*map[string]any)(&g))
	default:
		return nil, fmt.Errorf("%w: graph file %q", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse graph %s: %w", path, err)
	}
	return g, nil
}
