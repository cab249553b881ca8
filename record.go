package logstruct

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is an ordered mapping from field name to value. Values are
// scalars, *Record, or []any.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns a Record holding the given key/value pairs in order.
// Pairs must alternate string keys and values; a trailing key without a
// value is stored as nil.
func NewRecord(pairs ...any) *Record {
	r := &Record{values: make(map[string]any, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		key := fmt.Sprint(pairs[i])
		var value any
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		r.Set(key, value)
	}
	return r
}

// Set stores value under key. Overwriting keeps the original position.
func (r *Record) Set(key string, value any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// All iterates fields in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Map returns a shallow copy of the fields as a plain map.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	for k, v := range r.All() {
		out[k] = v
	}
	return out
}

// String formats the record as {key: value, ...}.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	i := 0
	for k, v := range r.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(formatValue(v))
		i++
	}
	sb.WriteString("}")
	return sb.String()
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteString("{")
	i := 0
	for k, v := range r.All() {
		if i > 0 {
			buf.WriteString(",")
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteString(":")
		buf.Write(vb)
		i++
	}
	buf.WriteString("}")
	return []byte(buf.String()), nil
}

// MarshalYAML encodes the record as a YAML mapping in field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range r.All() {
		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &value)
	}
	return node, nil
}

// Fielder is implemented by custom types that expose their own attributes.
type Fielder interface {
	Fields() *Record
}

// Kind is the shape of a value during traversal.
type Kind uint8

const (
	KindScalar Kind = iota
	KindRecord
	KindSequence
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// KindOf classifies v. Only *Record and Fielder values are records; any
// slice or array other than []byte is a sequence; everything else is a
// scalar.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil, string, []byte:
		return KindScalar
	case *Record, Fielder:
		if isNil(v) {
			return KindScalar
		}
		return KindRecord
	case []any:
		return KindSequence
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	}
	return KindScalar
}

var timeType = reflect.TypeFor[time.Time]()

// IsBasic reports whether v is a leaf value: nil, a bool, a number, a
// string or a time.
func IsBasic(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Struct:
		return rv.Type() == timeType
	}
	return false
}

// Items returns the elements of a sequence as a new slice. Non-sequences
// return nil.
func Items(v any) []any {
	if list, ok := v.([]any); ok {
		return slices.Clone(list)
	}
	if KindOf(v) != KindSequence {
		return nil
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// FieldsOf returns the fields of v as a Record without converting nested
// values. It understands *Record, Fielder, maps with string keys (sorted by
// key, since Go maps carry no order) and structs (declaration order).
func FieldsOf(v any) (*Record, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case *Record:
		return t, t != nil
	case Fielder:
		if isNil(t) {
			return nil, false
		}
		return t.Fields(), true
	case map[string]any:
		r := &Record{values: make(map[string]any, len(t))}
		for _, k := range sortedKeys(t) {
			r.Set(k, t[k])
		}
		return r, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
		r := &Record{values: make(map[string]any, len(keys))}
		for _, k := range keys {
			r.Set(k.String(), rv.MapIndex(k).Interface())
		}
		return r, true
	case reflect.Struct:
		if rv.Type() == timeType {
			return nil, false
		}
		return structFields(rv), true
	}
	return nil, false
}

func structFields(rv reflect.Value) *Record {
	rt := rv.Type()
	r := &Record{values: make(map[string]any, rt.NumField())}
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}
		r.Set(name, rv.Field(i).Interface())
	}
	return r
}

// fieldName prefers a logstruct tag, then a json tag, then the Go name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"logstruct", "json"} {
		if v, ok := f.Tag.Lookup(tag); ok {
			name, _, _ := strings.Cut(v, ",")
			if name != "" {
				return name
			}
		}
	}
	return f.Name
}

// isNil reports whether v is nil or a nil pointer, map or interface.
// Nil slices are empty sequences, not nil values.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Field looks up key on a record-like value. Lookup is always by key, never
// by method, so a field named like an accessor resolves normally.
func Field(row any, key string) (any, bool) {
	switch t := row.(type) {
	case *Record:
		return t.Get(key)
	case map[string]any:
		v, ok := t[key]
		return v, ok
	}
	rec, ok := FieldsOf(row)
	if !ok {
		return nil, false
	}
	return rec.Get(key)
}

// Normalize deep-converts maps, structs, Fielders and slices into *Record
// and []any. Scalars are returned unchanged.
func Normalize(v any) any {
	if isNil(v) {
		return nil
	}
	switch t := v.(type) {
	case nil:
		return nil
	case *Record:
		out := &Record{values: make(map[string]any, t.Len())}
		for k, val := range t.All() {
			out.Set(k, Normalize(val))
		}
		return out
	case Fielder:
		return Normalize(t.Fields())
	case []byte:
		return string(t)
	}
	if IsBasic(v) {
		return v
	}
	if KindOf(v) == KindSequence {
		items := Items(v)
		for i := range items {
			items[i] = Normalize(items[i])
		}
		return items
	}
	if rec, ok := FieldsOf(v); ok {
		return Normalize(rec)
	}
	return v
}

// Plain converts records into plain maps, recursively. Used where
// consumers such as text/template index by name.
func Plain(v any) any {
	if isNil(v) {
		return nil
	}
	switch t := v.(type) {
	case *Record:
		out := make(map[string]any, t.Len())
		for k, val := range t.All() {
			out[k] = Plain(val)
		}
		return out
	case Fielder:
		return Plain(t.Fields())
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Plain(t[i])
		}
		return out
	}
	return v
}

// formatValue renders a value for a key/value line or a table cell.
func formatValue(v any) string {
	if isNil(v) {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *Record:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	}
	if KindOf(v) == KindSequence {
		items := Items(v)
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
