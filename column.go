package logstruct

import (
	"fmt"
	"strings"
	"text/template"
)

// DisplayFunc computes a cell from the whole row.
type DisplayFunc func(row any) any

// Column describes one table column. A plain string spec is shorthand for
// Column{Key: spec}. A dotted key such as "children.name" flattens one
// level of child rows: each child becomes its own output row.
type Column struct {
	// Key is the field looked up on each row. With Display or Template it
	// only names the column.
	Key string
	// Name replaces the header text. Cannot be combined with Display.
	Name string
	// Display computes the cell from the row.
	Display DisplayFunc
	// Template is a text/template executed against the row's fields.
	Template string
	// Width caps the column; longer cells are truncated with "...".
	Width int
}

type planColumn struct {
	header  string
	key     string
	child   string
	display DisplayFunc
	tmpl    *template.Template
	width   int
}

func (c planColumn) flattened() bool { return c.child != "" }

type columnPlan []planColumn

// resolveColumns uses the node's columns when configured, otherwise the
// fields of the first item.
func resolveColumns(node Node, items []any) (columnPlan, error) {
	if node.Columns != nil {
		plan := make(columnPlan, 0, len(node.Columns))
		for _, spec := range node.Columns {
			cols, err := parseColumn(spec)
			if err != nil {
				return nil, err
			}
			plan = append(plan, cols...)
		}
		return plan, nil
	}
	if len(items) == 0 {
		return nil, nil
	}
	rec, ok := FieldsOf(items[0])
	if !ok {
		return nil, fmt.Errorf("%w: cannot derive columns from %T", ErrInvalidColumn, items[0])
	}
	plan := make(columnPlan, 0, rec.Len())
	for _, k := range rec.Keys() {
		plan = append(plan, planColumn{header: strings.ToUpper(k), key: k})
	}
	return plan, nil
}

func parseColumn(spec any) ([]planColumn, error) {
	switch t := spec.(type) {
	case string:
		return []planColumn{keyColumn(t)}, nil
	case Column:
		c, err := t.plan()
		if err != nil {
			return nil, err
		}
		return []planColumn{c}, nil
	case *Column:
		if t == nil {
			return nil, fmt.Errorf("%w: nil column", ErrInvalidColumn)
		}
		return parseColumn(*t)
	}
	m, ok := asMapping(spec)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported spec %T", ErrInvalidColumn, spec)
	}
	// Flat form: {key: first_name, name: First}.
	if key, ok := m["key"].(string); ok {
		c, err := columnFromMap(key, m)
		if err != nil {
			return nil, err
		}
		return []planColumn{c}, nil
	}
	// Keyed form: {full_name: {display_method: ..., width: 20}}.
	keys := sortedKeys(m)
	out := make([]planColumn, 0, len(keys))
	for _, key := range keys {
		opts, ok := asMapping(m[key])
		if !ok {
			return nil, fmt.Errorf("%w: column %q options must be a mapping", ErrInvalidColumn, key)
		}
		c, err := columnFromMap(key, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func columnFromMap(key string, m map[string]any) (planColumn, error) {
	c := Column{Key: key}
	for _, k := range []string{"name", "display_name"} {
		if s, ok := m[k].(string); ok {
			c.Name = s
		}
	}
	for _, k := range []string{"display", "display_method"} {
		switch f := m[k].(type) {
		case DisplayFunc:
			c.Display = f
		case func(any) any:
			c.Display = f
		}
	}
	if s, ok := m["template"].(string); ok {
		c.Template = s
	}
	if w, ok := intOf(m["width"]); ok {
		c.Width = w
	}
	return c.plan()
}

func keyColumn(key string) planColumn {
	c := planColumn{header: strings.ToUpper(key), key: key}
	if head, rest, ok := strings.Cut(key, "."); ok && head != "" && rest != "" {
		c.key, c.child = head, rest
	}
	return c
}

func (c Column) plan() (planColumn, error) {
	switch {
	case c.Key == "":
		return planColumn{}, fmt.Errorf("%w: missing key", ErrInvalidColumn)
	case c.Name != "" && c.Display != nil:
		return planColumn{}, fmt.Errorf("%w: %q sets both a display name and a display function", ErrInvalidColumn, c.Key)
	case c.Display != nil && c.Template != "":
		return planColumn{}, fmt.Errorf("%w: %q sets both a display function and a template", ErrInvalidColumn, c.Key)
	}
	p := keyColumn(c.Key)
	if c.Display != nil || c.Template != "" {
		p.key, p.child = c.Key, ""
	}
	if c.Name != "" {
		p.header = c.Name
	}
	p.display = c.Display
	p.width = c.Width
	if c.Template != "" {
		tmpl, err := template.New(c.Key).Parse(c.Template)
		if err != nil {
			return planColumn{}, fmt.Errorf("%w: column %q: %s", ErrInvalidTemplate, c.Key, err)
		}
		p.tmpl = tmpl
	}
	return p, nil
}

func (p columnPlan) headers() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.header
	}
	return out
}

func (p columnPlan) widths() []int {
	out := make([]int, len(p))
	for i, c := range p {
		out[i] = c.width
	}
	return out
}

// rows renders one item. Flattened columns contribute one row per child;
// the other columns are blank after the first row.
func (p columnPlan) rows(item any) ([][]string, error) {
	first := make([]string, len(p))
	children := make([][]string, len(p))
	n := 1
	for i, c := range p {
		if c.flattened() {
			vals := childValues(item, c.key, c.child)
			children[i] = vals
			n = max(n, len(vals))
			continue
		}
		cell, err := c.cell(item)
		if err != nil {
			return nil, err
		}
		first[i] = cell
	}
	out := make([][]string, n)
	for r := range n {
		row := make([]string, len(p))
		if r == 0 {
			copy(row, first)
		}
		for i, c := range p {
			if c.flattened() && r < len(children[i]) {
				row[i] = children[i][r]
			}
		}
		out[r] = row
	}
	return out, nil
}

func (c planColumn) cell(item any) (string, error) {
	switch {
	case c.display != nil:
		return formatValue(c.display(item)), nil
	case c.tmpl != nil:
		var sb strings.Builder
		if err := c.tmpl.Execute(&sb, Plain(rowFields(item))); err != nil {
			return "", fmt.Errorf("%w: column %q: %s", ErrDisplayFailed, c.key, err)
		}
		return sb.String(), nil
	}
	v, _ := Field(item, c.key)
	return formatValue(v), nil
}

func rowFields(item any) any {
	if rec, ok := FieldsOf(item); ok {
		return rec
	}
	return item
}

// childValues resolves key on item. A sequence yields one value per
// element; a single record yields one value.
func childValues(item any, key, child string) []string {
	v, ok := Field(item, key)
	if !ok || v == nil {
		return nil
	}
	if KindOf(v) != KindSequence {
		return []string{formatValue(fieldPath(v, child))}
	}
	elems := Items(v)
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = formatValue(fieldPath(e, child))
	}
	return out
}

func fieldPath(v any, path string) any {
	for _, seg := range strings.Split(path, ".") {
		next, ok := Field(v, seg)
		if !ok {
			return nil
		}
		v = next
	}
	return v
}
