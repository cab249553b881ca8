package logstruct

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Render renders data and writes the result to the configured outputs.
func (r *Renderer) Render(data any) error {
	r.reset()
	if isNil(data) {
		r.log.Warn().Msg("nothing to render: data is nil")
		return nil
	}
	if r.opts.outputs(File) && r.opts.OutputFile == "" {
		return ErrMissingOutputFile
	}
	if r.opts.ConvertDataTo == Normalized {
		data = Normalize(data)
	}
	root, ok := FieldsOf(data)
	if !ok {
		return fmt.Errorf("%w: cannot enumerate fields of %T", ErrInvalidData, data)
	}

	if r.opts.Title != "" {
		r.lines.Add(r.colors.headingLines(r.opts.TitleStyle, r.opts.Title, r.opts.LineWidth)...)
	}
	r.renderRecord(root)
	r.lines.Add(r.colors.rule(r.opts.LineWidth, "="))

	return r.flush()
}

func (r *Renderer) reset() {
	r.lines.Reset()
	r.depth = 0
	r.path = r.path[:0]
}

func (r *Renderer) renderRecord(rec *Record) {
	for key, value := range rec.All() {
		r.renderField(key, value)
	}
}

func (r *Renderer) renderField(key string, value any) {
	r.path = append(r.path, key)
	defer func() { r.path = r.path[:len(r.path)-1] }()
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn().Str("path", strings.Join(r.path, ".")).Interface("panic", p).Msg("field not rendered")
		}
	}()

	node := r.graph.Resolve(r.path...)
	if node.Skip {
		return
	}
	if node.Transform != nil {
		value = node.Transform(value)
		if r.opts.ConvertDataTo == Normalized {
			value = Normalize(value)
		}
	}

	switch KindOf(value) {
	case KindRecord:
		rec, _ := FieldsOf(value)
		r.heading(node)
		r.lines.Add(r.indentLabel() + r.colors.paint(Cyan, key))
		r.depth++
		r.renderRecord(rec)
		r.depth--
	case KindSequence:
		r.renderArray(key, value, node)
	case KindScalar:
		r.heading(node)
		r.lines.Add(r.colors.kv(r.indentLabel()+key, value, r.opts.KeyWidth))
	}
}

// renderArray applies filter, then take, then sort, and renders the
// result as a joined list or a table. Errors stay inside this array.
func (r *Renderer) renderArray(key string, value any, node Node) {
	defer func() {
		if p := recover(); p != nil {
			r.arrayFailed(fmt.Errorf("%w: %v", ErrDisplayFailed, p))
		}
	}()

	items := Items(value)
	if node.Filter != nil {
		items = slices.DeleteFunc(items, func(item any) bool { return !node.Filter(item) })
	}
	if !node.TakeAll && node.Take < len(items) {
		items = items[:node.Take]
	}
	if node.Sort != nil {
		slices.SortStableFunc(items, node.Sort)
	}
	if len(items) == 0 && node.SkipEmpty {
		return
	}

	// The table is built before the heading so a failure leaves no orphan
	// heading behind.
	var body Lines
	if len(items) > 0 && !IsBasic(items[0]) {
		if err := r.renderTable(&body, node, items); err != nil {
			r.arrayFailed(err)
			return
		}
	}

	r.heading(node)
	label := r.indentLabel() + key
	switch {
	case len(items) == 0:
		r.lines.Add(noData)
	case IsBasic(items[0]):
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = formatValue(item)
		}
		r.lines.Add(r.colors.kv(label, strings.Join(parts, ", "), r.opts.KeyWidth))
	default:
		r.lines.Add(body.Strings()...)
	}
	if r.opts.ShowArrayCount {
		r.lines.Add(r.colors.kv(label+" count", len(items), r.opts.KeyWidth))
	}
}

// renderTable builds every row before writing, so a failing row leaves no
// partial table behind.
func (r *Renderer) renderTable(w io.Writer, node Node, items []any) error {
	plan, err := resolveColumns(node, items)
	if err != nil {
		return err
	}
	t := table{header: plan.headers(), limits: plan.widths(), maxWidth: r.opts.MaxColumnWidth}
	for _, item := range items {
		rows, err := plan.rows(item)
		if err != nil {
			return err
		}
		t.rows = append(t.rows, rows...)
	}
	return writeTable(w, r.opts.TableStyle, t)
}

func (r *Renderer) arrayFailed(err error) {
	r.log.Warn().Err(err).Str("path", strings.Join(r.path, ".")).Msg("array not rendered")
}

func (r *Renderer) heading(node Node) {
	if node.Heading == "" {
		return
	}
	r.lines.Add(r.colors.headingLines(node.HeadingStyle, node.Heading, r.opts.LineWidth)...)
}

func (r *Renderer) indentLabel() string {
	return strings.Repeat(r.opts.Indent, r.depth)
}

// flush writes the lines to each output target. Console write errors are
// ignored; file write errors are returned.
func (r *Renderer) flush() error {
	for _, target := range r.opts.OutputAs {
		switch target {
		case Console:
			for _, line := range r.lines.Strings() {
				_, _ = fmt.Fprintln(r.opts.Stdout, line)
			}
		case File:
			if err := r.writeFile(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) writeFile() error {
	path := r.opts.OutputFile
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(r.CleanContent()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	r.log.Debug().Str("path", path).Int("lines", r.lines.Len()).Msg("rendered to file")
	return nil
}
