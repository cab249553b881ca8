package logstruct

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Printer writes one-off helper lines (key/values, rules, headings,
// blocks, YAML and JSON dumps) straight to a writer.
type Printer struct {
	w        io.Writer
	colors   palette
	width    int
	keyWidth int
}

// PrinterOptions configures a [Printer]. Zero values use the same defaults
// as [Options].
type PrinterOptions struct {
	LineWidth int
	KeyWidth  int
	NoColor   bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, opts PrinterOptions) *Printer {
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultLineWidth
	}
	if opts.KeyWidth <= 0 {
		opts.KeyWidth = DefaultKeyWidth
	}
	return &Printer{w: w, colors: newPalette(opts.NoColor), width: opts.LineWidth, keyWidth: opts.KeyWidth}
}

func (p *Printer) println(lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.w, line)
	}
}

// KV writes "key: value".
func (p *Printer) KV(key string, value any) {
	p.println(p.colors.kv(key, value, p.keyWidth))
}

// Line writes a full-width "=" rule.
func (p *Printer) Line() { p.println(p.colors.rule(p.width, "=")) }

// LineOf writes a rule of width copies of char.
func (p *Printer) LineOf(width int, char string) { p.println(p.colors.rule(width, char)) }

// Heading writes text framed by "=" rules.
func (p *Printer) Heading(text string) { p.println(p.colors.heading(text, p.width, "=")...) }

// Subheading writes text framed by "-" rules.
func (p *Printer) Subheading(text string) { p.println(p.colors.heading(text, p.width, "-")...) }

// SectionHeading writes a "[ text ]----" line.
func (p *Printer) SectionHeading(text string) { p.println(p.colors.section(text, p.width)) }

// Block writes messages between rules, with an optional title separated
// from the body by a "," rule.
func (p *Printer) Block(title string, messages ...any) {
	p.Line()
	if title != "" {
		p.println(title)
		p.LineOf(p.width, ",")
	}
	for _, m := range messages {
		p.println(formatValue(m))
	}
	p.Line()
}

// YAML writes v as YAML between rules.
func (p *Printer) YAML(v any) error {
	p.Line()
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(Normalize(v)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	p.Line()
	return nil
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	b, err := json.MarshalIndent(Normalize(v), "", "  ")
	if err != nil {
		return err
	}
	p.println(string(b))
	return nil
}

// Progress writes the next progress line of c and returns the position
// that the following call will print.
func (p *Printer) Progress(c *Progress) int {
	p.println(c.Next())
	return c.Position
}

// Progress is a caller-owned counter for progress lines.
type Progress struct {
	Position int
	Section  string
}

const progressSectionWidth = 28

// Reset moves the counter to pos and, when section is non-empty, switches
// the section label.
func (c *Progress) Reset(pos int, section string) {
	c.Position = pos
	if section != "" {
		c.Section = section
	}
}

// Next formats the current position and advances the counter:
//
//	.. Section 1                  :   3
func (c *Progress) Next() string {
	section := strings.Repeat(" ", progressSectionWidth)
	if c.Section != "" {
		section = " " + padRight(c.Section, progressSectionWidth-1)
	}
	line := fmt.Sprintf("..%s:%4d", section, c.Position)
	c.Position++
	return line
}
