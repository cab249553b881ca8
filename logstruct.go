package logstruct

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingOutputFile = errors.New("output file required")
	ErrInvalidColumn     = errors.New("invalid column")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrInvalidData       = errors.New("invalid data")
	ErrDisplayFailed     = errors.New("column display failed")
)

// HeadingStyle selects how a heading is drawn.
type HeadingStyle string

const (
	StyleHeading    HeadingStyle = "heading"    // ===== / text / =====
	StyleSubheading HeadingStyle = "subheading" // ----- / text / -----
	StyleSection    HeadingStyle = "section"    // [ text ]-----
)

// String returns the style name.
func (s HeadingStyle) String() string { return string(s) }

// ParseHeadingStyle parses a heading style name. "section_heading" is
// accepted as an alias of "section".
func ParseHeadingStyle(s string) (HeadingStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heading":
		return StyleHeading, nil
	case "subheading":
		return StyleSubheading, nil
	case "section", "section_heading":
		return StyleSection, nil
	}
	return "", fmt.Errorf("%w: heading style %q", ErrUnsupportedFormat, s)
}

// ConvertMode controls how input data is prepared before traversal.
type ConvertMode string

const (
	// Raw walks the data as given. Only *Record and Fielder values recurse;
	// plain nested maps and structs print as scalars.
	Raw ConvertMode = "raw"
	// Normalized deep-converts maps, structs and slices into *Record and
	// []any before traversal.
	Normalized ConvertMode = "normalize"
)

// OutputTarget is a destination for rendered lines.
type OutputTarget string

const (
	Console OutputTarget = "console"
	File    OutputTarget = "file"
	None    OutputTarget = "none"
)

// TableStyle selects the layout used for arrays of records.
type TableStyle string

const (
	TablePipe     TableStyle = "pipe" // NAME | AGE with a dashed header rule
	TableRounded  TableStyle = "rounded"
	TableASCII    TableStyle = "ascii"
	TableHeavy    TableStyle = "heavy"
	TableDouble   TableStyle = "double"
	TableMarkdown TableStyle = "markdown"
)

var tableStyles = []TableStyle{TablePipe, TableRounded, TableASCII, TableHeavy, TableDouble, TableMarkdown}

// String returns the table style name.
func (s TableStyle) String() string { return string(s) }

// TableStyles returns all supported table styles.
func TableStyles() []TableStyle {
	out := make([]TableStyle, len(tableStyles))
	copy(out, tableStyles)
	return out
}

// ParseTableStyle parses a table style name.
func ParseTableStyle(s string) (TableStyle, error) {
	for _, ts := range tableStyles {
		if string(ts) == s {
			return ts, nil
		}
	}
	return "", fmt.Errorf("%w: table style %q", ErrUnsupportedFormat, s)
}

// Defaults applied by [New] to zero-valued options.
const (
	DefaultIndent         = "  "
	DefaultLineWidth      = 80
	DefaultKeyWidth       = 30
	DefaultMaxColumnWidth = 30
)

// Options configures a [Renderer]. Every field is optional.
type Options struct {
	// Indent is repeated once per nesting level. Default: two spaces.
	Indent string
	// Title is drawn before the data when non-empty.
	Title string
	// TitleStyle defaults to StyleHeading.
	TitleStyle HeadingStyle
	// LineWidth is the width of rules and headings. Default: 80.
	LineWidth int
	// KeyWidth is the padded width of key labels. Default: 30.
	KeyWidth int
	// ShowArrayCount appends a "<key> count" line after each rendered array.
	ShowArrayCount bool
	// Graph is the per-path configuration. See [ParseGraph].
	Graph any
	// ConvertDataTo defaults to Raw.
	ConvertDataTo ConvertMode
	// OutputAs defaults to Console.
	OutputAs []OutputTarget
	// OutputFile receives the color-stripped content when OutputAs has File.
	OutputFile string
	// Stdout is the console writer. Default: os.Stdout.
	Stdout io.Writer
	// Logger receives diagnostics. The zero value discards them.
	Logger zerolog.Logger
	// NoColor disables ANSI color codes.
	NoColor bool
	// TableStyle defaults to TablePipe.
	TableStyle TableStyle
	// MaxColumnWidth truncates table cells with "...". Default: 30.
	// Negative means no limit.
	MaxColumnWidth int
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	if o.TitleStyle == "" {
		o.TitleStyle = StyleHeading
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.KeyWidth <= 0 {
		o.KeyWidth = DefaultKeyWidth
	}
	if o.ConvertDataTo == "" {
		o.ConvertDataTo = Raw
	}
	if len(o.OutputAs) == 0 {
		o.OutputAs = []OutputTarget{Console}
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.TableStyle == "" {
		o.TableStyle = TablePipe
	}
	if o.MaxColumnWidth == 0 {
		o.MaxColumnWidth = DefaultMaxColumnWidth
	}
	return o
}

func (o Options) outputs(target OutputTarget) bool {
	for _, t := range o.OutputAs {
		if t == target {
			return true
		}
	}
	return false
}

// Renderer walks a data tree and renders it line by line according to its
// graph. A Renderer is not safe for concurrent use; each call to Render
// resets the accumulated lines.
type Renderer struct {
	opts   Options
	graph  *Tree
	colors palette
	log    zerolog.Logger

	lines Lines
	depth int
	path  []string
}

// New returns a Renderer configured by opts.
func New(opts Options) *Renderer {
	opts = opts.withDefaults()
	return &Renderer{
		opts:   opts,
		graph:  ParseGraph(opts.Graph),
		colors: newPalette(opts.NoColor),
		log:    opts.Logger,
	}
}

// Render renders data into Lines and writes them to the configured outputs.
// Nil data is a no-op. Failures inside a single array are logged and do not
// stop the document; a failed file write is returned.
func Render(data any, opts Options) (*Renderer, error) {
	r := New(opts)
	return r, r.Render(data)
}

// Lines returns the rendered lines, including color codes.
func (r *Renderer) Lines() []string { return r.lines.Strings() }

// Content returns the rendered lines joined by newlines.
func (r *Renderer) Content() string { return r.lines.Content() }

// CleanLines returns the rendered lines with color codes stripped.
func (r *Renderer) CleanLines() []string { return r.lines.Clean() }

// CleanContent returns the rendered content with color codes stripped.
func (r *Renderer) CleanContent() string { return StripANSI(r.lines.Content()) }

// Options returns the effective options after defaults were applied.
func (r *Renderer) Options() Options { return r.opts }
