package logstruct

import (
	"bytes"
	"strings"
)

// Lines is an append-only buffer of rendered lines. It implements
// io.Writer so table output lands in the same buffer as everything else;
// a trailing partial line is held until its newline arrives.
type Lines struct {
	lines   []string
	pending []byte
}

// Add appends lines.
func (l *Lines) Add(lines ...string) {
	l.lines = append(l.lines, lines...)
}

// Write splits p on newlines and appends each complete line.
func (l *Lines) Write(p []byte) (int, error) {
	l.pending = append(l.pending, p...)
	for {
		i := bytes.IndexByte(l.pending, '\n')
		if i < 0 {
			break
		}
		l.lines = append(l.lines, string(l.pending[:i]))
		l.pending = l.pending[i+1:]
	}
	return len(p), nil
}

// Len returns the number of complete lines.
func (l *Lines) Len() int { return len(l.lines) }

// Strings returns a copy of the lines.
func (l *Lines) Strings() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Content joins the lines with newlines.
func (l *Lines) Content() string { return strings.Join(l.lines, "\n") }

// Clean returns the lines with color codes stripped.
func (l *Lines) Clean() []string {
	out := make([]string, len(l.lines))
	for i, line := range l.lines {
		out[i] = StripANSI(line)
	}
	return out
}

// Reset empties the buffer.
func (l *Lines) Reset() {
	l.lines = l.lines[:0]
	l.pending = l.pending[:0]
}
