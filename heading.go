package logstruct

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rule returns a green line of width copies of char.
func Rule(width int, char string) string {
	return newPalette(false).rule(width, char)
}

// Heading returns a title framed by "=" rules.
func Heading(text string, width int) []string {
	return newPalette(false).heading(text, width, "=")
}

// Subheading returns a title framed by "-" rules.
func Subheading(text string, width int) []string {
	return newPalette(false).heading(text, width, "-")
}

// SectionHeading returns a single "[ text ]----" line filling width.
func SectionHeading(text string, width int) string {
	return newPalette(false).section(text, width)
}

// KV returns "label: value" with label padded to width.
func KV(label string, value any, width int) string {
	return newPalette(false).kv(label, value, width)
}

func (p palette) rule(width int, char string) string {
	if width <= 0 {
		return ""
	}
	return p.paint(Green, strings.Repeat(char, width))
}

func (p palette) heading(text string, width int, char string) []string {
	line := p.rule(width, char)
	return []string{line, text, line}
}

// Width is measured before color is applied.
func (p palette) section(text string, width int) string {
	label := "[ " + text + " ]"
	rest := width - runewidth.StringWidth(label)
	if rest <= 0 {
		return p.paint(Green, label)
	}
	return p.paint(Green, label) + p.rule(rest, "-")
}

func (p palette) kv(label string, value any, width int) string {
	return p.paint(Green, padRight(label, width)) + ": " + formatValue(value)
}

func (p palette) headingLines(style HeadingStyle, text string, width int) []string {
	switch style {
	case StyleHeading:
		return p.heading(text, width, "=")
	case StyleSubheading:
		return p.heading(text, width, "-")
	default:
		return []string{p.section(text, width)}
	}
}

func padRight(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
