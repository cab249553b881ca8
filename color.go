package logstruct

import (
	"regexp"

	"github.com/muesli/termenv"
)

// Color is a semantic color name.
type Color string

const (
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
	White   Color = "white"
)

// ANSI color indexes understood by termenv.
var ansiColors = map[Color]string{
	Red:     "1",
	Green:   "2",
	Yellow:  "3",
	Blue:    "4",
	Magenta: "5",
	Cyan:    "6",
	White:   "7",
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Colorize wraps s in the escape codes for c. Unknown colors return s.
func Colorize(c Color, s string) string {
	return newPalette(false).paint(c, s)
}

// palette applies colors with a fixed termenv profile so output does not
// depend on the terminal the process happens to run in.
type palette struct {
	profile termenv.Profile
	off     bool
}

func newPalette(noColor bool) palette {
	if noColor {
		return palette{profile: termenv.Ascii, off: true}
	}
	return palette{profile: termenv.ANSI}
}

func (p palette) paint(c Color, s string) string {
	code, ok := ansiColors[c]
	if p.off || !ok || s == "" {
		return s
	}
	return p.profile.String(s).Foreground(p.profile.Color(code)).String()
}
