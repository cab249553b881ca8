package logstruct

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[TableStyle]borderChars{
	TableRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	TableASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	TableHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	TableDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

const noData = "No data."

// table is the input of the tabular render primitive.
type table struct {
	header []string
	rows   [][]string
	// limits caps individual columns; zero falls back to maxWidth.
	limits   []int
	maxWidth int
}

// writeTable renders t to w in the given style. A table without rows
// writes a single "No data." line.
func writeTable(w io.Writer, style TableStyle, t table) error {
	if len(t.rows) == 0 {
		_, err := fmt.Fprintln(w, noData)
		return err
	}
	numCols := colCount(t.header, t.rows)
	widths := computeWidths(numCols, t.header, t.rows)
	for i := range widths {
		limit := t.maxWidth
		if i < len(t.limits) && t.limits[i] > 0 {
			limit = t.limits[i]
		}
		if limit > 0 && widths[i] > limit {
			widths[i] = limit
		}
	}
	switch style {
	case TableMarkdown:
		return writeMarkdownTable(w, t.header, t.rows, widths)
	case TablePipe, "":
		return renderPipeTable(w, t.header, t.rows, widths)
	}
	bc, ok := borderSets[style]
	if !ok {
		return fmt.Errorf("%w: table style %q", ErrUnsupportedFormat, style)
	}
	return renderBorderedTable(w, t.header, t.rows, widths, bc)
}

func colCount(header []string, rows [][]string) int {
	n := len(header)
	for _, row := range rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// --- Pipe table ---

// renderPipeTable writes the compact layout:
//
//	NAME  | AGE
//	------|----
//	david | 45
func renderPipeTable(w io.Writer, header []string, rows [][]string, widths []int) error {
	if len(header) > 0 {
		if err := writePipeRow(w, header, widths); err != nil {
			return err
		}
		sep := make([]string, len(widths))
		for i, width := range widths {
			sep[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(w, strings.Join(sep, "-|-")); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writePipeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writePipeRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = formatTableCell(cell, width)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " | "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, header []string, rows [][]string, widths []int, bc borderChars) error {
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if len(header) > 0 {
		if err := drawBorderedRow(w, header, widths, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, widths, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(formatTableCell(cell, width))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// formatTableCell truncates s to width with "..." and pads it on the right.
func formatTableCell(s string, width int) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return padRight(s, width)
}
