// Package table aligns GitHub-style Markdown pipe tables.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type align uint8

const (
	alignNone align = iota
	alignLeft
	alignCenter
	alignRight
)

// minSeparatorWidth is the narrowest separator cell that can carry both
// alignment colons.
const minSeparatorWidth = 3

// Format pads every cell of a pipe table to its column's widest cell and
// rewrites the separator row to match, keeping each column's alignment.
// Input that has no separator row is returned unchanged.
func Format(raw string) string {
	var rows [][]string
	sep := -1
	var aligns []align
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, "|") {
			return raw
		}
		cells := splitRow(line)
		if sep < 0 {
			if a, ok := parseSeparator(cells); ok {
				sep = len(rows)
				aligns = a
			}
		}
		rows = append(rows, cells)
	}
	if sep < 0 {
		return raw
	}

	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	for len(aligns) < cols {
		aligns = append(aligns, alignNone)
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minSeparatorWidth
	}
	for i, r := range rows {
		if i == sep {
			continue
		}
		for j, cell := range r {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	b.Grow(len(raw) * 2)
	for i, r := range rows {
		b.WriteString("|")
		for j := 0; j < cols; j++ {
			b.WriteByte(' ')
			if i == sep {
				b.WriteString(separatorCell(widths[j], aligns[j]))
			} else {
				cell := ""
				if j < len(r) {
					cell = r[j]
				}
				b.WriteString(pad(cell, widths[j], aligns[j]))
			}
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// splitRow splits a row on unescaped pipes, dropping the outer ones.
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}
	var cells []string
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, strings.TrimSpace(line[start:i]))
			start = i + 1
		}
	}
	return append(cells, strings.TrimSpace(line[start:]))
}

func parseSeparator(cells []string) ([]align, bool) {
	aligns := make([]align, len(cells))
	for i, cell := range cells {
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		dashes := strings.Trim(cell, ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns[i] = alignCenter
		case left:
			aligns[i] = alignLeft
		case right:
			aligns[i] = alignRight
		}
	}
	return aligns, true
}

func separatorCell(width int, a align) string {
	switch a {
	case alignLeft:
		return ":" + strings.Repeat("-", width-1)
	case alignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	case alignRight:
		return strings.Repeat("-", width-1) + ":"
	}
	return strings.Repeat("-", width)
}

func pad(cell string, width int, a align) string {
	switch a {
	case alignRight:
		return runewidth.FillLeft(cell, width)
	case alignCenter:
		gap := width - runewidth.StringWidth(cell)
		if gap <= 0 {
			return cell
		}
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	}
	return runewidth.FillRight(cell, width)
}
