package html2md

import "strings"

func (c *Converter) openTable() {
	c.tableDepth++
	if c.tableDepth > 1 {
		return
	}
	c.blockStart(true)
	c.tableStart = c.out.len()
	c.headerCells = c.headerCells[:0]
	c.rowCells = 0
	c.separated = false
}

// closeTable hands the finished table to the formatter and replaces the
// emitted text with the formatted version.
func (c *Converter) closeTable() {
	if c.tableDepth == 0 {
		return
	}
	c.tableDepth--
	if c.tableDepth > 0 {
		return
	}
	c.resetLine()
	if c.opts.FormatTable && c.formatTable != nil && !c.ignored && c.tableStart <= c.out.len() {
		raw := c.out.from(c.tableStart)
		if formatted, ok := c.reformatTable(raw); ok {
			c.retract(len(raw))
			c.emit(formatted)
		}
	}
	c.ensureBlankLine()
}

// reformatTable strips the container prefix from every table line, runs
// the formatter and restores the prefix.
func (c *Converter) reformatTable(raw string) (string, bool) {
	lead := ""
	if strings.HasPrefix(raw, "\n"+c.prefix) {
		lead = "\n" + c.prefix
		raw = raw[len(lead):]
	}
	body := strings.TrimRight(raw, "\n")
	if body == "" {
		return "", false
	}
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimPrefix(lines[i], c.prefix)
	}
	formatted := strings.TrimRight(c.formatTable(strings.Join(lines, "\n")), "\n")
	if formatted == "" {
		return "", false
	}
	out := strings.ReplaceAll(formatted, "\n", "\n"+c.prefix)
	return lead + out + "\n", true
}

func (c *Converter) openRow() {
	if c.tableDepth != 1 {
		return
	}
	c.ensureLineStart()
	c.rowCells = 0
}

// closeRow terminates the row. The first row is followed by the header
// separator; tables without header cells get a plain one so the result is
// still a table.
func (c *Converter) closeRow() {
	if c.tableDepth != 1 || c.rowCells == 0 {
		return
	}
	if c.out.lastChar() == ' ' {
		c.retract(1)
	}
	c.emit(" |")
	if !c.separated {
		cells := append([]string(nil), c.headerCells...)
		for len(cells) < c.rowCells {
			cells = append(cells, "--")
		}
		c.breakLine()
		c.emit("| " + strings.Join(cells, " | ") + " |")
		c.separated = true
	}
	c.headerCells = c.headerCells[:0]
	c.rowCells = 0
	c.breakLine()
}

func (c *Converter) openCell(header bool) {
	if c.tableDepth != 1 {
		return
	}
	if header && !c.separated {
		c.headerCells = append(c.headerCells, alignment(c.attribute("align"), c.attribute("style")))
	}
	if c.rowCells == 0 {
		c.ensureLineStart()
		c.emit("| ")
	} else {
		if c.out.lastChar() == ' ' {
			c.retract(1)
		}
		c.emit(" | ")
	}
	c.rowCells++
	c.lineTextStart = c.out.len()
}

// alignment maps a header cell's alignment to its separator fragment.
func alignment(align, style string) string {
	align = strings.ToLower(strings.TrimSpace(align))
	if align == "" {
		style = strings.ToLower(strings.ReplaceAll(style, " ", ""))
		if i := strings.Index(style, "text-align:"); i >= 0 {
			align = style[i+len("text-align:"):]
			if j := strings.IndexByte(align, ';'); j >= 0 {
				align = align[:j]
			}
		}
	}
	switch align {
	case "left":
		return ":--"
	case "center":
		return ":-:"
	case "right":
		return "--:"
	}
	return "--"
}
