package html2md

import "strings"

// Every write goes through these helpers so nothing reaches the buffer
// while the current ancestry is suppressed.

func (c *Converter) emit(s string) {
	if c.ignored {
		return
	}
	c.out.append(s)
}

func (c *Converter) emitByte(b byte) {
	if c.ignored {
		return
	}
	c.out.appendByte(b)
}

func (c *Converter) retract(n int) {
	if c.ignored {
		return
	}
	c.out.retract(n)
}

// appendBlank writes one space unless the buffer is empty or already ends
// in whitespace or a bold marker.
func (c *Converter) appendBlank() {
	if c.ignored || c.out.len() == 0 {
		return
	}
	switch c.out.lastChar() {
	case ' ', '\n', '\t':
		return
	}
	if c.out.hasSuffix("**") {
		return
	}
	c.out.appendByte(' ')
	c.autoBlankAt = c.out.len()
}

// lineHasContent reports whether the current line holds anything beyond
// whitespace and quote markers.
func (c *Converter) lineHasContent() bool {
	for _, b := range c.out.currentLine() {
		if b != ' ' && b != '\t' && b != '>' {
			return true
		}
	}
	return false
}

// resetLine drops a current line that holds only prefix material.
func (c *Converter) resetLine() {
	if c.lineHasContent() {
		return
	}
	c.retract(len(c.out.currentLine()))
}

// breakLine ends the current line and starts the next one with the
// container prefix.
func (c *Converter) breakLine() {
	if c.ignored {
		return
	}
	c.out.appendByte('\n')
	c.out.append(c.prefix)
	c.lineTextStart = c.out.len()
}

// ensureLineStart leaves the buffer at the start of a prefixed line.
func (c *Converter) ensureLineStart() {
	if c.ignored {
		return
	}
	if c.lineHasContent() {
		c.breakLine()
		return
	}
	c.resetLine()
	c.out.append(c.prefix)
	c.lineTextStart = c.out.len()
}

// ensureBlankLine leaves the buffer at the start of a prefixed line that
// follows a blank one. At the start of the output no blank line is added.
func (c *Converter) ensureBlankLine() {
	if c.ignored {
		return
	}
	c.resetLine()
	if c.out.len() > 0 {
		if c.out.lastChar() != '\n' {
			c.out.appendByte('\n')
		}
		if !c.atBlankLine() {
			c.out.append(strings.TrimRight(c.prefix, " "))
			c.out.appendByte('\n')
		}
	}
	c.out.append(c.prefix)
	c.lineTextStart = c.out.len()
}

// atBlankLine reports whether the line before the (empty) current line is
// blank.
func (c *Converter) atBlankLine() bool {
	prev, ok := c.out.previousLine()
	if !ok {
		return true
	}
	for _, b := range prev {
		if b != ' ' && b != '\t' && b != '>' {
			return false
		}
	}
	return true
}

// blockStart positions the buffer for a new block. Outside lists blocks are
// separated by a blank line. Inside a list item a block right after the
// item marker stays on the marker line; otherwise it starts a continuation
// line, preceded by a blank one when loose is set.
func (c *Converter) blockStart(loose bool) {
	if c.listDepth > 0 {
		if c.atItemStart() {
			return
		}
		if loose {
			c.ensureBlankLine()
			return
		}
		c.ensureLineStart()
		return
	}
	c.ensureBlankLine()
}

func (c *Converter) atItemStart() bool {
	return c.listDepth > 0 && c.out.len() == c.itemStart
}

func (c *Converter) atBlockStart() bool {
	return c.out.len() == c.lineTextStart
}

// lineText returns the text written on the current line after its
// structural prefix.
func (c *Converter) lineText() string {
	if c.lineTextStart < c.out.lineStart() {
		return c.out.from(c.out.lineStart())
	}
	return c.out.from(c.lineTextStart)
}

// hardBreak ends the line with a Markdown hard break.
func (c *Converter) hardBreak() {
	if c.out.lastChar() == ' ' {
		c.retract(1)
	}
	c.emit("  ")
	c.breakLine()
}

// startRun and endRun bracket an opening inline marker. Consecutive markers
// with nothing written in between form one run.
func (c *Converter) startRun() {
	if c.openRunEnd != c.out.len() {
		c.openRunStart = c.out.len()
	}
}

func (c *Converter) endRun() {
	c.openRunEnd = c.out.len()
}

// runOpen reports whether the buffer ends with opening markers that have
// not received any text yet.
func (c *Converter) runOpen() bool {
	return c.openRunStart >= 0 && c.openRunStart < c.openRunEnd && c.openRunEnd == c.out.len()
}

// shiftRun moves the open marker run one column right, inserting a space
// before it. Link starts inside the run move with it.
func (c *Converter) shiftRun() {
	run := c.out.from(c.openRunStart)
	old := c.openRunStart
	c.retract(len(run))
	if c.lineHasContent() && c.out.lastChar() != ' ' {
		c.emitByte(' ')
	}
	delta := c.out.len() - old
	c.emit(run)
	c.openRunStart = old + delta
	c.openRunEnd = c.out.len()
	for i := range c.links {
		if c.links[i].start >= old {
			c.links[i].start += delta
		}
	}
}

// refreshPrefix rebuilds the line prefix from the container stack.
func (c *Converter) refreshPrefix() {
	var b strings.Builder
	c.listDepth, c.quoteDepth = 0, 0
	for _, ct := range c.containers {
		b.WriteString(ct.prefix)
		if ct.kind == containerList {
			c.listDepth++
		} else {
			c.quoteDepth++
		}
	}
	c.prefix = b.String()
}

// prefixBelow concatenates the prefixes of containers outside idx.
func (c *Converter) prefixBelow(idx int) string {
	var b strings.Builder
	for _, ct := range c.containers[:idx] {
		b.WriteString(ct.prefix)
	}
	return b.String()
}

func (c *Converter) topContainer(kind containerKind) int {
	for i := len(c.containers) - 1; i >= 0; i-- {
		if c.containers[i].kind == kind {
			return i
		}
	}
	return -1
}
