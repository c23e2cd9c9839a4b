package html2md

import "strings"

func (c *Converter) openHeading(level int) {
	if c.tableDepth > 0 {
		return
	}
	c.blockStart(false)
	c.emit(strings.Repeat("#", level))
	c.emitByte(' ')
	c.inHeading = true
}

func (c *Converter) closeHeading() {
	if c.tableDepth > 0 {
		return
	}
	c.inHeading = false
	c.ensureLineStart()
}

func (c *Converter) openParagraph() {
	c.inParagraph = true
	if c.tableDepth > 0 {
		c.appendBlank()
		return
	}
	c.blockStart(true)
}

func (c *Converter) closeParagraph() {
	c.inParagraph = false
	if c.tableDepth > 0 {
		return
	}
	c.ensureLineStart()
}

// block separates div-like containers from their surroundings without
// adding markup.
func (c *Converter) block() {
	if c.tableDepth > 0 {
		c.appendBlank()
		return
	}
	c.blockStart(false)
}

func (c *Converter) lineBreak() {
	switch {
	case c.inPre:
		if c.pendingFence {
			c.flushFence()
		}
		if c.tableDepth > 0 {
			c.emitByte(' ')
			return
		}
		c.breakLine()
	case c.tableDepth > 0:
		if c.out.lastChar() == ' ' {
			c.retract(1)
		}
		c.emit("<br>")
	case c.lineHasContent() && !c.atBlockStart():
		c.hardBreak()
	case c.listDepth == 0:
		c.ensureBlankLine()
	}
}

func (c *Converter) closeOption() {
	if c.tableDepth > 0 {
		c.appendBlank()
		return
	}
	if c.lineHasContent() && !c.atBlockStart() {
		c.hardBreak()
	}
}

func (c *Converter) closeSpan() {
	if c.contentLength > 0 && c.out.lastChar() != ' ' {
		c.appendBlank()
	}
}

func (c *Converter) openTitle() {
	if !c.opts.IncludeTitle {
		return
	}
	c.ensureBlankLine()
	c.inTitle = true
}

// closeTitle underlines the title line, turning it into a setext heading.
func (c *Converter) closeTitle() {
	if !c.opts.IncludeTitle {
		return
	}
	c.inTitle = false
	if !c.lineHasContent() {
		return
	}
	if c.out.lastChar() == ' ' {
		c.retract(1)
	}
	width := c.out.lineWidth
	c.breakLine()
	c.emit(strings.Repeat("=", width))
	c.ensureBlankLine()
}

func (c *Converter) rule() {
	if c.tableDepth > 0 {
		return
	}
	if c.atItemStart() {
		c.emit("***")
	} else {
		c.blockStart(true)
		c.emit("---")
	}
	c.breakLine()
}

func (c *Converter) openBlockquote() {
	if c.tableDepth > 0 {
		return
	}
	atItem := c.atItemStart()
	c.containers = append(c.containers, container{kind: containerQuote, prefix: "> "})
	c.refreshPrefix()
	if atItem {
		c.emit("> ")
		c.lineTextStart = c.out.len()
		return
	}
	c.ensureLineStart()
}

// closeBlockquote drops a trailing empty "> " line and leaves a blank line
// after the quote so following text is not pulled into it.
func (c *Converter) closeBlockquote() {
	if c.tableDepth > 0 {
		return
	}
	idx := c.topContainer(containerQuote)
	if idx < 0 {
		return
	}
	c.resetLine()
	c.containers = c.containers[:idx]
	c.refreshPrefix()
	c.ensureBlankLine()
}
