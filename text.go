package html2md

import (
	"strings"
	"unicode/utf8"
)

// onText handles one rune of element content.
func (c *Converter) onText(r rune) {
	if c.ignored {
		return
	}
	c.contentLength++
	switch {
	case c.inPre:
		c.codeBlockText(r)
	case c.inCode:
		c.inlineCodeText(r)
	case isSpaceRune(r):
		c.whitespace(r)
	default:
		c.textRune(r)
	}
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func (c *Converter) whitespace(r rune) {
	if r == '\n' && c.quoteDepth > 0 && c.tableDepth == 0 {
		if c.lineHasContent() && !c.atBlockStart() {
			c.breakLine()
		}
		return
	}
	if !c.lineHasContent() || c.atItemStart() {
		return
	}
	if c.opts.CompressWhitespace {
		switch c.out.lastChar() {
		case ' ', '\t', '\n':
			return
		}
		r = ' '
	} else if r != '\t' {
		r = ' '
	}
	if c.runOpen() {
		c.shiftRun()
		return
	}
	c.escapeBulletLike()
	c.emitByte(byte(r))
	c.softBreak()
}

// escapeBulletLike escapes a lone "-" or "+" at the start of a block before
// the space that would turn it into a list marker.
func (c *Converter) escapeBulletLike() {
	text := c.lineText()
	if text != "-" && text != "+" {
		return
	}
	c.retract(1)
	c.emitByte('\\')
	c.emit(text)
}

func (c *Converter) textRune(r rune) {
	if c.autoBlankAt == c.out.len() && strings.ContainsRune(".,;:!?)", r) {
		c.retract(1)
	}
	switch r {
	case '\\', '*', '_', '`':
		c.emitByte('\\')
	case '[', ']':
		if len(c.links) > 0 {
			c.emitByte('\\')
		}
	case '|':
		if c.tableDepth > 0 {
			c.emitByte('\\')
		}
	case '#', '>':
		if c.atBlockStart() {
			c.emitByte('\\')
		}
	case '.', ')':
		if c.opts.EscapeNumberedList && isDigits(c.lineText()) {
			c.emitByte('\\')
		}
	}
	c.emitRune(r)
	c.hardSplit()
}

func (c *Converter) emitRune(r rune) {
	if c.ignored {
		return
	}
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	c.out.appendRune(r, string(tmp[:n]))
}

func isDigits(s string) bool {
	if s == "" || len(s) > 9 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (c *Converter) inlineCodeText(r rune) {
	switch r {
	case '\n', '\r', '\t', '\f':
		r = ' '
	case '|':
		if c.tableDepth > 0 {
			c.emitByte('\\')
		}
	}
	c.emitRune(r)
}

func (c *Converter) codeBlockText(r rune) {
	if c.pendingFence {
		c.flushFence()
		if r == '\n' {
			return
		}
	}
	switch r {
	case '\r':
		return
	case '\n':
		if c.tableDepth > 0 {
			c.emitByte(' ')
			return
		}
		c.breakLine()
		return
	case '|':
		if c.tableDepth > 0 {
			c.emitByte('\\')
		}
	}
	c.emitRune(r)
}

func (c *Converter) canSplit() bool {
	return c.opts.SplitLines &&
		c.tableDepth == 0 &&
		!c.inPre &&
		!c.inCode &&
		!c.inHeading &&
		!c.inTitle &&
		len(c.links) == 0
}

// safeLineStart reports whether text starting with b can begin a line
// without being read as block syntax.
func safeLineStart(b byte) bool {
	if b == 0 || isSpaceByte(b) || (b >= '0' && b <= '9') {
		return false
	}
	return !strings.ContainsRune("-+*#>=|`~<", rune(b))
}

// softBreak turns the space just written into a line break once the line
// is past the soft limit and the next source character is plain text.
func (c *Converter) softBreak() {
	if !c.canSplit() || c.out.lineWidth <= c.opts.SoftBreak || c.out.lastChar() != ' ' {
		return
	}
	if !safeLineStart(c.nextNonSpace(c.pos + 1)) {
		return
	}
	c.retract(1)
	c.breakLine()
}

// hardSplit moves the tail of an overlong line after its last safe space
// onto a new line.
func (c *Converter) hardSplit() {
	if !c.canSplit() || c.out.lineWidth <= c.opts.HardBreak {
		return
	}
	line := c.out.currentLine()
	from := c.lineTextStart - c.out.lineStart()
	if from < 0 {
		from = 0
	}
	for i := len(line) - 2; i > from; i-- {
		if line[i] != ' ' || line[i-1] == ' ' || !safeLineStart(line[i+1]) {
			continue
		}
		tail := string(line[i+1:])
		c.retract(len(line) - i)
		c.breakLine()
		c.emit(tail)
		return
	}
}
