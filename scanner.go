package html2md

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// step consumes the byte or rune at c.pos.
func (c *Converter) step() {
	ch := c.html[c.pos]
	if c.inTag {
		c.scanTagByte(ch)
		c.pos++
		return
	}
	if ch == '<' {
		if strings.HasPrefix(c.html[c.pos:], "<!--") && c.rawTextEnd == "" {
			c.skipComment()
			return
		}
		if c.startsTag() {
			c.enterTag()
			c.pos++
			return
		}
	}
	if ch == '&' && c.rawTextEnd == "" {
		if repl, n, ok := c.matchEntity(c.html[c.pos:]); ok {
			for _, r := range repl {
				c.onText(r)
			}
			c.pos += n
			return
		}
	}
	r, size := utf8.DecodeRuneInString(c.html[c.pos:])
	c.onText(r)
	c.pos += size
}

func (c *Converter) skipComment() {
	end := strings.Index(c.html[c.pos+4:], "-->")
	if end < 0 {
		c.pos = len(c.html)
		return
	}
	c.pos += 4 + end + 3
}

// startsTag decides whether the '<' at c.pos opens markup.
func (c *Converter) startsTag() bool {
	rest := c.html[c.pos:]
	if c.rawTextEnd != "" {
		if len(rest) < len(c.rawTextEnd) || !strings.EqualFold(rest[:len(c.rawTextEnd)], c.rawTextEnd) {
			return false
		}
		if len(rest) == len(c.rawTextEnd) {
			return true
		}
		next := rest[len(c.rawTextEnd)]
		return next == '>' || next == '/' || isSpaceByte(next)
	}
	if len(rest) < 2 {
		return false
	}
	next := rest[1]
	return next == '/' || next == '!' || next == '?' ||
		(next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z')
}

func (c *Converter) enterTag() {
	c.offsetLt = c.pos
	c.inTag = true
	c.prevTag = c.currentTag
	c.currentTag = ""
	c.tagBuf = c.tagBuf[:0]
	c.closing = false
	c.selfClosing = false
	c.attrQuote = 0
}

func (c *Converter) scanTagByte(ch byte) {
	switch {
	case c.attrQuote != 0:
		c.tagBuf = append(c.tagBuf, ch)
		if ch == c.attrQuote {
			c.attrQuote = 0
		}
	case ch == '"' || ch == '\'':
		if lastNonSpace(c.tagBuf) == '=' {
			c.attrQuote = ch
		}
		c.tagBuf = append(c.tagBuf, ch)
	case ch == '/':
		if len(c.tagBuf) == 0 {
			c.closing = true
			return
		}
		if c.nextNonSpace(c.pos+1) == '>' {
			c.selfClosing = true
			return
		}
		c.tagBuf = append(c.tagBuf, ch)
	case ch == '>':
		c.leaveTag()
	default:
		c.tagBuf = append(c.tagBuf, ch)
	}
}

func (c *Converter) nextNonSpace(from int) byte {
	for i := from; i < len(c.html); i++ {
		if !isSpaceByte(c.html[i]) {
			return c.html[i]
		}
	}
	return 0
}

func lastNonSpace(b []byte) byte {
	for i := len(b) - 1; i >= 0; i-- {
		if !isSpaceByte(b[i]) {
			return b[i]
		}
	}
	return 0
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// rawTag is the source text of the tag being dispatched, from '<' up to
// but excluding '>'.
func (c *Converter) rawTag() string {
	if c.offsetLt > c.pos || c.pos > len(c.html) {
		return ""
	}
	return c.html[c.offsetLt:c.pos]
}

func (c *Converter) leaveTag() {
	c.inTag = false
	name := string(c.tagBuf)
	if i := strings.IndexAny(name, " \t\n\r\f"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)
	c.currentTag = name
	c.handleTag(name)
	c.contentLength = 0
}

// handleTag dispatches a completed tag. contentLength still counts the
// text since the previous tag while handlers run.
func (c *Converter) handleTag(name string) {
	if c.rawTextEnd != "" {
		if !c.closing {
			return
		}
		c.rawTextEnd = ""
	}
	a, kind := lookupTag(name)
	if a == atom.Body && !c.closing {
		if idx := c.findAncestor(atom.Head); idx >= 0 {
			c.closeTo(idx)
		}
	}
	if kind == tagUnknown {
		return
	}
	if c.closing {
		c.closeTag(a)
		return
	}
	c.openTag(a, kind)
}

func (c *Converter) openTag(a atom.Atom, kind tagKind) {
	hidden := isHidden(c.rawTag())
	if voidElements[a] {
		if !hidden {
			c.dispatch(kind, a, true)
		}
		return
	}
	c.closeImplicit(kind)
	if kind == tagTitle && !c.opts.IncludeTitle {
		hidden = true
	}
	c.ancestry = append(c.ancestry, ancestor{atom: a, kind: kind, hidden: hidden})
	c.updateIgnored()
	if (a == atom.Script || a == atom.Style) && !c.selfClosing {
		c.rawTextEnd = "</" + a.String()
	}
	c.dispatch(kind, a, true)
	if c.selfClosing {
		c.closeTo(len(c.ancestry) - 1)
	}
}

func (c *Converter) closeTag(a atom.Atom) {
	if voidElements[a] {
		return
	}
	if idx := c.findAncestor(a); idx >= 0 {
		c.closeTo(idx)
	}
}

// closeTo runs closing handlers for ancestry entries from the top down to
// idx, popping each after its handler ran.
func (c *Converter) closeTo(idx int) {
	for len(c.ancestry) > idx {
		top := c.ancestry[len(c.ancestry)-1]
		c.dispatch(top.kind, top.atom, false)
		c.ancestry = c.ancestry[:len(c.ancestry)-1]
		c.updateIgnored()
	}
}

// closeImplicit ends an open paragraph when a block starts, and an open
// list item when a sibling item starts.
func (c *Converter) closeImplicit(kind tagKind) {
	var target tagKind
	switch kind {
	case tagParagraph, tagBlock, tagHeading, tagOrderedList, tagUnorderedList,
		tagPre, tagTable, tagBlockquote:
		target = tagParagraph
	case tagListItem:
		target = tagListItem
	default:
		return
	}
	for i := len(c.ancestry) - 1; i >= 0; i-- {
		k := c.ancestry[i].kind
		if k == target {
			c.closeTo(i)
			return
		}
		if !k.inlineContent() && !(target == tagListItem && k == tagParagraph) {
			return
		}
	}
}

func (c *Converter) findAncestor(a atom.Atom) int {
	for i := len(c.ancestry) - 1; i >= 0; i-- {
		if c.ancestry[i].atom == a {
			return i
		}
	}
	return -1
}

// updateIgnored caches whether output is currently suppressed. An open pre
// or visible title anywhere in the ancestry overrides suppression.
func (c *Converter) updateIgnored() {
	c.ignored = false
	for _, a := range c.ancestry {
		if (a.kind == tagPre || a.kind == tagTitle) && !a.hidden {
			return
		}
	}
	for _, a := range c.ancestry {
		if a.hidden || a.kind == tagIgnored {
			c.ignored = true
			return
		}
	}
}

func (c *Converter) dispatch(kind tagKind, a atom.Atom, opening bool) {
	if c.inPre && !kind.activeInPre() {
		return
	}
	if c.inCode && kind != tagCode {
		return
	}
	switch kind {
	case tagAnchor:
		if opening {
			c.openAnchor()
		} else {
			c.closeAnchor()
		}
	case tagBreak:
		if opening {
			c.lineBreak()
		}
	case tagBlock:
		c.block()
	case tagHeading:
		if opening {
			c.openHeading(headingLevel(a))
		} else {
			c.closeHeading()
		}
	case tagListItem:
		if opening {
			c.openListItem()
		} else {
			c.closeListItem()
		}
	case tagOption:
		if !opening {
			c.closeOption()
		}
	case tagOrderedList, tagUnorderedList:
		if opening {
			c.openList(kind == tagOrderedList)
		} else {
			c.closeList()
		}
	case tagParagraph:
		if opening {
			c.openParagraph()
		} else {
			c.closeParagraph()
		}
	case tagPre:
		if opening {
			c.openPre()
		} else {
			c.closePre()
		}
	case tagCode:
		if opening {
			c.openCode()
		} else {
			c.closeCode()
		}
	case tagSpan:
		if !opening {
			c.closeSpan()
		}
	case tagTitle:
		if opening {
			c.openTitle()
		} else {
			c.closeTitle()
		}
	case tagImage:
		if opening {
			c.image()
		}
	case tagRule:
		if opening {
			c.rule()
		}
	case tagBold, tagItalic, tagUnderline, tagStrike:
		if opening {
			c.openEmphasis(kind)
		} else {
			c.closeEmphasis(kind)
		}
	case tagBlockquote:
		if opening {
			c.openBlockquote()
		} else {
			c.closeBlockquote()
		}
	case tagTable:
		if opening {
			c.openTable()
		} else {
			c.closeTable()
		}
	case tagRow:
		if opening {
			c.openRow()
		} else {
			c.closeRow()
		}
	case tagHeaderCell, tagDataCell:
		if opening {
			c.openCell(kind == tagHeaderCell)
		}
	}
}
