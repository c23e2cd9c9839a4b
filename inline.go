package html2md

import "strings"

var emphasisMarkers = [4][2]string{
	{"**", "**"},
	{"*", "*"},
	{"<u>", "</u>"},
	{"~~", "~~"},
}

func emphasisIndex(kind tagKind) int {
	switch kind {
	case tagBold:
		return 0
	case tagItalic:
		return 1
	case tagUnderline:
		return 2
	}
	return 3
}

// openEmphasis writes the opening marker. Nested identical emphasis is
// written once.
func (c *Converter) openEmphasis(kind tagKind) {
	i := emphasisIndex(kind)
	c.emphasis[i]++
	if c.emphasis[i] > 1 {
		return
	}
	c.startRun()
	c.emit(emphasisMarkers[i][0])
	c.endRun()
}

// closeEmphasis writes the closing marker, moving a trailing space past it.
// A pair that enclosed nothing is retracted.
func (c *Converter) closeEmphasis(kind tagKind) {
	i := emphasisIndex(kind)
	if c.emphasis[i] == 0 {
		return
	}
	c.emphasis[i]--
	if c.emphasis[i] > 0 {
		return
	}
	opening, closing := emphasisMarkers[i][0], emphasisMarkers[i][1]
	if c.runOpen() && c.out.hasSuffix(opening) {
		c.retract(len(opening))
		c.openRunEnd = c.out.len()
		return
	}
	moved := false
	if c.out.lastChar() == ' ' {
		c.retract(1)
		moved = true
	}
	c.emit(closing)
	if moved {
		c.emitByte(' ')
	}
}

func (c *Converter) openAnchor() {
	l := link{
		href:  c.attribute("href"),
		title: c.attribute("title"),
	}
	c.startRun()
	l.start = c.out.len()
	c.emitByte('[')
	c.endRun()
	c.links = append(c.links, l)
}

// closeAnchor completes the link. An anchor without text leaves nothing
// behind.
func (c *Converter) closeAnchor() {
	if len(c.links) == 0 {
		return
	}
	l := c.links[len(c.links)-1]
	c.links = c.links[:len(c.links)-1]
	if c.ignored {
		return
	}
	moved := false
	if c.out.lastChar() == ' ' {
		c.retract(1)
		moved = true
	}
	if c.out.len() == l.start+1 && c.out.lastChar() == '[' {
		c.retract(1)
		if c.runOpen() {
			c.openRunEnd = c.out.len()
		}
		if moved {
			c.appendBlank()
		}
		return
	}
	c.emit("](")
	c.emit(destination(l.href))
	c.emit(linkTitle(l.title))
	c.emitByte(')')
	if moved {
		c.emitByte(' ')
	}
	if c.prevTag == "img" && c.tableDepth == 0 {
		c.ensureLineStart()
	}
}

func (c *Converter) image() {
	src := c.attribute("src")
	alt := c.attribute("alt")
	if src == "" && alt == "" {
		return
	}
	if c.tableDepth == 0 && c.prevTag != "a" && c.lineHasContent() && !c.atBlockStart() {
		c.breakLine()
	}
	c.emit("![")
	c.emit(escapeLinkText(alt))
	c.emit("](")
	c.emit(destination(src))
	c.emit(linkTitle(c.attribute("title")))
	c.emitByte(')')
}

// destination wraps link targets that Markdown would otherwise cut short.
func destination(href string) string {
	href = strings.TrimSpace(href)
	if !strings.ContainsAny(href, " ()<>\t\n") {
		return href
	}
	r := strings.NewReplacer("<", "%3C", ">", "%3E", "\n", "", "\t", "")
	return "<" + r.Replace(href) + ">"
}

func linkTitle(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

func escapeLinkText(s string) string {
	if !strings.ContainsAny(s, `[]\`) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

func (c *Converter) openCode() {
	if c.inPre {
		if c.pendingFence {
			c.emit(codeLanguage(c.attribute("class")))
		}
		return
	}
	c.codeDepth++
	if c.codeDepth > 1 {
		return
	}
	c.inCode = true
	c.codeStart = c.out.len()
	c.emitByte('`')
}

// closeCode ends an inline code span. Content containing backticks is
// rewritten inside a longer fence; an empty span is dropped.
func (c *Converter) closeCode() {
	if c.inPre || c.codeDepth == 0 {
		return
	}
	c.codeDepth--
	if c.codeDepth > 0 {
		return
	}
	c.inCode = false
	if c.ignored {
		return
	}
	content := c.out.from(c.codeStart + 1)
	if content == "" {
		c.retract(1)
		return
	}
	if !strings.Contains(content, "`") {
		c.emitByte('`')
		return
	}
	fence := strings.Repeat("`", longestRun(content, '`')+1)
	pad := ""
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		pad = " "
	}
	c.retract(len(content) + 1)
	c.emit(fence + pad + content + pad + fence)
}

// codeLanguage extracts X from a "language-X" or "lang-X" class.
func codeLanguage(class string) string {
	for _, field := range strings.Fields(class) {
		for _, p := range []string{"language-", "lang-"} {
			if strings.HasPrefix(field, p) && len(field) > len(p) {
				return field[len(p):]
			}
		}
	}
	return ""
}

func longestRun(s string, ch byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return longest
}

// openPre starts a fenced code block. The fence is longer than any
// backtick run in the block's source.
func (c *Converter) openPre() {
	c.preDepth++
	if c.preDepth > 1 {
		return
	}
	c.inPre = true
	if c.tableDepth > 0 {
		return
	}
	c.blockStart(false)
	body := c.html[min(c.pos+1, len(c.html)):]
	if end := indexFold(body, "</pre"); end >= 0 {
		body = body[:end]
	}
	c.fence = strings.Repeat("`", max(3, longestRun(body, '`')+1))
	c.emit(c.fence)
	c.pendingFence = true
}

// flushFence ends the opening fence line once the info string is known.
func (c *Converter) flushFence() {
	c.pendingFence = false
	c.breakLine()
}

func (c *Converter) closePre() {
	if c.preDepth == 0 {
		return
	}
	c.preDepth--
	if c.preDepth > 0 {
		return
	}
	c.inPre = false
	if c.tableDepth > 0 {
		return
	}
	if c.pendingFence {
		c.flushFence()
	}
	if string(c.out.currentLine()) != c.prefix {
		c.breakLine()
	}
	c.emit(c.fence)
	c.breakLine()
}

func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
