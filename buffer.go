package html2md

import (
	"bytes"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// outputBuffer accumulates Markdown. Only append and retract mutate it, and
// both keep lineWidth equal to the display width of the text after the last
// newline.
type outputBuffer struct {
	buf       []byte
	lineWidth int
}

func (b *outputBuffer) len() int { return len(b.buf) }

func (b *outputBuffer) String() string { return string(b.buf) }

// lastChar returns the final byte, or 0 when empty.
func (b *outputBuffer) lastChar() byte {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

func (b *outputBuffer) hasSuffix(s string) bool {
	return bytes.HasSuffix(b.buf, []byte(s))
}

func (b *outputBuffer) append(s string) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		b.appendRune(r, s[:size])
		s = s[size:]
	}
}

func (b *outputBuffer) appendByte(c byte) {
	b.buf = append(b.buf, c)
	if c == '\n' {
		b.lineWidth = 0
		return
	}
	if c < utf8.RuneSelf {
		b.lineWidth++
	}
}

// appendRune appends the encoded rune raw, which must be the UTF-8 form of r.
func (b *outputBuffer) appendRune(r rune, raw string) {
	b.buf = append(b.buf, raw...)
	if r == '\n' {
		b.lineWidth = 0
		return
	}
	b.lineWidth += runewidth.RuneWidth(r)
}

// retract removes the last n bytes. Removing more than the buffer holds
// empties it.
func (b *outputBuffer) retract(n int) {
	if n <= 0 {
		return
	}
	if n > len(b.buf) {
		n = len(b.buf)
	}
	b.buf = b.buf[:len(b.buf)-n]
	b.lineWidth = ansi.PrintableRuneWidth(string(b.currentLine()))
}

// lineStart returns the offset of the first byte of the current line.
func (b *outputBuffer) lineStart() int {
	return bytes.LastIndexByte(b.buf, '\n') + 1
}

func (b *outputBuffer) currentLine() []byte {
	return b.buf[b.lineStart():]
}

// previousLine returns the line before the current one, or nil when the
// buffer holds a single line.
func (b *outputBuffer) previousLine() ([]byte, bool) {
	start := b.lineStart()
	if start == 0 {
		return nil, false
	}
	prev := b.buf[:start-1]
	return prev[bytes.LastIndexByte(prev, '\n')+1:], true
}

func (b *outputBuffer) from(offset int) string {
	if offset < 0 || offset > len(b.buf) {
		return ""
	}
	return string(b.buf[offset:])
}
