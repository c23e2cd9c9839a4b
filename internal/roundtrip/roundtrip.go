// Package roundtrip checks the converter against a Markdown renderer: a
// Markdown source is rendered to HTML, converted back to Markdown and
// rendered again. Both renderings must agree.
package roundtrip

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"pkt.systems/html2md"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var interTagSpace = regexp.MustCompile(`>\s+<`)

// Result is the outcome of one round trip.
type Result struct {
	// Markdown is the converter output.
	Markdown string
	// Want is the HTML rendered from the source, Got the HTML rendered from
	// Markdown. Both are normalised.
	Want string
	Got  string
}

// Equal reports whether both renderings agree.
func (r Result) Equal() bool {
	return r.Want == r.Got
}

// Diff returns a readable difference between the renderings, or "".
func (r Result) Diff() string {
	return cmp.Diff(splitTags(r.Want), splitTags(r.Got))
}

// Render renders Markdown to normalised HTML.
func Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return normalize(buf.String()), nil
}

// Run performs the round trip for src.
func Run(src []byte, opts ...html2md.Option) (Result, error) {
	var buf bytes.Buffer
	if err := renderer.Convert(src, &buf); err != nil {
		return Result{}, fmt.Errorf("render source: %w", err)
	}
	md := html2md.Convert(buf.String(), opts...)
	got, err := Render([]byte(md))
	if err != nil {
		return Result{}, fmt.Errorf("render converted: %w", err)
	}
	return Result{Markdown: md, Want: normalize(buf.String()), Got: got}, nil
}

// normalize drops whitespace between tags, which carries no meaning in the
// rendered output.
func normalize(s string) string {
	return strings.TrimSpace(interTagSpace.ReplaceAllString(s, "><"))
}

func splitTags(s string) []string {
	return strings.SplitAfter(s, ">")
}
