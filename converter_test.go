package html2md

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func convertWith(t *testing.T, html string, opts ...Option) string {
	t.Helper()
	return Convert(html, opts...)
}

func TestConvertBlocks(t *testing.T) {
	cases := []struct {
		name string
		html string
		opts []Option
		want string
	}{
		{
			name: "heading",
			html: "<h1>Hello Python!</h1>",
			want: "# Hello Python!\n",
		},
		{
			name: "heading then paragraph",
			html: "<h3>Sub</h3><p>Body</p>",
			want: "### Sub\n\nBody\n",
		},
		{
			name: "paragraph",
			html: "<p>Simple paragraph</p>",
			want: "Simple paragraph\n",
		},
		{
			name: "paragraphs are separated by a blank line",
			html: "<p>One</p><p>Two</p>",
			want: "One\n\nTwo\n",
		},
		{
			name: "upper case tags",
			html: "<H2>Hi</H2><P>x</P>",
			want: "## Hi\n\nx\n",
		},
		{
			name: "divs",
			html: "<div>a</div><div>b</div>",
			want: "a\n\nb\n",
		},
		{
			name: "horizontal rule",
			html: "<p>a</p><hr><p>b</p>",
			want: "a\n\n---\n\nb\n",
		},
		{
			name: "line break after digits",
			html: "4.<br />\nPlease implement as requested.",
			want: "4\\.  \nPlease implement as requested.\n",
		},
		{
			name: "line break without numbered escaping",
			html: "4.<br />\nPlease implement as requested.",
			opts: []Option{WithNumberedListEscaping(false)},
			want: "4.  \nPlease implement as requested.\n",
		},
		{
			name: "line break between blocks",
			html: "<p>a</p><br><p>b</p>",
			want: "a\n\nb\n",
		},
		{
			name: "blockquote with newlines",
			html: "<body>Text<blockquote>a\nb</blockquote></body>",
			want: "Text\n> a\n> b\n",
		},
		{
			name: "blockquote followed by paragraph",
			html: "<blockquote><p>q</p></blockquote><p>after</p>",
			want: "> q\n\nafter\n",
		},
		{
			name: "blockquote with paragraph and list",
			html: "<blockquote>\n<p>Quoted text with <strong>bold</strong> and <em>italic</em></p>\n<ul>\n<li>Nested <strong>list</strong></li>\n</ul>\n</blockquote>",
			want: "> Quoted text with **bold** and *italic*\n>\n> - Nested **list**\n",
		},
		{
			name: "title",
			html: "<title>HTML title</title>",
			want: "HTML title\n==========\n",
		},
		{
			name: "title disabled",
			html: "<title>HTML title</title>",
			opts: []Option{WithTitle(false)},
			want: "",
		},
		{
			name: "document with head",
			html: `<html><head><title>T</title><meta charset="utf-8"></head><body><p>x</p></body></html>`,
			want: "T\n=\n\nx\n",
		},
		{
			name: "options",
			html: "<select><option>a</option><option>b</option></select>",
			want: "a  \nb\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertInline(t *testing.T) {
	cases := []struct {
		name string
		html string
		opts []Option
		want string
	}{
		{
			name: "bold and italic",
			html: "<p><b>bold</b> and <i>it</i></p>",
			want: "**bold** and *it*\n",
		},
		{
			name: "spaces move outside emphasis",
			html: "<p>a<b> bold </b>c</p>",
			want: "a **bold** c\n",
		},
		{
			name: "empty emphasis is dropped",
			html: "<p>a<b></b>c</p>",
			want: "ac\n",
		},
		{
			name: "underline and strike",
			html: "<p><u>u</u> <del>d</del></p>",
			want: "<u>u</u> ~~d~~\n",
		},
		{
			name: "link with title",
			html: `<p><a href="https://x.io/a" title="T">text</a></p>`,
			want: "[text](https://x.io/a \"T\")\n",
		},
		{
			name: "link with spaces in target",
			html: `<a href="a b.html">x</a>`,
			want: "[x](<a b.html>)\n",
		},
		{
			name: "brackets in link text",
			html: `<a href="u">[1]</a>`,
			want: "[\\[1\\]](u)\n",
		},
		{
			name: "empty anchor",
			html: `<a href="http://example.com/"></a>`,
			want: "",
		},
		{
			name: "image starts a line",
			html: `<p>See <img src="i.png" alt="A"></p>`,
			want: "See\n![A](i.png)\n",
		},
		{
			name: "image inside anchor",
			html: `<a href="/home"><img src="logo.png" alt="Logo"></a>`,
			want: "[![Logo](logo.png)](/home)\n",
		},
		{
			name: "inline code",
			html: "<p>Use <code>a*b</code> now</p>",
			want: "Use `a*b` now\n",
		},
		{
			name: "inline code with backtick",
			html: "<p><code>a`b</code></p>",
			want: "``a`b``\n",
		},
		{
			name: "empty inline code",
			html: "<p>x<code></code>y</p>",
			want: "xy\n",
		},
		{
			name: "spans are separated",
			html: "<span>a</span><span>b</span>",
			want: "a b\n",
		},
		{
			name: "no blank before punctuation after span",
			html: "<span>a</span>.",
			want: "a.\n",
		},
		{
			name: "comments are skipped",
			html: "<p>a<!-- <b>not</b> -->b</p>",
			want: "ab\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertCodeBlocks(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "language from class",
			html: `<pre><code class="language-go">fmt.Println("hi")` + "\n</code></pre>",
			want: "```go\nfmt.Println(\"hi\")\n```\n",
		},
		{
			name: "fence longer than content backticks",
			html: "<pre>use ``` here</pre>",
			want: "````\nuse ``` here\n````\n",
		},
		{
			name: "entities are decoded",
			html: "<pre>a &lt; b</pre>",
			want: "```\na < b\n```\n",
		},
		{
			name: "markup is not interpreted",
			html: "<pre>*<b>x</b>*</pre>",
			want: "```\n*x*\n```\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertLists(t *testing.T) {
	cases := []struct {
		name string
		html string
		opts []Option
		want string
	}{
		{
			name: "unordered",
			html: "<ul><li>First</li><li>Second</li></ul>",
			want: "- First\n- Second\n",
		},
		{
			name: "custom bullet",
			html: "<ul><li>First</li><li>Second</li></ul>",
			opts: []Option{WithUnorderedListMarker('*')},
			want: "* First\n* Second\n",
		},
		{
			name: "ordered",
			html: "<ol><li>a</li><li>b</li></ol>",
			want: "1. a\n2. b\n",
		},
		{
			name: "ordered with parenthesis",
			html: "<ol><li>a</li><li>b</li></ol>",
			opts: []Option{WithOrderedListMarker(')')},
			want: "1) a\n2) b\n",
		},
		{
			name: "nested unordered",
			html: "<ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>",
			want: "- a\n  - b\n- c\n",
		},
		{
			name: "nested ordered",
			html: "<ol><li>a<ol><li>b</li></ol></li></ol>",
			want: "1. a\n   1. b\n",
		},
		{
			name: "implicitly closed items",
			html: "<ul><li>a<li>b</ul>",
			want: "- a\n- b\n",
		},
		{
			name: "forced left trim flattens nesting",
			html: "<ul><li>a<ul><li>b</li></ul></li></ul>",
			opts: []Option{WithForcedLeftTrim(true)},
			want: "- a\n- b\n",
		},
		{
			name: "quote inside item",
			html: "<ul><li><blockquote>q</blockquote></li></ul>",
			want: "- > q\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertTables(t *testing.T) {
	const simple = "\n    <table>\n        <tr><th>Header 1</th><th>Header 2</th></tr>\n        <tr><td>Data 1</td><td>Data 2</td></tr>\n    </table>\n    "
	cases := []struct {
		name string
		html string
		opts []Option
		want string
	}{
		{
			name: "formatted",
			html: simple,
			want: "| Header 1 | Header 2 |\n| -------- | -------- |\n| Data 1   | Data 2   |\n",
		},
		{
			name: "unformatted",
			html: simple,
			opts: []Option{WithTableFormatting(false)},
			want: "| Header 1 | Header 2 |\n| -- | -- |\n| Data 1 | Data 2 |\n",
		},
		{
			name: "alignment",
			html: `<table><tr><th align="left">L</th><th align="center">C</th><th style="text-align: right">R</th></tr>` +
				"<tr><td>1</td><td>22</td><td>333</td></tr></table>",
			want: "| L   |  C  |   R |\n| :-- | :-: | --: |\n| 1   | 22  | 333 |\n",
		},
		{
			name: "separator without header cells",
			html: "<table><tr><td>a</td><td>b</td></tr></table>",
			opts: []Option{WithTableFormatting(false)},
			want: "| a | b |\n| -- | -- |\n",
		},
		{
			name: "pipes are escaped",
			html: "<table><tr><th>a|b</th></tr></table>",
			opts: []Option{WithTableFormatting(false)},
			want: "| a\\|b |\n| -- |\n",
		},
		{
			name: "line breaks inside cells",
			html: "<table><tr><td>a<br>b</td></tr></table>",
			opts: []Option{WithTableFormatting(false)},
			want: "| a<br>b |\n| -- |\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTableFormatterOverride(t *testing.T) {
	opts := DefaultOptions()
	conv := NewConverter("<table><tr><td>a</td></tr></table>", &opts)
	var seen string
	conv.SetTableFormatter(func(raw string) string {
		seen = raw
		return "| custom |\n| --- |\n"
	})
	got := conv.Convert()
	if diff := cmp.Diff("| a |\n| -- |", seen); diff != "" {
		t.Fatalf("formatter input mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("| custom |\n| --- |\n", got); diff != "" {
		t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertSuppressed(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "script with markup",
			html: `<p>a</p><script>if (a < b) { x = "<p>" }</script><p>b</p>`,
			want: "a\n\nb\n",
		},
		{
			name: "style",
			html: "<style>p > b { color: red }</style><p>x</p>",
			want: "x\n",
		},
		{
			name: "hidden attributes",
			html: `<div hidden>x</div><div aria-hidden="true">y</div><span style="display:none">z</span>w`,
			want: "w\n",
		},
		{
			name: "navigation",
			html: `<nav><a href="/">Home</a></nav><p>Body</p>`,
			want: "Body\n",
		},
		{
			name: "hidden class",
			html: `<div class="x Details-content--hidden-not-important">gone</div>kept`,
			want: "kept\n",
		},
		{
			name: "class named hidden is visible",
			html: `<div class="hidden">shown</div>`,
			want: "shown\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertEscaping(t *testing.T) {
	cases := []struct {
		name string
		html string
		opts []Option
		want string
	}{
		{
			name: "emphasis characters",
			html: "<p>a*b_c\\d`e</p>",
			want: "a\\*b\\_c\\\\d\\`e\n",
		},
		{
			name: "heading marker",
			html: "<p># not heading</p>",
			want: "\\# not heading\n",
		},
		{
			name: "quote marker",
			html: "<p>> no quote</p>",
			want: "\\> no quote\n",
		},
		{
			name: "dash bullet",
			html: "<p>- item</p>",
			want: "\\- item\n",
		},
		{
			name: "plus bullet",
			html: "<p>+ x</p>",
			want: "\\+ x\n",
		},
		{
			name: "numbered",
			html: "<p>1. Item</p>",
			want: "1\\. Item\n",
		},
		{
			name: "numbered with parenthesis",
			html: "<p>2) x</p>",
			want: "2\\) x\n",
		},
		{
			name: "numbered escaping disabled",
			html: "<p>1. Item</p>",
			opts: []Option{WithNumberedListEscaping(false)},
			want: "1. Item\n",
		},
		{
			name: "special characters",
			html: "<p>&lt;special&gt; &amp; &quot;characters&quot;</p>",
			want: "<special> & \"characters\"\n",
		},
		{
			name: "entities kept",
			html: "<p>&lt;special&gt; &amp; &quot;characters&quot;</p>",
			opts: []Option{WithHTMLEntities(true)},
			want: "&lt;special&gt; &amp; &quot;characters&quot;\n",
		},
		{
			name: "unknown entity",
			html: "<p>&copy; 2024</p>",
			want: "&copy; 2024\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertWhitespace(t *testing.T) {
	cases := []struct {
		name string
		html string
		opts []Option
		want string
	}{
		{
			name: "compressed",
			html: "<p>a   \n  b</p>",
			want: "a b\n",
		},
		{
			name: "kept",
			html: "<p>a   \n  b</p>",
			opts: []Option{WithWhitespaceCompression(false)},
			want: "a      b\n",
		},
		{
			name: "soft break",
			html: "<p>aaaa bbbb cccc dddd eeee ffff</p>",
			opts: []Option{WithLineSplitting(true, 20, 30)},
			want: "aaaa bbbb cccc dddd eeee\nffff\n",
		},
		{
			name: "soft break waits for safe text",
			html: "<p>aaaa bbbb cccc dddd eeee - ffff</p>",
			opts: []Option{WithLineSplitting(true, 20, 30)},
			want: "aaaa bbbb cccc dddd eeee -\nffff\n",
		},
		{
			name: "splitting disabled",
			html: "<p>aaaa bbbb cccc dddd eeee ffff</p>",
			opts: []Option{WithLineSplitting(false, 20, 30)},
			want: "aaaa bbbb cccc dddd eeee ffff\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertWith(t, tc.html, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertComplexDocument(t *testing.T) {
	html := `
    <h1>Main Title</h1>
    <p><strong>Bold text</strong> and <em>italic text</em></p>
    <ul>
        <li>First item</li>
        <li>Second item</li>
    </ul>
    <ol>
        <li>Numbered one</li>
        <li>Numbered two</li>
    </ol>
    `
	want := "# Main Title\n\n**Bold text** and *italic text*\n\n- First item\n- Second item\n\n1. Numbered one\n2. Numbered two\n"
	got := Convert(html, WithLineSplitting(false, 0, 0))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestEntityTable(t *testing.T) {
	opts := DefaultOptions()

	conv := NewConverter("<p>&copy; 2024</p>", &opts)
	conv.AddEntity("&copy;", "©")
	conv.AddEntity("copy", "ignored")
	if diff := cmp.Diff("© 2024\n", conv.Convert()); diff != "" {
		t.Fatalf("AddEntity mismatch (-want +got):\n%s", diff)
	}

	conv = NewConverter("<p>a &amp; b &lt;</p>", &opts)
	conv.RemoveEntity("&amp;")
	if diff := cmp.Diff("a &amp; b <\n", conv.Convert()); diff != "" {
		t.Fatalf("RemoveEntity mismatch (-want +got):\n%s", diff)
	}

	conv = NewConverter("<p>a &amp; b &lt;</p>", &opts)
	conv.ClearEntities()
	if diff := cmp.Diff("a &amp; b &lt;\n", conv.Convert()); diff != "" {
		t.Fatalf("ClearEntities mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeEntitiesAreDecoded(t *testing.T) {
	got := Convert(`<a href="/q?a=1&amp;b=2">q</a>`)
	if diff := cmp.Diff("[q](/q?a=1&b=2)\n", got); diff != "" {
		t.Fatalf("markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestConverterOK(t *testing.T) {
	cases := []struct {
		html string
		want bool
	}{
		{html: "<p>Balanced</p>", want: true},
		{html: "<br><img src=\"a.png\"><hr>", want: true},
		{html: "<p>Unclosed paragraph", want: false},
		{html: "<ul><li>x", want: false},
		{html: "<blockquote>q", want: false},
		{html: "<table><tr><td>a", want: false},
		{html: "<pre>code", want: false},
		{html: "<div", want: false},
	}
	for _, tc := range cases {
		conv := NewConverter(tc.html, nil)
		if got := conv.OK(); got != tc.want {
			t.Fatalf("OK(%q)=%v want %v", tc.html, got, tc.want)
		}
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	conv := NewConverter("<p>a <b>b</b></p>", nil)
	first := conv.Convert()
	second := conv.Convert()
	if first != second {
		t.Fatalf("second Convert differs: %q vs %q", first, second)
	}
	if !conv.OK() {
		t.Fatalf("expected balanced input")
	}
}

func TestDefaultOptions(t *testing.T) {
	want := Options{
		UnorderedListMarker: '-',
		OrderedListMarker:   '.',
		IncludeTitle:        true,
		FormatTable:         true,
		SplitLines:          true,
		SoftBreak:           80,
		HardBreak:           100,
		CompressWhitespace:  true,
		EscapeNumberedList:  true,
	}
	if got := DefaultOptions(); got != want {
		t.Fatalf("DefaultOptions()=%+v want %+v", got, want)
	}
	zero := Options{HardBreak: 10, SoftBreak: 40}.normalized()
	if zero.UnorderedListMarker != '-' || zero.OrderedListMarker != '.' || zero.HardBreak != 40 {
		t.Fatalf("normalized()=%+v", zero)
	}
}
