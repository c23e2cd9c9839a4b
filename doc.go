// Package html2md converts HTML to Markdown.
//
// The converter is a single-pass transducer: it walks the input character by
// character, keeps a small amount of context (open tags, list and blockquote
// nesting, table and code state) and writes Markdown as it goes. It never
// builds a DOM, so malformed or partial HTML still yields best-effort output.
//
// Core properties:
//   - One forward pass over the input; output is only ever appended or
//     shortened at its tail
//   - Hidden subtrees (script, style, nav, aria-hidden, display:none, ...)
//     are dropped
//   - Tables become GitHub-style pipe tables, optionally column-aligned
//   - A final line-oriented cleanup collapses blank lines and trims spacing
//
// Example:
//
//	md := html2md.Convert("<h1>Hello</h1><p>HTML in, <b>Markdown</b> out.</p>")
//	fmt.Print(md)
//
// For repeated conversions with custom options, or to inspect whether the
// input was balanced, use a Converter:
//
//	opts := html2md.DefaultOptions()
//	opts.UnorderedListMarker = '*'
//	conv := html2md.NewConverter(src, &opts)
//	md := conv.Convert()
//	if !conv.OK() {
//		log.Print("input had unclosed tags")
//	}
package html2md
