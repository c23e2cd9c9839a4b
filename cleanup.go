package html2md

import "strings"

var artifacts = strings.NewReplacer(
	" , ", ", ",
	"[ ![", "[![",
	" </u>", "</u>",
)

// tidy is the line-oriented pass over the finished buffer. Lines inside
// fenced code are left untouched.
func (c *Converter) tidy(md string) string {
	type line struct {
		text string
		code bool
	}
	raw := strings.Split(md, "\n")
	lines := make([]line, 0, len(raw))
	fence := ""
	for _, text := range raw {
		body := stripContainers(text)
		if fence != "" {
			if closesFence(body, fence) {
				fence = ""
				lines = append(lines, line{text: c.trimLine(text)})
				continue
			}
			lines = append(lines, line{text: strings.TrimSuffix(text, "\r"), code: true})
			continue
		}
		if f := openingFence(body); f != "" {
			fence = f
			lines = append(lines, line{text: c.trimLine(text)})
			continue
		}
		lines = append(lines, line{text: artifacts.Replace(c.trimLine(text))})
	}

	kept := make([]line, 0, len(lines))
	for i, l := range lines {
		if l.code {
			kept = append(kept, l)
			continue
		}
		if l.text == "" {
			if len(kept) == 0 || (!kept[len(kept)-1].code && kept[len(kept)-1].text == "") {
				continue
			}
			kept = append(kept, l)
			continue
		}
		if isQuoteMarkers(l.text) {
			if len(kept) == 0 {
				continue
			}
			prev := kept[len(kept)-1]
			if prev.code || !isQuoteLine(prev.text) || isQuoteMarkers(prev.text) {
				continue
			}
			if i+1 >= len(lines) || !isQuoteLine(lines[i+1].text) {
				continue
			}
		}
		kept = append(kept, l)
	}
	for len(kept) > 0 && !kept[len(kept)-1].code && kept[len(kept)-1].text == "" {
		kept = kept[:len(kept)-1]
	}
	if len(kept) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(md))
	for i, l := range kept {
		text := l.text
		if !l.code && strings.HasSuffix(text, "  ") {
			if i+1 >= len(kept) || kept[i+1].text == "" {
				text = strings.TrimRight(text, " ")
			}
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

// trimLine right-trims a line, keeping a two-space hard break, and
// left-trims it when ForceLeftTrim is set.
func (c *Converter) trimLine(text string) string {
	trimmed := strings.TrimRight(text, " \t\r")
	if c.opts.ForceLeftTrim {
		trimmed = strings.TrimLeft(trimmed, " \t")
	}
	if trimmed != "" && !isQuoteMarkers(trimmed) && strings.HasSuffix(text, "  ") {
		trimmed += "  "
	}
	return trimmed
}

// stripContainers removes list indentation and quote markers from the
// start of a line.
func stripContainers(text string) string {
	return strings.TrimLeft(text, " \t>")
}

func openingFence(body string) string {
	n := 0
	for n < len(body) && body[n] == '`' {
		n++
	}
	if n < 3 {
		return ""
	}
	return body[:n]
}

func closesFence(body, fence string) bool {
	body = strings.TrimRight(body, " \t\r")
	return len(body) >= len(fence) && strings.Trim(body, "`") == ""
}

func isQuoteLine(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " "), ">")
}

// isQuoteMarkers reports a line made of quote markers only.
func isQuoteMarkers(text string) bool {
	t := strings.TrimSpace(text)
	return t != "" && strings.Trim(t, "> ") == ""
}
