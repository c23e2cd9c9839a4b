package html2md

import "strings"

// extractAttribute returns the quoted value of name in the raw tag text.
//
// The name is matched case-insensitively at a word boundary, then the next
// '=' and the first quote after it are located; the value runs to the next
// occurrence of that same quote. Any miss yields "".
func extractAttribute(tag, name string) string {
	lower := strings.ToLower(tag)
	name = strings.ToLower(name)
	from := 0
	for {
		idx := strings.Index(lower[from:], name)
		if idx < 0 {
			return ""
		}
		idx += from
		from = idx + len(name)
		if idx > 0 && isAttrNameByte(lower[idx-1]) {
			continue
		}
		if from < len(lower) && isAttrNameByte(lower[from]) {
			continue
		}
		rest := tag[from:]
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return ""
		}
		rest = rest[eq+1:]
		q := strings.IndexAny(rest, `"'`)
		if q < 0 {
			return ""
		}
		quote := rest[q]
		rest = rest[q+1:]
		end := strings.IndexByte(rest, quote)
		if end < 0 {
			return ""
		}
		return rest[:end]
	}
}

func isAttrNameByte(c byte) bool {
	return c == '-' || c == '_' || c == ':' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// attribute extracts name from the tag currently being dispatched and
// substitutes entities in the value.
func (c *Converter) attribute(name string) string {
	return c.decodeEntities(extractAttribute(c.rawTag(), name))
}

// isHidden reports whether the raw opening tag marks its subtree invisible.
func isHidden(tag string) bool {
	lower := strings.ToLower(tag)
	if v := extractAttribute(tag, "aria-hidden"); strings.EqualFold(v, "true") {
		return true
	}
	if strings.Contains(lower, ` aria="hidden"`) {
		return true
	}
	if hasBareAttribute(lower, "hidden") {
		return true
	}
	style := strings.ToLower(extractAttribute(tag, "style"))
	if style != "" {
		compact := strings.ReplaceAll(style, " ", "")
		for _, marker := range []string{"display:none", "visibility:hidden", "opacity:0;"} {
			if strings.Contains(compact+";", marker) {
				return true
			}
		}
	}
	return strings.Contains(extractAttribute(tag, "class"), "Details-content--hidden-not-important")
}

// hasBareAttribute finds a valueless boolean attribute such as <div hidden>.
// Quoted values are skipped so class="x hidden" does not count.
func hasBareAttribute(lower, name string) bool {
	var b strings.Builder
	var quote byte
	for i := 0; i < len(lower); i++ {
		ch := lower[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			continue
		case ch == '"' || ch == '\'':
			quote = ch
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(ch)
	}
	fields := strings.Fields(b.String())
	for i, f := range fields {
		if i == 0 {
			continue
		}
		if strings.TrimRight(f, "/=") == name {
			return true
		}
	}
	return false
}
