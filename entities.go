package html2md

import "strings"

// maxEntityLen bounds the look-ahead for a terminating ';'.
const maxEntityLen = 32

func defaultEntities() map[string]string {
	return map[string]string{
		"&amp;":  "&",
		"&nbsp;": " ",
		"&rarr;": "→",
		"&quot;": `"`,
		"&lt;":   "<",
		"&gt;":   ">",
		"&apos;": "'",
		"&#39;":  "'",
	}
}

// AddEntity registers or replaces a substitution, e.g. AddEntity("&copy;", "©").
// It has no effect once Convert has run.
func (c *Converter) AddEntity(entity, replacement string) {
	if !validEntity(entity) {
		return
	}
	c.entities[entity] = replacement
}

// RemoveEntity drops a substitution so the entity is kept verbatim.
func (c *Converter) RemoveEntity(entity string) {
	delete(c.entities, entity)
}

// ClearEntities drops every substitution.
func (c *Converter) ClearEntities() {
	clear(c.entities)
}

func validEntity(entity string) bool {
	return len(entity) >= 3 && len(entity) <= maxEntityLen &&
		entity[0] == '&' && entity[len(entity)-1] == ';'
}

// matchEntity looks for a known entity at s[0]. It returns the replacement
// and the number of source bytes consumed.
func (c *Converter) matchEntity(s string) (string, int, bool) {
	if c.opts.KeepHTMLEntities || len(s) < 3 || s[0] != '&' || len(c.entities) == 0 {
		return "", 0, false
	}
	limit := min(len(s), maxEntityLen)
	for i := 1; i < limit; i++ {
		switch s[i] {
		case ';':
			repl, ok := c.entities[s[:i+1]]
			if !ok {
				return "", 0, false
			}
			return repl, i + 1, true
		case ' ', '\t', '\n', '\r', '<', '&':
			return "", 0, false
		}
	}
	return "", 0, false
}

// decodeEntities substitutes known entities in an attribute value.
func (c *Converter) decodeEntities(s string) string {
	if c.opts.KeepHTMLEntities || strings.IndexByte(s, '&') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '&' {
			if repl, n, ok := c.matchEntity(s[i:]); ok {
				b.WriteString(repl)
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
