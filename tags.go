package html2md

import "golang.org/x/net/html/atom"

type tagKind uint8

const (
	tagUnknown tagKind = iota
	tagIgnored
	tagAnchor
	tagBreak
	tagBlock
	tagHeading
	tagListItem
	tagOption
	tagOrderedList
	tagUnorderedList
	tagParagraph
	tagPre
	tagCode
	tagSpan
	tagTitle
	tagImage
	tagRule
	tagBold
	tagItalic
	tagUnderline
	tagStrike
	tagBlockquote
	tagTable
	tagRow
	tagHeaderCell
	tagDataCell
)

var tagKinds = map[atom.Atom]tagKind{
	atom.Head:     tagIgnored,
	atom.Meta:     tagIgnored,
	atom.Nav:      tagIgnored,
	atom.Noscript: tagIgnored,
	atom.Script:   tagIgnored,
	atom.Style:    tagIgnored,
	atom.Template: tagIgnored,

	atom.A:  tagAnchor,
	atom.Br: tagBreak,

	atom.Div:        tagBlock,
	atom.Section:    tagBlock,
	atom.Article:    tagBlock,
	atom.Main:       tagBlock,
	atom.Header:     tagBlock,
	atom.Footer:     tagBlock,
	atom.Aside:      tagBlock,
	atom.Figure:     tagBlock,
	atom.Figcaption: tagBlock,

	atom.H1: tagHeading,
	atom.H2: tagHeading,
	atom.H3: tagHeading,
	atom.H4: tagHeading,
	atom.H5: tagHeading,
	atom.H6: tagHeading,

	atom.Li:     tagListItem,
	atom.Option: tagOption,
	atom.Ol:     tagOrderedList,
	atom.Ul:     tagUnorderedList,
	atom.P:      tagParagraph,

	atom.Pre:  tagPre,
	atom.Code: tagCode,
	atom.Kbd:  tagCode,
	atom.Samp: tagCode,
	atom.Tt:   tagCode,

	atom.Span:  tagSpan,
	atom.Title: tagTitle,
	atom.Img:   tagImage,
	atom.Hr:    tagRule,

	atom.B:      tagBold,
	atom.Strong: tagBold,
	atom.Em:     tagItalic,
	atom.I:      tagItalic,
	atom.Cite:   tagItalic,
	atom.Dfn:    tagItalic,
	atom.U:      tagUnderline,
	atom.Ins:    tagUnderline,
	atom.Del:    tagStrike,
	atom.S:      tagStrike,
	atom.Strike: tagStrike,

	atom.Blockquote: tagBlockquote,
	atom.Table:      tagTable,
	atom.Tr:         tagRow,
	atom.Th:         tagHeaderCell,
	atom.Td:         tagDataCell,
}

// Void elements have no closing tag and never enter the ancestry list.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// lookupTag resolves a lower-case tag name.
func lookupTag(name string) (atom.Atom, tagKind) {
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return 0, tagUnknown
	}
	return a, tagKinds[a]
}

// headingLevel returns 1-6 for h1-h6.
func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// activeInPre reports whether a tag still acts inside <pre>.
func (k tagKind) activeInPre() bool {
	return k == tagPre || k == tagCode || k == tagBreak
}

// inlineContent reports whether a tag only wraps phrasing content, so an
// implicit paragraph or item close may look through it.
func (k tagKind) inlineContent() bool {
	switch k {
	case tagAnchor, tagBold, tagItalic, tagUnderline, tagStrike, tagSpan, tagCode:
		return true
	}
	return false
}
