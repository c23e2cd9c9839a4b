package html2md

import (
	"golang.org/x/net/html/atom"

	"pkt.systems/html2md/table"
)

// Converter turns one HTML document into Markdown in a single forward pass.
//
// A Converter is not safe for concurrent use. Convert may be called more
// than once and returns the same result each time.
type Converter struct {
	opts        Options
	html        string
	entities    map[string]string
	formatTable func(string) string

	out outputBuffer

	// Scan cursor.
	pos         int
	offsetLt    int
	inTag       bool
	closing     bool
	selfClosing bool
	attrQuote   byte
	tagBuf      []byte
	rawTextEnd  string

	currentTag string
	prevTag    string
	ancestry   []ancestor
	ignored    bool

	// Block containers in nesting order; prefix is their concatenation.
	containers    []container
	prefix        string
	listDepth     int
	quoteDepth    int
	itemStart     int
	lineTextStart int

	tableDepth  int
	tableStart  int
	headerCells []string
	rowCells    int
	separated   bool

	inPre        bool
	preDepth     int
	pendingFence bool
	fence        string
	inCode       bool
	codeDepth    int
	codeStart    int

	links         []link
	emphasis      [4]int
	openRunStart  int
	openRunEnd    int
	autoBlankAt   int
	inParagraph   bool
	inHeading     bool
	inTitle       bool
	contentLength int

	converted bool
	result    string
}

type ancestor struct {
	atom   atom.Atom
	kind   tagKind
	hidden bool
}

type containerKind uint8

const (
	containerQuote containerKind = iota
	containerList
)

type container struct {
	kind    containerKind
	prefix  string
	ordered bool
	index   int
}

type link struct {
	href  string
	title string
	start int
}

// NewConverter prepares a conversion of html. A nil opts uses DefaultOptions.
func NewConverter(html string, opts *Options) *Converter {
	o := DefaultOptions()
	if opts != nil {
		o = opts.normalized()
	}
	return &Converter{
		opts:         o,
		html:         html,
		entities:     defaultEntities(),
		formatTable:  table.Format,
		openRunStart: -1,
		openRunEnd:   -1,
		autoBlankAt:  -1,
	}
}

// SetTableFormatter replaces the function used to align tables when
// Options.FormatTable is set. A nil formatter leaves tables as emitted.
func (c *Converter) SetTableFormatter(format func(string) string) {
	c.formatTable = format
}

// Convert runs the conversion and returns the Markdown.
func (c *Converter) Convert() string {
	if c.converted {
		return c.result
	}
	c.converted = true
	c.out.buf = make([]byte, 0, len(c.html)+len(c.html)/4)
	for c.pos < len(c.html) {
		c.step()
	}
	c.result = c.tidy(c.out.String())
	return c.result
}

// OK reports whether the input was balanced: no tag, list, blockquote,
// table, code block or paragraph was left open. It converts first if
// Convert has not run yet.
func (c *Converter) OK() bool {
	c.Convert()
	return !c.inTag &&
		len(c.ancestry) == 0 &&
		c.listDepth == 0 &&
		c.quoteDepth == 0 &&
		c.tableDepth == 0 &&
		!c.inPre &&
		!c.inCode &&
		!c.inParagraph
}

// Convert converts html with DefaultOptions adjusted by opts.
func Convert(html string, opts ...Option) string {
	o := buildOptions(opts)
	return NewConverter(html, &o).Convert()
}
