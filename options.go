package html2md

// Options controls the Markdown dialect produced by a Converter.
//
// Start from DefaultOptions and override what you need; the zero value turns
// off every boolean feature. Zero markers and non-positive break columns fall
// back to their defaults.
type Options struct {
	// UnorderedListMarker is the bullet written for <ul> items.
	UnorderedListMarker byte
	// OrderedListMarker follows the item number of <ol> items ('.' or ')').
	OrderedListMarker byte
	// IncludeTitle turns <title> into a setext level-1 heading. When false
	// the title text is dropped.
	IncludeTitle bool
	// FormatTable pads table columns once a table is closed.
	FormatTable bool
	// SplitLines wraps long text lines at SoftBreak and HardBreak.
	SplitLines bool
	SoftBreak  int
	HardBreak  int
	// KeepHTMLEntities leaves &name; entities untouched.
	KeepHTMLEntities bool
	// CompressWhitespace collapses runs of whitespace in text to one space.
	CompressWhitespace bool
	// EscapeNumberedList escapes "1." at the start of a line so text is not
	// read back as an ordered list.
	EscapeNumberedList bool
	// ForceLeftTrim strips leading whitespace from every line outside code
	// blocks, including list nesting indentation.
	ForceLeftTrim bool
}

const (
	defaultUnorderedMarker = '-'
	defaultOrderedMarker   = '.'
	defaultSoftBreak       = 80
	defaultHardBreak       = 100
)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		UnorderedListMarker: defaultUnorderedMarker,
		OrderedListMarker:   defaultOrderedMarker,
		IncludeTitle:        true,
		FormatTable:         true,
		SplitLines:          true,
		SoftBreak:           defaultSoftBreak,
		HardBreak:           defaultHardBreak,
		CompressWhitespace:  true,
		EscapeNumberedList:  true,
	}
}

func (o Options) normalized() Options {
	if o.UnorderedListMarker == 0 {
		o.UnorderedListMarker = defaultUnorderedMarker
	}
	if o.OrderedListMarker == 0 {
		o.OrderedListMarker = defaultOrderedMarker
	}
	if o.SoftBreak <= 0 {
		o.SoftBreak = defaultSoftBreak
	}
	if o.HardBreak <= 0 {
		o.HardBreak = defaultHardBreak
	}
	if o.HardBreak < o.SoftBreak {
		o.HardBreak = o.SoftBreak
	}
	return o
}

// Option configures a conversion started through Convert, ConvertStream or
// ConvertURL.
type Option func(*Options)

// WithUnorderedListMarker sets the bullet for unordered list items.
func WithUnorderedListMarker(marker byte) Option {
	return func(o *Options) {
		o.UnorderedListMarker = marker
	}
}

// WithOrderedListMarker sets the character written after ordered item numbers.
func WithOrderedListMarker(marker byte) Option {
	return func(o *Options) {
		o.OrderedListMarker = marker
	}
}

// WithTitle enables or disables the <title> heading.
func WithTitle(enabled bool) Option {
	return func(o *Options) {
		o.IncludeTitle = enabled
	}
}

// WithTableFormatting enables or disables column padding of tables.
func WithTableFormatting(enabled bool) Option {
	return func(o *Options) {
		o.FormatTable = enabled
	}
}

// WithLineSplitting configures line wrapping. Non-positive columns keep the
// current values.
func WithLineSplitting(enabled bool, softBreak, hardBreak int) Option {
	return func(o *Options) {
		o.SplitLines = enabled
		if softBreak > 0 {
			o.SoftBreak = softBreak
		}
		if hardBreak > 0 {
			o.HardBreak = hardBreak
		}
	}
}

// WithHTMLEntities keeps entities verbatim when keep is true.
func WithHTMLEntities(keep bool) Option {
	return func(o *Options) {
		o.KeepHTMLEntities = keep
	}
}

// WithWhitespaceCompression enables or disables whitespace collapsing.
func WithWhitespaceCompression(enabled bool) Option {
	return func(o *Options) {
		o.CompressWhitespace = enabled
	}
}

// WithNumberedListEscaping enables or disables escaping of "N." line starts.
func WithNumberedListEscaping(enabled bool) Option {
	return func(o *Options) {
		o.EscapeNumberedList = enabled
	}
}

// WithForcedLeftTrim enables or disables left trimming of every line.
func WithForcedLeftTrim(enabled bool) Option {
	return func(o *Options) {
		o.ForceLeftTrim = enabled
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
