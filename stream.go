package html2md

import (
	"fmt"
	"io"
)

// StreamRequest configures ConvertStream.
type StreamRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
	// Entities are added to the default entity table before converting.
	Entities map[string]string
	// Charset names the input encoding. When empty it is taken from a
	// <meta> declaration; UTF-8 is assumed otherwise.
	Charset string
}

// ConvertStream reads an HTML document from req.Reader, converts it and
// writes the Markdown to req.Writer. The returned flag is Converter.OK.
func ConvertStream(req StreamRequest) (bool, error) {
	if req.Reader == nil {
		return false, fmt.Errorf("convert stream: reader is nil")
	}
	if req.Writer == nil {
		return false, fmt.Errorf("convert stream: writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return false, fmt.Errorf("convert stream: read: %w", err)
	}
	label := req.Charset
	if label == "" {
		label = metaCharset(src)
	}
	if src, err = toUTF8(src, label); err != nil {
		return false, fmt.Errorf("convert stream: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return false, fmt.Errorf("convert stream: %w", err)
	}
	opts := buildOptions(req.Options)
	conv := NewConverter(prepareInput(src), &opts)
	for entity, repl := range req.Entities {
		conv.AddEntity(entity, repl)
	}
	md := conv.Convert()
	if _, err := io.WriteString(req.Writer, md); err != nil {
		return false, fmt.Errorf("convert stream: write: %w", err)
	}
	return conv.OK(), nil
}
