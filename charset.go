package html2md

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"regexp"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// metaSniffLen is how far into a document a <meta> charset declaration is
// looked for.
const metaSniffLen = 1024

var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?([^"'\s/>;]+)`)

// contentCharset returns the charset parameter of a Content-Type value.
func contentCharset(contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// metaCharset finds a charset declared by <meta charset> or a
// <meta http-equiv="Content-Type"> tag near the start of src.
func metaCharset(src []byte) string {
	if len(src) > metaSniffLen {
		src = src[:metaSniffLen]
	}
	m := metaCharsetRe.FindSubmatch(src)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// toUTF8 decodes src from the named charset. Empty, unknown and UTF-8
// labels return src unchanged.
func toUTF8(src []byte, label string) ([]byte, error) {
	if label == "" || bytes.HasPrefix(src, utf8BOM) {
		return src, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return src, nil
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return src, nil
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(src), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return out, nil
}
