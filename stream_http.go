package html2md

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// maxDocumentBytes caps the size of a fetched document.
const maxDocumentBytes = 32 << 20

// URLRequest configures ConvertURL.
type URLRequest struct {
	URL      string
	Client   *http.Client
	Writer   io.Writer
	Options  []Option
	Entities map[string]string
}

// ConvertURL fetches an HTML document over HTTP(S) and writes its Markdown
// conversion to req.Writer.
func ConvertURL(ctx context.Context, req URLRequest) (bool, error) {
	if req.URL == "" {
		return false, fmt.Errorf("convert url: URL is required")
	}
	if req.Writer == nil {
		return false, fmt.Errorf("convert url: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return false, fmt.Errorf("convert url: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return false, fmt.Errorf("convert url: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	resp, err := client.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("convert url: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("convert url: status %s", resp.Status)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !isHTMLContentType(ct) {
		return false, fmt.Errorf("convert url: unexpected content type %q", ct)
	}
	ok, err := ConvertStream(StreamRequest{
		Reader:   io.LimitReader(resp.Body, maxDocumentBytes),
		Writer:   req.Writer,
		Options:  req.Options,
		Entities: req.Entities,
		Charset:  contentCharset(ct),
	})
	if err != nil {
		return false, fmt.Errorf("convert url: %w", err)
	}
	return ok, nil
}

func isHTMLContentType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml" ||
		strings.HasPrefix(mediaType, "text/")
}
