package html2md

import (
	"strings"
	"testing"
)

func TestConvertAllocations(t *testing.T) {
	src := string(mustReadSample(t, "testdata/article.html"))
	allocs := testing.AllocsPerRun(50, func() {
		_ = Convert(src)
	})
	if allocs > 5000 {
		t.Fatalf("too many allocations per Convert: got %.2f", allocs)
	}
}

func TestConvertArticle(t *testing.T) {
	src := string(mustReadSample(t, "testdata/article.html"))
	conv := NewConverter(src, nil)
	md := conv.Convert()
	if !conv.OK() {
		t.Fatalf("expected the sample article to be balanced")
	}
	for _, want := range []string{
		"Streaming HTML to Markdown\n==========================\n",
		"# Streaming HTML to Markdown\n",
		"## Why single pass?\n",
		"1. Predictable memory use",
		"   - Unclosed paragraphs are closed by the next block.\n",
		"> Simplicity is prerequisite for reliability.\n",
		"```go\nmd := html2md.Convert(page)\n",
		"\tpanic(\"unreachable\")\n",
		"| :--",
		"[![Pipeline diagram](/img/pipeline-small.png \"Pipeline\")](/img/pipeline.png)\n",
		"1. not a list, \\*not emphasis\\*",
		"[Write to us](mailto:ops@example.com)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected output to contain %q\n%s", want, md)
		}
	}
	for _, unwanted := range []string{"analytics", "font-family", "Home", "Decorative", "Tracking pixel"} {
		if strings.Contains(md, unwanted) {
			t.Fatalf("expected %q to be dropped\n%s", unwanted, md)
		}
	}
	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Fatalf("expected exactly one trailing newline")
	}
}
