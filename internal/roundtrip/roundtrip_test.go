package roundtrip

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFixturesSurviveRoundTrip(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "roundtrip", "*.md"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			res, err := Run(src)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if !res.Equal() {
				t.Fatalf("round trip changed the document (-want +got):\n%s\nmarkdown:\n%s", res.Diff(), res.Markdown)
			}
		})
	}
}

func TestResultDiff(t *testing.T) {
	same := Result{Want: "<p>a</p>", Got: "<p>a</p>"}
	if !same.Equal() || same.Diff() != "" {
		t.Fatalf("expected equal result")
	}
	changed := Result{Want: "<p>a</p>", Got: "<p>b</p>"}
	if changed.Equal() || changed.Diff() == "" {
		t.Fatalf("expected a difference")
	}
}

func TestRenderNormalisesWhitespace(t *testing.T) {
	got, err := Render([]byte("# A\n\nb\n"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<h1>A</h1><p>b</p>" {
		t.Fatalf("unexpected html: %q", got)
	}
}
