package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"pkt.systems/html2md/internal/roundtrip"
)

func main() {
	root := pflag.StringP("dir", "d", "testdata/roundtrip", "Directory of Markdown fixtures")
	write := pflag.BoolP("write", "w", false, "Write the converted Markdown next to each fixture as .golden")
	verbose := pflag.BoolP("verbose", "v", false, "Print a diff for every failing fixture")
	pflag.Parse()

	var paths []string
	err := filepath.WalkDir(*root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", *root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", *root)
	}

	failed := 0
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		res, err := roundtrip.Run(src)
		if err != nil {
			fatalf("%s: %v", path, err)
		}
		if *write {
			golden := goldenPath(path)
			if err := os.WriteFile(golden, []byte(res.Markdown), 0o644); err != nil {
				fatalf("write %s: %v", golden, err)
			}
		}
		if res.Equal() {
			fmt.Fprintf(os.Stdout, "ok   %s\n", path)
			continue
		}
		failed++
		fmt.Fprintf(os.Stdout, "FAIL %s\n", path)
		if *verbose {
			fmt.Fprintln(os.Stdout, res.Diff())
		}
	}
	if failed > 0 {
		fatalf("%d of %d fixtures did not survive the round trip", failed, len(paths))
	}
}

func goldenPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".golden"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
