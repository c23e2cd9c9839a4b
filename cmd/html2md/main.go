package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/html2md"
	"pkt.systems/version"
)

const defaultOutput = "Converted.md"

func init() {
	version.SetDefaultModule("pkt.systems/html2md")
}

type cliFlags struct {
	input           string
	output          string
	print           bool
	showVersion     bool
	yes             bool
	configPath      string
	unordered       string
	ordered         string
	noTitle         bool
	noFormatTable   bool
	noSplitLines    bool
	softBreak       int
	hardBreak       int
	keepEntities    bool
	noCompress      bool
	noEscapeNumbers bool
	forceLeftTrim   bool
	entities        []string
}

func main() {
	var f cliFlags
	flags := newFlagSet(&f)
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: html2md [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are files or http(s) URLs; -i also accepts literal HTML.")
		fmt.Fprintln(os.Stderr, "If no input is provided, HTML is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if f.showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}

	toStdout := f.print || f.output == "-"
	opts, entities, err := buildOptions(flags, f, toStdout && isTerminal(os.Stdout))
	if err != nil {
		fmt.Fprintf(os.Stderr, "options: %v\n", err)
		os.Exit(2)
	}

	var writer io.Writer = os.Stdout
	if !toStdout {
		proceed, err := confirmOverwrite(f.output, f.yes, os.Stdin, os.Stderr, isTerminal(os.Stdin))
		if err != nil {
			fmt.Fprintf(os.Stderr, "open output: %v\n", err)
			os.Exit(1)
		}
		if !proceed {
			fmt.Fprintln(os.Stderr, "aborted")
			return
		}
		out, closeOut, err := resolveOutput(f.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = closeOut.Close() }()
		writer = out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, err := convert(ctx, f.input, flags.Args(), writer, opts, entities)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "warning: input HTML has unclosed tags; output may be incomplete")
	}
	if !toStdout {
		fmt.Fprintf(os.Stderr, "wrote %s\n", f.output)
	}
}

func newFlagSet(f *cliFlags) *pflag.FlagSet {
	flags := pflag.NewFlagSet("html2md", pflag.ContinueOnError)
	flags.StringVarP(&f.input, "input", "i", "", "HTML file, http(s) URL or literal HTML")
	flags.StringVarP(&f.output, "output", "o", defaultOutput, "Output file (- for stdout)")
	flags.BoolVarP(&f.print, "print", "p", false, "Print the Markdown to stdout instead of writing a file")
	flags.BoolVarP(&f.showVersion, "version", "v", false, "Print version and exit")
	flags.BoolVarP(&f.yes, "yes", "y", false, "Overwrite an existing output file without asking")
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML file with conversion options")
	flags.StringVar(&f.unordered, "unordered-marker", "-", "Bullet for unordered lists")
	flags.StringVar(&f.ordered, "ordered-marker", ".", "Character after ordered list numbers")
	flags.BoolVar(&f.noTitle, "no-title", false, "Drop the <title> heading")
	flags.BoolVar(&f.noFormatTable, "no-format-table", false, "Do not align table columns")
	flags.BoolVar(&f.noSplitLines, "no-split-lines", false, "Do not wrap long lines")
	flags.IntVar(&f.softBreak, "soft-break", 0, "Soft wrap column (0 uses terminal width when printing, else 80)")
	flags.IntVar(&f.hardBreak, "hard-break", 0, "Hard wrap column (0 uses soft break + 20)")
	flags.BoolVar(&f.keepEntities, "keep-entities", false, "Keep HTML entities verbatim")
	flags.BoolVar(&f.noCompress, "no-compress-whitespace", false, "Keep whitespace runs in text")
	flags.BoolVar(&f.noEscapeNumbers, "no-escape-numbered-list", false, "Do not escape \"1.\" at line starts")
	flags.BoolVar(&f.forceLeftTrim, "force-left-trim", false, "Left-trim every line outside code blocks")
	flags.StringArrayVar(&f.entities, "entity", nil, "Extra entity substitution as NAME=VALUE, e.g. '&copy;=©'")
	return flags
}

// convert dispatches on the input kind: a single URL is fetched, everything
// else is read as a stream.
func convert(ctx context.Context, input string, args []string, w io.Writer, opts []html2md.Option, entities map[string]string) (bool, error) {
	if input != "" {
		if isHTTPURL(input) {
			return html2md.ConvertURL(ctx, html2md.URLRequest{
				URL:      input,
				Writer:   w,
				Options:  opts,
				Entities: entities,
			})
		}
		reader, closer, err := openInput(input)
		if err != nil {
			return false, err
		}
		if closer != nil {
			defer func() { _ = closer.Close() }()
		}
		return html2md.ConvertStream(html2md.StreamRequest{Reader: reader, Writer: w, Options: opts, Entities: entities})
	}
	if len(args) == 1 && isHTTPURL(args[0]) {
		return html2md.ConvertURL(ctx, html2md.URLRequest{
			URL:      args[0],
			Writer:   w,
			Options:  opts,
			Entities: entities,
		})
	}
	reader, closer, err := openInputs(args)
	if err != nil {
		return false, err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	return html2md.ConvertStream(html2md.StreamRequest{Reader: reader, Writer: w, Options: opts, Entities: entities})
}

// buildOptions layers defaults, the YAML config file and explicitly set
// flags, in that order.
func buildOptions(flags *pflag.FlagSet, f cliFlags, terminal bool) ([]html2md.Option, map[string]string, error) {
	var opts []html2md.Option
	entities := map[string]string{}
	if f.configPath != "" {
		cfg, err := loadConfig(normalizePath(f.configPath))
		if err != nil {
			return nil, nil, err
		}
		cfgOpts, err := cfg.options()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cfgOpts...)
		for k, v := range cfg.Entities {
			entities[k] = v
		}
	}
	if flags.Changed("unordered-marker") {
		m, err := markerByte(f.unordered)
		if err != nil {
			return nil, nil, fmt.Errorf("--unordered-marker: %w", err)
		}
		opts = append(opts, html2md.WithUnorderedListMarker(m))
	}
	if flags.Changed("ordered-marker") {
		m, err := markerByte(f.ordered)
		if err != nil {
			return nil, nil, fmt.Errorf("--ordered-marker: %w", err)
		}
		opts = append(opts, html2md.WithOrderedListMarker(m))
	}
	if f.noTitle {
		opts = append(opts, html2md.WithTitle(false))
	}
	if f.noFormatTable {
		opts = append(opts, html2md.WithTableFormatting(false))
	}
	if f.keepEntities {
		opts = append(opts, html2md.WithHTMLEntities(true))
	}
	if f.noCompress {
		opts = append(opts, html2md.WithWhitespaceCompression(false))
	}
	if f.noEscapeNumbers {
		opts = append(opts, html2md.WithNumberedListEscaping(false))
	}
	if f.forceLeftTrim {
		opts = append(opts, html2md.WithForcedLeftTrim(true))
	}
	soft, hard := resolveBreaks(f.softBreak, f.hardBreak, terminal)
	opts = append(opts, func(o *html2md.Options) {
		if f.noSplitLines {
			o.SplitLines = false
		}
		if soft > 0 {
			o.SoftBreak = soft
		}
		if hard > 0 {
			o.HardBreak = hard
		}
	})
	for _, raw := range f.entities {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("--entity %q: expected NAME=VALUE", raw)
		}
		entities[name] = value
	}
	return opts, entities, nil
}

// resolveBreaks picks wrap columns. A zero soft break follows the terminal
// width when printing to one and is otherwise left to the config or default.
func resolveBreaks(soft, hard int, terminal bool) (int, int) {
	if soft <= 0 && terminal {
		soft = terminalWidth(0)
	}
	if hard <= 0 && soft > 0 {
		hard = soft + 20
	}
	return soft, hard
}

func markerByte(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("expected a single ASCII character, got %q", s)
	}
	return s[0], nil
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// confirmOverwrite decides whether path may be written. An existing file is
// only replaced with --yes or after an interactive "y".
func confirmOverwrite(path string, yes bool, in io.Reader, prompt io.Writer, interactive bool) (bool, error) {
	info, err := os.Stat(normalizePath(path))
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	if yes {
		return true, nil
	}
	if !interactive {
		return false, fmt.Errorf("%s exists; use --yes to overwrite", path)
	}
	fmt.Fprintf(prompt, "%s already exists. Overwrite? [y/n] ", path)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

// openInputs concatenates file and file:// arguments; with no arguments it
// reads stdin.
func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil, fmt.Errorf("empty input argument")
		}
		if isHTTPURL(raw) {
			return nil, nil, fmt.Errorf("%s: URLs cannot be combined with other inputs", raw)
		}
		path := filePath(raw)
		sources = append(sources, inputSource{open: func() (io.Reader, io.Closer, error) {
			return openFile(path)
		}})
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

// openInput resolves the -i value: an existing file (or file:// URL), else
// the value itself is the HTML.
func openInput(raw string) (io.Reader, io.Closer, error) {
	path := filePath(strings.TrimSpace(raw))
	if info, err := os.Stat(normalizePath(path)); err == nil && !info.IsDir() {
		return openFile(path)
	}
	if strings.HasPrefix(strings.ToLower(raw), "file://") {
		return nil, nil, fmt.Errorf("%s: no such file", raw)
	}
	return strings.NewReader(raw), nil, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func filePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return raw
	}
	path := u.Path
	if path == "" {
		path = u.Host
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return path
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
