package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"pkt.systems/html2md"
)

// fileConfig mirrors html2md.Options in YAML. Pointer fields distinguish
// "unset" from false.
type fileConfig struct {
	UnorderedListMarker string            `yaml:"unordered_list_marker"`
	OrderedListMarker   string            `yaml:"ordered_list_marker"`
	IncludeTitle        *bool             `yaml:"include_title"`
	FormatTable         *bool             `yaml:"format_table"`
	SplitLines          *bool             `yaml:"split_lines"`
	SoftBreak           int               `yaml:"soft_break"`
	HardBreak           int               `yaml:"hard_break"`
	KeepHTMLEntities    *bool             `yaml:"keep_html_entities"`
	CompressWhitespace  *bool             `yaml:"compress_whitespace"`
	EscapeNumberedList  *bool             `yaml:"escape_numbered_list"`
	ForceLeftTrim       *bool             `yaml:"force_left_trim"`
	Entities            map[string]string `yaml:"entities"`
}

func loadConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (fileConfig, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (fc fileConfig) options() ([]html2md.Option, error) {
	var opts []html2md.Option
	if fc.UnorderedListMarker != "" {
		m, err := markerByte(fc.UnorderedListMarker)
		if err != nil {
			return nil, fmt.Errorf("unordered_list_marker: %w", err)
		}
		opts = append(opts, html2md.WithUnorderedListMarker(m))
	}
	if fc.OrderedListMarker != "" {
		m, err := markerByte(fc.OrderedListMarker)
		if err != nil {
			return nil, fmt.Errorf("ordered_list_marker: %w", err)
		}
		opts = append(opts, html2md.WithOrderedListMarker(m))
	}
	if fc.SoftBreak < 0 || fc.HardBreak < 0 {
		return nil, fmt.Errorf("break columns must not be negative")
	}
	opts = append(opts, func(o *html2md.Options) {
		setBool(&o.IncludeTitle, fc.IncludeTitle)
		setBool(&o.FormatTable, fc.FormatTable)
		setBool(&o.SplitLines, fc.SplitLines)
		setBool(&o.KeepHTMLEntities, fc.KeepHTMLEntities)
		setBool(&o.CompressWhitespace, fc.CompressWhitespace)
		setBool(&o.EscapeNumberedList, fc.EscapeNumberedList)
		setBool(&o.ForceLeftTrim, fc.ForceLeftTrim)
		if fc.SoftBreak > 0 {
			o.SoftBreak = fc.SoftBreak
		}
		if fc.HardBreak > 0 {
			o.HardBreak = fc.HardBreak
		}
	})
	return opts, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
