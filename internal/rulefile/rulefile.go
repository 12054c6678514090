// Package rulefile loads rewrite rules from YAML or JSON documents.
//
// Files only describe values; the loader turns pattern encodings into
// *engine.Pattern and leaves every other value as decoded, so the engine
// applies the same validation to file rules as to rules built in Go.
//
// YAML marks patterns with a tag:
//
//	- test: !regexp '/\/stylus\//'
//	  replacer: /sass/
//
// JSON, which has no tags, uses an object with a "$regexp" key:
//
//	[{"test": {"$regexp": "\\.styl", "flags": "i"}, "replacer": "$&?theme-red"}]
package rulefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format of a rules document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from a file extension, YAML by default
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Load reads the rules stored in path. selector, when not empty, is the
// dotted path of the rules inside a larger document (a gjson path for JSON).
func Load(path, selector string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules, err := Parse(data, DetectFormat(path), selector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Parse decodes a rules document of the given format
func Parse(data []byte, format Format, selector string) (interface{}, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data, selector)
	case FormatYAML:
		return ParseYAML(data, selector)
	default:
		return nil, fmt.Errorf("unsupported rules format %q", format)
	}
}
