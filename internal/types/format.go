package types

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Format represents a spectral file format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatCSV represents two-column comma separated exports.
	FormatCSV
	// FormatText represents generic delimited text exports.
	FormatText
	// FormatSPA represents the fixed-layout binary SPA format.
	FormatSPA
	// FormatJCAMP represents JCAMP-DX peak tables (not implemented).
	FormatJCAMP
	// FormatJSON represents generic structured JSON data (not implemented).
	FormatJSON
)

var formatNames = [...]string{
	FormatUnknown: "Unknown",
	FormatCSV:     "CSV",
	FormatText:    "Text",
	FormatSPA:     "SPA",
	FormatJCAMP:   "JCAMP",
	FormatJSON:    "JSON",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return formatNames[FormatUnknown]
	}
	return formatNames[f]
}

// Formats returns every known format in dispatch order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJCAMP, FormatSPA, FormatJSON, FormatText}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatCSV:
		return []string{".csv"}
	case FormatText:
		return []string{".txt", ".text"}
	case FormatSPA:
		return []string{".spa"}
	case FormatJCAMP:
		return []string{".jdx", ".dx", ".jcamp"}
	case FormatJSON:
		return []string{".json"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// tokenRules lists the substrings matched against a normalized token, in
// priority order. A token selects the first rule it contains.
var tokenRules = []struct {
	substr string
	format Format
}{
	{"csv", FormatCSV},
	{"jcamp", FormatJCAMP},
	{"spa", FormatSPA},
	{"json", FormatJSON},
	{"text", FormatText},
	{"txt", FormatText},
}

// ParseFormat maps a caller supplied format token to a Format.
//
// The token is lowercased and matched by substring containment, not equality:
// "mycsv" and ".CSV" both select FormatCSV. Rules are tried in the order
// csv, jcamp, spa, json, text (with "txt" as an alias for text), so the first
// contained substring wins. Tokens matching nothing fail with an
// UnsupportedFormat error. ParseFormat performs no I/O.
func ParseFormat(token string) (Format, error) {
	norm := strings.ToLower(strings.TrimSpace(token))
	if norm != "" {
		for _, rule := range tokenRules {
			if strings.Contains(norm, rule.substr) {
				return rule.format, nil
			}
		}
	}

	return FormatUnknown, &Error{
		Kind:   KindUnsupportedFormat,
		Reason: fmt.Sprintf("unrecognized format token %q", token),
	}
}

// FormatFromPath derives the format from a file name's extension.
// Known extensions are matched exactly; anything else goes through the
// ParseFormat containment rule. Compression suffixes must be stripped by the
// caller first.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatUnknown, &Error{
			Kind:   KindUnsupportedFormat,
			Name:   path,
			Reason: "file has no extension",
		}
	}

	for _, f := range Formats() {
		if slices.Contains(f.Extensions(), strings.ToLower(ext)) {
			return f, nil
		}
	}

	f, err := ParseFormat(ext)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Name = path
		}
		return FormatUnknown, err
	}
	return f, nil
}

// Implemented reports whether the format has a working decoder.
func (f Format) Implemented() bool {
	switch f {
	case FormatCSV, FormatText, FormatSPA:
		return true
	default:
		return false
	}
}
