package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ColumnMode selects how delimited text rows map onto a series.
type ColumnMode int

const (
	// ColumnsTwo reads x and y directly from columns 0 and 1.
	ColumnsTwo ColumnMode = 2
	// ColumnsFour derives y from a baseline/reference/sample triple:
	// y = (col3 - col1) / (col2 - col1).
	ColumnsFour ColumnMode = 4
)

func (m ColumnMode) String() string {
	switch m {
	case ColumnsTwo:
		return "two"
	case ColumnsFour:
		return "four"
	default:
		return fmt.Sprintf("ColumnMode(%d)", int(m))
	}
}

// ParseColumnMode accepts "2", "two", "4" or "four" (case-insensitive).
func ParseColumnMode(s string) (ColumnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "2", "two":
		return ColumnsTwo, nil
	case "4", "four":
		return ColumnsFour, nil
	}
	return 0, &Error{
		Kind:   KindInvalidOption,
		Reason: fmt.Sprintf("column mode %q must be two or four", s),
	}
}

// Config carries the per-call decoder settings.
type Config struct {
	// Name identifies the input in error messages (usually a file path).
	Name string

	// Delimiter separates columns in text formats.
	Delimiter rune

	// Columns selects the text column policy.
	Columns ColumnMode
}

// DefaultConfig returns a comma-delimited two-column configuration.
func DefaultConfig() Config {
	return Config{
		Delimiter: ',',
		Columns:   ColumnsTwo,
	}
}

// Validate rejects delimiters and column modes no decoder can honor.
func (c Config) Validate() error {
	switch {
	case c.Delimiter == 0:
		return &Error{Kind: KindInvalidOption, Name: c.Name, Reason: "delimiter must be set"}
	case c.Delimiter == '\r' || c.Delimiter == '\n':
		return &Error{Kind: KindInvalidOption, Name: c.Name, Reason: "delimiter cannot be a line break"}
	case c.Delimiter == '"':
		return &Error{Kind: KindInvalidOption, Name: c.Name, Reason: "delimiter cannot be a quote"}
	case c.Delimiter == utf8.RuneError || !utf8.ValidRune(c.Delimiter):
		return &Error{Kind: KindInvalidOption, Name: c.Name, Reason: "delimiter is not a valid character"}
	}

	if c.Columns != ColumnsTwo && c.Columns != ColumnsFour {
		return &Error{
			Kind:   KindInvalidOption,
			Name:   c.Name,
			Reason: fmt.Sprintf("column mode %s must be two or four", c.Columns),
		}
	}
	return nil
}

// ParseDelimiter converts a single-character string into a delimiter rune.
// The escapes `\t` and "tab" are accepted for tab-separated exports.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, &Error{
			Kind:   KindInvalidOption,
			Reason: fmt.Sprintf("delimiter %q must be a single character", s),
		}
	}
	return r, nil
}
