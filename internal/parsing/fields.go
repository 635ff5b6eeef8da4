// Package parsing provides the field-level helpers shared by the text formats.
package parsing

import (
	"fmt"
	"strconv"
	"strings"
)

// Float parses one numeric field. Surrounding whitespace (including a
// stray carriage return) is ignored; "nan" and "inf" spellings are accepted.
func Float(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// Floats parses the first n fields of a row. It reports the first failing
// column (zero-based) in the error message.
func Floats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected at least %d columns, found %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := Float(fields[i])
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Split splits a line on a single-character delimiter.
func Split(line string, delim rune) []string {
	return strings.Split(line, string(delim))
}

// HeaderKey normalizes a header cell for case-insensitive lookups.
func HeaderKey(s string) string {
	return strings.ToLower(s)
}
