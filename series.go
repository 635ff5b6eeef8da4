package spectra

import (
	"github.com/simonhull/spectra/internal/types"
)

// Series is an alias to types.Series.
type Series = types.Series

// SkippedRow is an alias to types.SkippedRow.
type SkippedRow = types.SkippedRow

// Diagnostic is an alias to types.Diagnostic.
type Diagnostic = types.Diagnostic

// ColumnMode is an alias to types.ColumnMode.
type ColumnMode = types.ColumnMode

// Re-export the column modes.
const (
	ColumnsTwo  = types.ColumnsTwo
	ColumnsFour = types.ColumnsFour
)

// ParseColumnMode accepts "two"/"2" or "four"/"4".
func ParseColumnMode(s string) (ColumnMode, error) {
	return types.ParseColumnMode(s)
}

// ParseDelimiter converts a one-character string (or `\t`, "tab") to a rune.
func ParseDelimiter(s string) (rune, error) {
	return types.ParseDelimiter(s)
}

// Fingerprint returns the xxHash64 content hash of a series' samples.
// Two decodes of the same data fingerprint equally whatever the source format.
func Fingerprint(s *Series) uint64 {
	return s.Fingerprint()
}
