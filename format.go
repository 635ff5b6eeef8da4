package spectra

import (
	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatCSV     = types.FormatCSV
	FormatText    = types.FormatText
	FormatSPA     = types.FormatSPA
	FormatJCAMP   = types.FormatJCAMP
	FormatJSON    = types.FormatJSON
)

// ParseFormat maps a format token to a Format.
//
// Matching is by substring containment on the lowercased token, tried in
// the order csv, jcamp, spa, json, text. "mycsv" therefore selects CSV.
// Unrecognized tokens fail with ErrUnsupportedFormat. No I/O is performed.
func ParseFormat(token string) (Format, error) {
	return types.ParseFormat(token)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return types.FormatFromPath(path)
}

// Formats returns every format that has a registered decoder, including
// the stub formats that report ErrNotImplemented.
func Formats() []Format {
	return registry.Registered()
}
