// Package types provides the core data structures shared by every spectral
// format: the decoded Series, validation Diagnostics, decoder Config and the
// error model.
package types

import (
	"fmt"
	"iter"

	"github.com/simonhull/spectra/internal/hash"
)

// Series is a decoded spectrum: paired x (wavelength or wavenumber) and y
// (intensity, absorbance or transmittance) samples in stream order.
//
// X and Y always have equal length. A Series returned from a successful
// decode is never empty.
type Series struct {
	// Title is format metadata (SPA header title); empty for text formats.
	Title string

	X []float64
	Y []float64

	// Skipped lists rows dropped by the lenient row policy.
	Skipped []SkippedRow

	Format Format

	// NonFinite counts kept rows whose derived y is NaN or ±Inf.
	NonFinite int
}

// SkippedRow records a row the decoder dropped instead of failing.
type SkippedRow struct {
	Text   string
	Reason string
	Line   int

	// Leading is set for rows dropped before the first numeric row, such
	// as column headings.
	Leading bool
}

func (r SkippedRow) String() string {
	return fmt.Sprintf("line %d: %s", r.Line, r.Reason)
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.X)
}

// Points iterates over (x, y) pairs in order.
func (s *Series) Points() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i := range s.X {
			if !yield(s.X[i], s.Y[i]) {
				return
			}
		}
	}
}

// Fingerprint returns a content hash of the samples. Title, format and
// skipped rows do not contribute.
func (s *Series) Fingerprint() uint64 {
	return hash.Series(s.X, s.Y)
}

// Bounds returns the smallest and largest x value.
// ok is false for an empty series.
func (s *Series) Bounds() (lo, hi float64, ok bool) {
	if len(s.X) == 0 {
		return 0, 0, false
	}
	lo, hi = s.X[0], s.X[0]
	for _, v := range s.X[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, true
}
