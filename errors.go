package spectra

import (
	"github.com/simonhull/spectra/internal/compress"
	"github.com/simonhull/spectra/internal/types"
)

// Error is an alias to types.Error.
// Every failure returned by this package is an *Error.
type Error = types.Error

// Kind is an alias to types.Kind.
type Kind = types.Kind

// Re-export the error kinds.
const (
	KindNone                    = types.KindNone
	KindUnsupportedFormat       = types.KindUnsupportedFormat
	KindMalformedStream         = types.KindMalformedStream
	KindColumnMismatch          = types.KindColumnMismatch
	KindColumnLengthMismatch    = types.KindColumnLengthMismatch
	KindMissingWavelengthHeader = types.KindMissingWavelengthHeader
	KindEmptyDataset            = types.KindEmptyDataset
	KindBinaryLayoutError       = types.KindBinaryLayoutError
	KindNotImplemented          = types.KindNotImplemented
	KindInvalidOption           = types.KindInvalidOption
)

// Sentinels for use with errors.Is.
var (
	ErrUnsupportedFormat       = types.ErrUnsupportedFormat
	ErrMalformedStream         = types.ErrMalformedStream
	ErrColumnMismatch          = types.ErrColumnMismatch
	ErrColumnLengthMismatch    = types.ErrColumnLengthMismatch
	ErrMissingWavelengthHeader = types.ErrMissingWavelengthHeader
	ErrEmptyDataset            = types.ErrEmptyDataset
	ErrBinaryLayout            = types.ErrBinaryLayout
	ErrNotImplemented          = types.ErrNotImplemented
	ErrInvalidOption           = types.ErrInvalidOption
)

// ErrDecompressedTooLarge is wrapped by the error returned when a stream
// expands past the WithMaxDecompressedSize limit.
var ErrDecompressedTooLarge = compress.ErrTooLarge

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// It is wrapped inside BinaryLayoutError errors.
type OutOfBoundsError = types.OutOfBoundsError

// KindOf returns the Kind of err, or KindNone if err did not come from this package.
func KindOf(err error) Kind {
	return types.KindOf(err)
}
