package types

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure produced by decoders, validators and the
// dispatcher.
type Kind int

const (
	// KindNone marks a successful outcome.
	KindNone Kind = iota
	// KindUnsupportedFormat is returned for tokens that select no format.
	KindUnsupportedFormat
	// KindMalformedStream is returned when the stream itself cannot be tokenized.
	KindMalformedStream
	// KindColumnMismatch is returned when a row has the wrong number of columns.
	KindColumnMismatch
	// KindColumnLengthMismatch is returned when the x and y columns differ in length.
	KindColumnLengthMismatch
	// KindMissingWavelengthHeader is returned when no header names a wavelength column.
	KindMissingWavelengthHeader
	// KindEmptyDataset is returned when no numeric rows were found.
	KindEmptyDataset
	// KindBinaryLayoutError is returned for structural faults in binary files.
	KindBinaryLayoutError
	// KindNotImplemented is returned by formats that are declared but not implemented.
	KindNotImplemented
	// KindInvalidOption is returned for unusable decoder options.
	KindInvalidOption
)

var kindNames = [...]string{
	KindNone:                    "None",
	KindUnsupportedFormat:       "UnsupportedFormat",
	KindMalformedStream:         "MalformedStream",
	KindColumnMismatch:          "ColumnMismatch",
	KindColumnLengthMismatch:    "ColumnLengthMismatch",
	KindMissingWavelengthHeader: "MissingWavelengthHeader",
	KindEmptyDataset:            "EmptyDataset",
	KindBinaryLayoutError:       "BinaryLayoutError",
	KindNotImplemented:          "NotImplemented",
	KindInvalidOption:           "InvalidOption",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the single error type surfaced by this module.
//
// Line is 1-based and only set for text formats. Offset is only set for
// binary formats; zero means no position is known.
type Error struct {
	Err    error
	Name   string
	Reason string
	Kind   Kind
	Format Format
	Line   int
	Offset int64
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Name != "" {
		b.WriteString(e.Name)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Format != FormatUnknown {
		fmt.Fprintf(&b, " (%s)", e.Format)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	} else if e.Offset > 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. It lets callers
// compare against the sentinel values with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons. They carry only a Kind.
var (
	ErrUnsupportedFormat       = &Error{Kind: KindUnsupportedFormat}
	ErrMalformedStream         = &Error{Kind: KindMalformedStream}
	ErrColumnMismatch          = &Error{Kind: KindColumnMismatch}
	ErrColumnLengthMismatch    = &Error{Kind: KindColumnLengthMismatch}
	ErrMissingWavelengthHeader = &Error{Kind: KindMissingWavelengthHeader}
	ErrEmptyDataset            = &Error{Kind: KindEmptyDataset}
	ErrBinaryLayout            = &Error{Kind: KindBinaryLayoutError}
	ErrNotImplemented          = &Error{Kind: KindNotImplemented}
	ErrInvalidOption           = &Error{Kind: KindInvalidOption}
)

// KindOf extracts the Kind from err, or KindNone if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// OutOfBoundsError is returned when attempting to read beyond the end of the input.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}
