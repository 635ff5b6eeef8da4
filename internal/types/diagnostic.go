package types

import "fmt"

// Diagnostic is the outcome of validating a candidate file.
//
// When Valid is false, Kind and Reason describe the first problem found.
// Line (text formats) and Offset (binary formats) locate it when known;
// zero means no position.
type Diagnostic struct {
	// Header holds the non-numeric rows seen while validating text formats.
	Header map[string]string

	Reason string
	Format Format
	Kind   Kind
	Line   int
	Offset int64

	// Rows is the number of fully numeric data rows seen.
	Rows int

	Valid bool
}

// Valid returns a successful diagnostic.
func Valid(format Format, rows int) Diagnostic {
	return Diagnostic{Valid: true, Format: format, Rows: rows}
}

// Invalid returns a failed diagnostic.
func Invalid(format Format, kind Kind, reason string) Diagnostic {
	return Diagnostic{Format: format, Kind: kind, Reason: reason}
}

// Err converts a failed diagnostic into an *Error. It returns nil when the
// diagnostic is valid.
func (d Diagnostic) Err() error {
	if d.Valid {
		return nil
	}
	return &Error{
		Kind:   d.Kind,
		Format: d.Format,
		Reason: d.Reason,
		Line:   d.Line,
		Offset: d.Offset,
	}
}

func (d Diagnostic) String() string {
	if d.Valid {
		return fmt.Sprintf("%s: valid (%d rows)", d.Format, d.Rows)
	}
	switch {
	case d.Line > 0:
		return fmt.Sprintf("%s: invalid at line %d: %s (%s)", d.Format, d.Line, d.Reason, d.Kind)
	case d.Offset > 0:
		return fmt.Sprintf("%s: invalid at offset %d: %s (%s)", d.Format, d.Offset, d.Reason, d.Kind)
	default:
		return fmt.Sprintf("%s: invalid: %s (%s)", d.Format, d.Reason, d.Kind)
	}
}
