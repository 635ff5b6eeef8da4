// Package csv decodes and validates two-column delimiter-separated exports.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/spectra/internal/parsing"
	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

// wavelengthKey must appear in at least one header key of a valid file.
const wavelengthKey = "wavelength"

// parser implements registry.Codec for CSV files.
type parser struct{}

func newReader(r io.Reader, cfg types.Config) *stdcsv.Reader {
	cr := stdcsv.NewReader(r)
	cr.Comma = cfg.Delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// Decode reads every record and keeps the ones whose first two columns are
// numeric. Other records are dropped and listed in Series.Skipped.
func (p *parser) Decode(r io.Reader, cfg types.Config) (*types.Series, error) {
	cr := newReader(r, cfg)
	s := &types.Series{Format: types.FormatCSV}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(cfg, err)
		}
		line, _ := cr.FieldPos(0)

		x, y, err := pair(rec)
		if err != nil {
			s.Skipped = append(s.Skipped, types.SkippedRow{
				Line:    line,
				Text:    strings.Join(rec, string(cfg.Delimiter)),
				Reason:  err.Error(),
				Leading: s.Len() == 0,
			})
			continue
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}

	if s.Len() == 0 {
		return nil, &types.Error{
			Kind:   types.KindEmptyDataset,
			Format: types.FormatCSV,
			Name:   cfg.Name,
			Reason: fmt.Sprintf("no numeric rows (%d skipped)", len(s.Skipped)),
		}
	}
	return s, nil
}

func pair(rec []string) (x, y float64, err error) {
	if len(rec) < 2 {
		return 0, 0, fmt.Errorf("expected 2 columns, found %d", len(rec))
	}
	if x, err = parsing.Float(rec[0]); err != nil {
		return 0, 0, fmt.Errorf("column 0: %w", err)
	}
	if y, err = parsing.Float(rec[1]); err != nil {
		return 0, 0, fmt.Errorf("column 1: %w", err)
	}
	return x, y, nil
}

// Validate walks the records the way Decode does without failing.
//
// Non-numeric records are collected as header candidates, lower-cased
// column 0 to lower-cased column 1. A record whose first column parses but
// whose second does not still counts towards the x column, so a stray
// non-numeric intensity shows up as a column length mismatch. A blank line
// is a record with no columns and fails the column check.
func (p *parser) Validate(r io.Reader, cfg types.Config) (types.Diagnostic, error) {
	lc := &lineCounter{r: r}
	cr := newReader(lc, cfg)
	header := make(map[string]string)
	var records, xs, ys int
	var last int // last physical line covered by a record

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			d := types.Invalid(types.FormatCSV, types.KindMalformedStream, parseReason(err))
			d.Line = errLine(err)
			d.Header = header
			return d, nil
		}
		records++
		line, _ := cr.FieldPos(0)

		if line > last+1 {
			return blankLine(last+1, header), nil
		}
		last = endLine(cr, rec)

		if len(rec) != 2 {
			d := types.Invalid(types.FormatCSV, types.KindColumnMismatch,
				fmt.Sprintf("expected 2 columns, found %d", len(rec)))
			d.Line = line
			d.Header = header
			return d, nil
		}

		if _, err := parsing.Float(rec[0]); err != nil {
			header[parsing.HeaderKey(rec[0])] = parsing.HeaderKey(rec[1])
			continue
		}
		xs++
		if _, err := parsing.Float(rec[1]); err != nil {
			header[parsing.HeaderKey(rec[0])] = parsing.HeaderKey(rec[1])
			continue
		}
		ys++
	}

	if lc.lines() > last {
		return blankLine(last+1, header), nil
	}

	var d types.Diagnostic
	switch {
	case records == 0:
		d = types.Invalid(types.FormatCSV, types.KindEmptyDataset, "file contains no records")
	case !hasWavelength(header):
		d = types.Invalid(types.FormatCSV, types.KindMissingWavelengthHeader,
			"no header row names a wavelength column")
	case xs != ys:
		d = types.Invalid(types.FormatCSV, types.KindColumnLengthMismatch,
			fmt.Sprintf("x column has %d values, y column has %d", xs, ys))
	case ys == 0:
		d = types.Invalid(types.FormatCSV, types.KindEmptyDataset, "no numeric rows")
	default:
		d = types.Valid(types.FormatCSV, ys)
	}
	d.Header = header
	d.Rows = ys
	return d, nil
}

func blankLine(line int, header map[string]string) types.Diagnostic {
	d := types.Invalid(types.FormatCSV, types.KindColumnMismatch, "expected 2 columns, found 0")
	d.Line = line
	d.Header = header
	return d
}

// endLine returns the physical line on which rec ends. Quoted fields may
// span lines.
func endLine(cr *stdcsv.Reader, rec []string) int {
	i := len(rec) - 1
	line, _ := cr.FieldPos(i)
	return line + strings.Count(rec[i], "\n")
}

// lineCounter counts the physical lines read through it. encoding/csv drops
// empty lines; the count lets Validate find them.
type lineCounter struct {
	r       io.Reader
	n       int
	partial bool
}

func (lc *lineCounter) Read(p []byte) (int, error) {
	n, err := lc.r.Read(p)
	if n > 0 {
		lc.n += bytes.Count(p[:n], []byte{'\n'})
		lc.partial = p[n-1] != '\n'
	}
	return n, err
}

func (lc *lineCounter) lines() int {
	if lc.partial {
		return lc.n + 1
	}
	return lc.n
}

func hasWavelength(header map[string]string) bool {
	for k := range header {
		if strings.Contains(k, wavelengthKey) {
			return true
		}
	}
	return false
}

func malformed(cfg types.Config, err error) error {
	return &types.Error{
		Kind:   types.KindMalformedStream,
		Format: types.FormatCSV,
		Name:   cfg.Name,
		Line:   errLine(err),
		Err:    err,
	}
}

func errLine(err error) int {
	var pe *stdcsv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

func parseReason(err error) string {
	var pe *stdcsv.ParseError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

func init() {
	registry.Register(types.FormatCSV, &parser{})
	registry.RegisterEncoder(types.FormatCSV, encoder{})
}
