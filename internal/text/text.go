// Package text decodes and validates generic delimited text exports.
//
// Two column policies are supported. In two-column mode columns 0 and 1 are
// used directly. In four-column mode column 0 is x and the intensity is
// derived from a baseline, reference and sample reading:
//
//	y = (col3 - col1) / (col2 - col1)
//
// A zero reference span yields ±Inf or NaN. Such rows are kept and counted
// in Series.NonFinite.
package text

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/simonhull/spectra/internal/parsing"
	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

// maxLineSize bounds a single line. Longer lines fail the stream.
const maxLineSize = 1 << 20

type parser struct{}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

// Decode reads r line by line. Blank lines are ignored; lines whose
// required columns do not parse are dropped and listed in Series.Skipped.
func (p *parser) Decode(r io.Reader, cfg types.Config) (*types.Series, error) {
	sc := newScanner(r)
	s := &types.Series{Format: types.FormatText}
	line := 0

	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		x, y, err := row(parsing.Split(text, cfg.Delimiter), cfg.Columns)
		if err != nil {
			s.Skipped = append(s.Skipped, types.SkippedRow{
				Line:    line,
				Text:    text,
				Reason:  err.Error(),
				Leading: s.Len() == 0,
			})
			continue
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			s.NonFinite++
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}
	if err := sc.Err(); err != nil {
		return nil, &types.Error{
			Kind:   types.KindMalformedStream,
			Format: types.FormatText,
			Name:   cfg.Name,
			Line:   line + 1,
			Err:    err,
		}
	}

	if s.Len() == 0 {
		return nil, &types.Error{
			Kind:   types.KindEmptyDataset,
			Format: types.FormatText,
			Name:   cfg.Name,
			Reason: fmt.Sprintf("no numeric rows (%d skipped)", len(s.Skipped)),
		}
	}
	return s, nil
}

func row(fields []string, mode types.ColumnMode) (x, y float64, err error) {
	if mode == types.ColumnsFour {
		v, err := parsing.Floats(fields, 4)
		if err != nil {
			return 0, 0, err
		}
		baseline, reference, sample := v[1], v[2], v[3]
		return v[0], (sample - baseline) / (reference - baseline), nil
	}

	v, err := parsing.Floats(fields, 2)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}

// Validate re-parses columns 0 and 1 only, whatever the column mode.
// Non-numeric lines are kept in Diagnostic.Header keyed by line number.
// A line whose first column parses but whose second does not counts towards
// x only, which surfaces as a column length mismatch.
func (p *parser) Validate(r io.Reader, cfg types.Config) (types.Diagnostic, error) {
	sc := newScanner(r)
	header := make(map[string]string)
	var line, xs, ys int

	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := parsing.Split(text, cfg.Delimiter)
		key := strconv.Itoa(line)

		if _, err := parsing.Float(fields[0]); err != nil {
			header[key] = strings.Join(fields, " ")
			continue
		}
		xs++
		if len(fields) < 2 {
			header[key] = strings.Join(fields, " ")
			continue
		}
		if _, err := parsing.Float(fields[1]); err != nil {
			header[key] = strings.Join(fields, " ")
			continue
		}
		ys++
	}

	var d types.Diagnostic
	if err := sc.Err(); err != nil {
		d = types.Invalid(types.FormatText, types.KindMalformedStream, err.Error())
		d.Line = line + 1
	} else {
		switch {
		case xs != ys:
			d = types.Invalid(types.FormatText, types.KindColumnLengthMismatch,
				fmt.Sprintf("x column has %d values, y column has %d", xs, ys))
		case ys == 0:
			d = types.Invalid(types.FormatText, types.KindEmptyDataset, "no numeric rows")
		default:
			d = types.Valid(types.FormatText, ys)
		}
	}
	d.Header = header
	d.Rows = ys
	return d, nil
}

func init() {
	registry.Register(types.FormatText, &parser{})
	registry.RegisterEncoder(types.FormatText, encoder{})
}
