package spa

import (
	"fmt"
	"io"

	"github.com/simonhull/spectra/internal/binary"
	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

// nmPerWavenumber converts cm⁻¹ to nanometres: nm = 1e7 / w.
const nmPerWavenumber = 1.0e7

type parser struct{}

// Decode reads the header, locates the spectrum and builds the nanometre axis.
func (p *parser) Decode(r io.Reader, cfg types.Config) (*types.Series, error) {
	sr, err := binary.Open(r, cfg.Name)
	if err != nil {
		return nil, &types.Error{Kind: types.KindMalformedStream, Format: types.FormatSPA, Name: cfg.Name, Err: err}
	}

	h, err := readHeader(sr)
	if err != nil {
		return nil, layoutError(cfg.Name, err)
	}

	spectrum, err := binary.ReadFloat32s(sr, h.DataOffset, h.Points, "spectrum")
	if err != nil {
		return nil, layoutError(cfg.Name, err)
	}

	axis := wavenumbers(h)
	if len(axis) != len(spectrum) {
		return nil, layoutError(cfg.Name, &layoutFault{
			offset: h.DataOffset,
			reason: fmt.Sprintf("axis has %d points, spectrum has %d", len(axis), len(spectrum)),
		})
	}

	s := &types.Series{
		Format: types.FormatSPA,
		Title:  h.Title,
		X:      make([]float64, len(axis)),
		Y:      make([]float64, len(spectrum)),
	}
	for i, w := range axis {
		s.X[i] = nmPerWavenumber / w
	}
	for i, v := range spectrum {
		s.Y[i] = float64(v)
	}
	return s, nil
}

// Validate performs the same reads as Decode without the unit conversion.
func (p *parser) Validate(r io.Reader, cfg types.Config) (types.Diagnostic, error) {
	sr, err := binary.Open(r, cfg.Name)
	if err != nil {
		return types.Invalid(types.FormatSPA, types.KindMalformedStream, err.Error()), nil
	}

	h, err := readHeader(sr)
	if err != nil {
		return invalid(err), nil
	}

	spectrum, err := binary.ReadFloat32s(sr, h.DataOffset, h.Points, "spectrum")
	if err != nil {
		return invalid(err), nil
	}

	if n := len(wavenumbers(h)); n != len(spectrum) {
		d := types.Invalid(types.FormatSPA, types.KindBinaryLayoutError,
			fmt.Sprintf("axis has %d points, spectrum has %d", n, len(spectrum)))
		d.Offset = h.DataOffset
		return d, nil
	}
	return types.Valid(types.FormatSPA, len(spectrum)), nil
}

func invalid(err error) types.Diagnostic {
	e := layoutError("", err)
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	d := types.Invalid(types.FormatSPA, types.KindBinaryLayoutError, reason)
	d.Offset = e.Offset
	return d
}

// wavenumbers returns h.Points evenly spaced values from min to max,
// in reverse order (max first).
func wavenumbers(h Header) []float64 {
	n := h.Points
	lo, hi := float64(h.MinWavenumber), float64(h.MaxWavenumber)
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range n {
		out[n-1-i] = lo + float64(i)*step
	}
	out[0] = hi
	return out
}

func init() {
	registry.Register(types.FormatSPA, &parser{})
}
