// Package jsondata reserves the generic JSON spectrum format. Decoding is
// not implemented; both operations report NotImplemented.
package jsondata

import (
	"io"

	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

const reason = "JSON decoding is not implemented"

type parser struct{}

func (p *parser) Decode(_ io.Reader, cfg types.Config) (*types.Series, error) {
	return nil, &types.Error{Kind: types.KindNotImplemented, Format: types.FormatJSON, Name: cfg.Name, Reason: reason}
}

func (p *parser) Validate(_ io.Reader, cfg types.Config) (types.Diagnostic, error) {
	d := types.Invalid(types.FormatJSON, types.KindNotImplemented, reason)
	return d, d.Err()
}

func init() {
	registry.Register(types.FormatJSON, &parser{})
}
