// Package jcamp reserves the JCAMP-DX peak-table format. Decoding is not
// implemented; both operations report NotImplemented.
package jcamp

import (
	"io"

	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

type parser struct{}

func (p *parser) Decode(_ io.Reader, cfg types.Config) (*types.Series, error) {
	return nil, notImplemented(cfg)
}

func (p *parser) Validate(_ io.Reader, cfg types.Config) (types.Diagnostic, error) {
	return types.Invalid(types.FormatJCAMP, types.KindNotImplemented, "JCAMP-DX decoding is not implemented"),
		notImplemented(cfg)
}

func notImplemented(cfg types.Config) error {
	return &types.Error{
		Kind:   types.KindNotImplemented,
		Format: types.FormatJCAMP,
		Name:   cfg.Name,
		Reason: "JCAMP-DX decoding is not implemented",
	}
}

func init() {
	registry.Register(types.FormatJCAMP, &parser{})
}
