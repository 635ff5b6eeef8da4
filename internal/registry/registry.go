// Package registry manages the format-specific decoders and validators.
package registry

import (
	"io"

	"github.com/simonhull/spectra/internal/types"
)

// Decoder is the interface all format decoders implement.
type Decoder interface {
	// Decode reads r to completion and returns a fresh Series.
	// Implementations never close r.
	Decode(r io.Reader, cfg types.Config) (*types.Series, error)
}

// Validator is the interface all format validators implement.
type Validator interface {
	// Validate checks r without failing on content problems; every such
	// problem is reported through the returned Diagnostic. Only formats
	// that cannot be validated at all return an error.
	Validate(r io.Reader, cfg types.Config) (types.Diagnostic, error)
}

// Codec is implemented by format packages that provide both halves.
type Codec interface {
	Decoder
	Validator
}

// Encoder is implemented by formats that can write a series back out.
type Encoder interface {
	// Encode writes s to w. Implementations never close w.
	Encode(w io.Writer, s *types.Series, cfg types.Config) error
}

var (
	// codecs maps formats to their codec.
	codecs = make(map[types.Format]Codec)

	// encoders maps formats to their encoder.
	encoders = make(map[types.Format]Encoder)
)

// Register registers the decoder and validator for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, codec Codec) {
	codecs[format] = codec
}

// RegisterEncoder registers the encoder for a format.
func RegisterEncoder(format types.Format, enc Encoder) {
	encoders[format] = enc
}

// GetEncoder returns the encoder for a given format.
// Returns nil if the format cannot be written.
func GetEncoder(format types.Format) Encoder {
	return encoders[format]
}

// GetDecoder returns the decoder for a given format.
// Returns nil if nothing is registered for the format.
func GetDecoder(format types.Format) Decoder {
	c, ok := codecs[format]
	if !ok {
		return nil
	}
	return c
}

// GetValidator returns the validator for a given format.
// Returns nil if nothing is registered for the format.
func GetValidator(format types.Format) Validator {
	c, ok := codecs[format]
	if !ok {
		return nil
	}
	return c
}

// Registered returns the formats that currently have a codec, in dispatch order.
func Registered() []types.Format {
	var out []types.Format
	for _, f := range types.Formats() {
		if _, ok := codecs[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
