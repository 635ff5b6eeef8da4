package spectra

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/spectra/internal/compress"
	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"

	// Register format codecs.
	_ "github.com/simonhull/spectra/internal/csv"
	_ "github.com/simonhull/spectra/internal/jcamp"
	_ "github.com/simonhull/spectra/internal/jsondata"
	_ "github.com/simonhull/spectra/internal/spa"
	_ "github.com/simonhull/spectra/internal/text"
)

// Read decodes r as the format selected by token.
//
// The token is resolved with ParseFormat before r is touched, so an unknown
// token fails with ErrUnsupportedFormat without reading anything. Rows that
// do not parse are dropped and listed in Series.Skipped unless WithStrict is
// given. Read never closes r.
//
// Example:
//
//	f, err := os.Open("run.csv")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	s, err := spectra.Read(f, "csv")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%d points, %d rows skipped\n", s.Len(), len(s.Skipped))
func Read(r io.Reader, token string, opts ...Option) (*Series, error) {
	o := newOptions(opts)
	format, err := types.ParseFormat(token)
	if err != nil {
		return nil, named(err, o.cfg.Name)
	}
	return read(r, format, o)
}

func read(r io.Reader, format Format, o *options) (*Series, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	dec := registry.GetDecoder(format)
	if dec == nil {
		return nil, &Error{
			Kind:   KindUnsupportedFormat,
			Format: format,
			Name:   o.cfg.Name,
			Reason: "no decoder registered",
		}
	}

	src, lim, done, err := decompress(r, o)
	if err != nil {
		return nil, &Error{Kind: KindMalformedStream, Format: format, Name: o.cfg.Name, Err: err}
	}
	defer done()

	s, err := dec.Decode(src, o.cfg)
	if lim != nil && lim.Exceeded() {
		return nil, tooLarge(format, o)
	}
	if err != nil {
		o.logger.Debug("decode failed",
			"format", format.String(),
			"name", o.cfg.Name,
			"kind", KindOf(err).String(),
			"error", err)
		return nil, err
	}

	if o.strict {
		if err := strictCheck(s, format, o); err != nil {
			return nil, err
		}
	}

	o.logger.Debug("decoded spectrum",
		"format", format.String(),
		"name", o.cfg.Name,
		"points", s.Len(),
		"skipped", len(s.Skipped),
		"non_finite", s.NonFinite)
	return s, nil
}

// strictCheck fails on the first row dropped after numeric data began.
// Leading rows are headings and are allowed.
func strictCheck(s *Series, format Format, o *options) error {
	var dropped []SkippedRow
	for _, sk := range s.Skipped {
		if !sk.Leading {
			dropped = append(dropped, sk)
		}
	}
	if len(dropped) == 0 {
		return nil
	}
	return &Error{
		Kind:   KindMalformedStream,
		Format: format,
		Name:   o.cfg.Name,
		Line:   dropped[0].Line,
		Reason: fmt.Sprintf("strict decoding: %s (%d rows skipped)", dropped[0].Reason, len(dropped)),
	}
}

// Validate checks r against the format selected by token.
//
// Content problems never produce an error: they are reported through a
// Diagnostic with Valid set to false. The error is reserved for problems
// with the request itself: an unknown token (ErrUnsupportedFormat), an
// unusable option (ErrInvalidOption) or a format that cannot be validated
// (ErrNotImplemented). Validate never closes r.
func Validate(r io.Reader, token string, opts ...Option) (Diagnostic, error) {
	o := newOptions(opts)
	format, err := types.ParseFormat(token)
	if err != nil {
		return Diagnostic{}, named(err, o.cfg.Name)
	}
	return validate(r, format, o)
}

func validate(r io.Reader, format Format, o *options) (Diagnostic, error) {
	if err := o.cfg.Validate(); err != nil {
		return Diagnostic{}, err
	}

	v := registry.GetValidator(format)
	if v == nil {
		return Diagnostic{}, &Error{
			Kind:   KindUnsupportedFormat,
			Format: format,
			Name:   o.cfg.Name,
			Reason: "no validator registered",
		}
	}

	src, lim, done, err := decompress(r, o)
	if err != nil {
		return types.Invalid(format, KindMalformedStream, err.Error()), nil
	}
	defer done()

	d, err := v.Validate(src, o.cfg)
	if lim != nil && lim.Exceeded() {
		return Diagnostic{}, tooLarge(format, o)
	}
	if err != nil {
		return d, named(err, o.cfg.Name)
	}

	o.logger.Debug("validated spectrum",
		"format", format.String(),
		"name", o.cfg.Name,
		"valid", d.Valid,
		"kind", d.Kind.String(),
		"rows", d.Rows)
	return d, nil
}

// decompress wraps r when the options name a compression. Uncompressed
// streams are passed through untouched so random-access readers keep their
// io.ReaderAt. The returned LimitedReader is nil unless a decompressed size
// limit applies.
func decompress(r io.Reader, o *options) (io.Reader, *compress.LimitedReader, func(), error) {
	if o.compression == CompressionNone {
		return r, nil, func() {}, nil
	}
	zr, err := compress.NewReader(o.compression, r)
	if err != nil {
		return nil, nil, nil, err
	}
	done := func() { _ = zr.Close() }
	if o.maxDecompressed <= 0 {
		return zr, nil, done, nil
	}
	lim := compress.NewLimitedReader(zr, o.maxDecompressed)
	return lim, lim, done, nil
}

func tooLarge(format Format, o *options) error {
	o.logger.Debug("decompressed input too large",
		"format", format.String(),
		"name", o.cfg.Name,
		"limit", o.maxDecompressed)
	return &Error{
		Kind:   KindMalformedStream,
		Format: format,
		Name:   o.cfg.Name,
		Reason: fmt.Sprintf("%s stream expands past %d bytes", o.compression, o.maxDecompressed),
		Err:    compress.ErrTooLarge,
	}
}

// named fills in the input name on errors that lack one.
func named(err error, name string) error {
	var e *Error
	if name != "" && errors.As(err, &e) && e.Name == "" {
		e.Name = name
	}
	return err
}
