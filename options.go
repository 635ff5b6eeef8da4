package spectra

import (
	"log/slog"

	"github.com/simonhull/spectra/internal/compress"
	"github.com/simonhull/spectra/internal/types"
)

// Option configures a single Read or Validate call.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	s, err := spectra.Read(f, "txt",
//	    spectra.WithDelimiter('\t'),
//	    spectra.WithColumnMode(spectra.ColumnsFour),
//	)
type Option func(*options)

// Compression is an alias to the compression scheme selector.
type Compression = compress.Compression

// Re-export the compression schemes.
const (
	CompressionNone = compress.None
	CompressionGzip = compress.Gzip
	CompressionZstd = compress.Zstd
	CompressionS2   = compress.S2
	CompressionLZ4  = compress.LZ4
)

// ParseCompression converts a name such as "gzip" or "zst" into a Compression.
func ParseCompression(s string) (Compression, error) {
	return compress.Parse(s)
}

type options struct {
	logger          *slog.Logger
	cfg             types.Config
	compression     Compression
	maxDecompressed int64
	strict          bool
}

func defaultOptions() *options {
	return &options{
		cfg:         types.DefaultConfig(),
		compression: CompressionNone,
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithDelimiter sets the column delimiter for CSV and text formats.
// The default is a comma.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.cfg.Delimiter = r
	}
}

// WithColumnMode selects the text column policy. The default is ColumnsTwo.
// ColumnsFour derives y = (c3 - c1) / (c2 - c1) from four columns.
func WithColumnMode(m ColumnMode) Option {
	return func(o *options) {
		o.cfg.Columns = m
	}
}

// WithName names the input in errors and log records.
// ReadFile and ValidateFile use the path.
func WithName(name string) Option {
	return func(o *options) {
		o.cfg.Name = name
	}
}

// WithCompression decompresses the stream before decoding.
// ReadFile and ValidateFile detect it from the file suffix.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMaxDecompressedSize fails the call once a compressed stream expands
// past n bytes. The error wraps ErrDecompressedTooLarge. It has no effect on
// uncompressed input; n <= 0 (the default) means no limit.
//
// Validate reports the overflow as an error rather than a Diagnostic: the
// input was not judged, only refused.
func WithMaxDecompressedSize(n int64) Option {
	return func(o *options) {
		o.maxDecompressed = n
	}
}

// WithLogger sets the logger used for debug records. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStrict treats a dropped data row as fatal.
//
// By default malformed rows are skipped and listed in Series.Skipped.
// With strict decoding the first row dropped after numeric data began fails
// the call with ErrMalformedStream. Rows before the first numeric row
// (headings, such as the one Write emits) are still skipped.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}
