// Package compress provides transparent decompression for instrument exports
// that are archived compressed (for example sample.spa.zst or run.csv.gz).
package compress

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression scheme.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	S2
	LZ4
)

var names = [...]string{
	None: "none",
	Gzip: "gzip",
	Zstd: "zstd",
	S2:   "s2",
	LZ4:  "lz4",
}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(names) {
		return fmt.Sprintf("Compression(%d)", int(c))
	}
	return names[c]
}

// suffixes maps file suffixes to their compression.
var suffixes = map[string]Compression{
	".gz":   Gzip,
	".gzip": Gzip,
	".zst":  Zstd,
	".zstd": Zstd,
	".s2":   S2,
	".sz":   S2,
	".lz4":  LZ4,
}

// Parse converts a name such as "gzip" or "zst" (or an HTTP
// Content-Encoding value) into a Compression. The empty string and
// "identity" mean None.
func Parse(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "identity":
		return None, nil
	case "gzip", "gz", "x-gzip":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "s2", "snappy":
		return S2, nil
	case "lz4":
		return LZ4, nil
	}
	return None, fmt.Errorf("unknown compression %q", s)
}

// Detect inspects the last extension of path. It returns the compression
// and the path with the compression suffix removed, so the remaining
// extension names the spectral format.
func Detect(path string) (Compression, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := suffixes[ext]; ok {
		return c, path[:len(path)-len(ext)]
	}
	return None, path
}

// NewReader wraps r in a decompressing reader. Closing the returned reader
// releases decoder resources but never closes r.
func NewReader(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return dec.IOReadCloser(), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("unsupported compression %s", c)
}

// NewWriter wraps w in a compressing writer. The returned writer must be
// closed to flush the final frame; closing it does not close w.
func NewWriter(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create zstd writer: %w", err)
		}
		return enc, nil
	case S2:
		return s2.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("unsupported compression %s", c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
