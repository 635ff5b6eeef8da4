// Package binary provides type-safe binary reading primitives with bounds checking
package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/simonhull/spectra/internal/types"
)

// Numeric is the set of fixed-size values the readers can decode.
type Numeric interface {
	uint8 | uint16 | uint32 | uint64 | int32 | float32 | float64
}

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Open adapts an arbitrary stream for random access.
//
// Streams that already implement io.ReaderAt and io.Seeker are used in place
// and their position is restored. Other seekable streams are read through
// Seek; their position is left wherever the last read ended. Anything else
// is buffered into memory. The returned reader holds r only for the
// lifetime of the SafeReader.
func Open(r io.Reader, path string) (*SafeReader, error) {
	if s, ok := r.(io.Seeker); ok {
		size, err := streamSize(s)
		if err != nil {
			return nil, fmt.Errorf("%s: determine size: %w", path, err)
		}
		if ra, ok := r.(io.ReaderAt); ok {
			return NewSafeReader(ra, size, path), nil
		}
		if rs, ok := r.(io.ReadSeeker); ok {
			return NewSafeReader(&seekReaderAt{rs: rs}, size, path), nil
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: buffer stream: %w", path, err)
	}
	return NewSafeReader(bytes.NewReader(data), int64(len(data)), path), nil
}

func streamSize(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// seekReaderAt implements io.ReaderAt on top of an io.ReadSeeker.
// It is not safe for concurrent use.
type seekReaderAt struct {
	rs io.ReadSeeker
}

func (s *seekReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.rs, p)
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of addressable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	// Check bounds
	if off < 0 || off >= sr.size || off+int64(len(b)) > sr.size {
		return &types.OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Read reads a little-endian value of type T from the given offset.
func Read[T Numeric](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, LittleEndian)
}

// ReadFloat32s reads n consecutive little-endian float32 values.
//
// The bounds are checked before anything is allocated, so a corrupt count
// cannot trigger a huge allocation.
func ReadFloat32s(sr *SafeReader, off int64, n int, what string) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative count %d while reading %s", sr.path, n, what)
	}
	if n == 0 {
		return []float32{}, nil
	}

	length := int64(n) * 4
	if off < 0 || off >= sr.size || length > sr.size-off {
		return nil, &types.OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: int(min(length, math.MaxInt32)),
			Size:   sr.size,
		}
	}

	buf := make([]byte, length)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// ReadValue reads a little-endian numeric value and advances the offset.
func ReadValue[T Numeric](r *Reader, what string) (T, error) {
	val, err := Read[T](r.SafeReader, r.offset, what)
	if err != nil {
		var zero T
		return zero, err
	}

	r.offset += int64(sizeOf[T]())
	return val, nil
}

// ReadBytes reads length raw bytes and advances the offset.
func (r *Reader) ReadBytes(length int, what string) ([]byte, error) {
	buf := make([]byte, length)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}

	r.offset += int64(length)
	return buf, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Seek moves the offset to an absolute position.
func (r *Reader) Seek(off int64) {
	r.offset = off
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes between the offset and the end.
func (r *Reader) Remaining() int64 {
	if r.offset >= r.size {
		return 0
	}
	return r.size - r.offset
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T Numeric](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads raw bytes, accumulating any error.
func (cr *ChainReader) Bytes(length int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	val, err := cr.Reader.ReadBytes(length, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return val
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	return string(cr.Bytes(length, what))
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
