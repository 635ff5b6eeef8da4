package binary

import (
	"fmt"
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// PadTo writes zero bytes until the position reaches off.
// Fixed-layout formats use it to place fields at absolute offsets.
func (sw *SafeWriter) PadTo(off int64) error {
	if off < sw.offset {
		return fmt.Errorf("pad to offset %d: already at %d", off, sw.offset)
	}
	return sw.WriteBytes(make([]byte, off-sw.offset))
}

// Write writes a value of type T in little-endian byte order.
func Write[T Numeric](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(val, LittleEndian.order()))
}

// WriteBE writes a value of type T in big-endian byte order.
func WriteBE[T Numeric](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(val, BigEndian.order()))
}
