package binary

import (
	"encoding/binary"
	"math"
)

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// LittleEndian uses little-endian byte order.
	// Used by: SPA instrument exports, x86/x64 architectures.
	LittleEndian Endianness = iota

	// BigEndian uses big-endian byte order.
	BigEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ReadLE reads a numeric value of type T at the given offset using little-endian byte order.
//
// Example:
//
//	count, err := binary.ReadLE[int32](sr, 564, "point count")
func ReadLE[T Numeric](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, LittleEndian)
}

// ReadBE reads a numeric value of type T at the given offset using big-endian byte order.
func ReadBE[T Numeric](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
//
// This is the low-level function used by Read, ReadLE, and ReadBE.
// Most code should use the convenience wrappers instead.
func ReadEndian[T Numeric](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	buf := make([]byte, sizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		var zero T
		return zero, err
	}
	return decode[T](buf, endian.order()), nil
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T Numeric]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

func decode[T Numeric](buf []byte, order binary.ByteOrder) T {
	var zero T
	var v any
	switch any(zero).(type) {
	case uint8:
		v = buf[0]
	case uint16:
		v = order.Uint16(buf)
	case uint32:
		v = order.Uint32(buf)
	case uint64:
		v = order.Uint64(buf)
	case int32:
		v = int32(order.Uint32(buf))
	case float32:
		v = math.Float32frombits(order.Uint32(buf))
	case float64:
		v = math.Float64frombits(order.Uint64(buf))
	}
	return v.(T)
}

func encode[T Numeric](val T, order binary.ByteOrder) []byte {
	buf := make([]byte, sizeOf[T]())
	switch v := any(val).(type) {
	case uint8:
		buf[0] = v
	case uint16:
		order.PutUint16(buf, v)
	case uint32:
		order.PutUint32(buf, v)
	case uint64:
		order.PutUint64(buf, v)
	case int32:
		order.PutUint32(buf, uint32(v))
	case float32:
		order.PutUint32(buf, math.Float32bits(v))
	case float64:
		order.PutUint64(buf, math.Float64bits(v))
	}
	return buf
}
