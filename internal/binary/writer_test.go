package binary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriter_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, Write(sw, uint16(3)))
	require.NoError(t, Write(sw, int32(-1)))
	require.NoError(t, WriteBE(sw, uint16(0x0102)))

	assert.Equal(t, []byte{0x03, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x02}, buf.Bytes())
	assert.Equal(t, int64(8), sw.Offset())
}

func TestSafeWriter_PadTo(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, sw.WriteString("ab"))
	require.NoError(t, sw.PadTo(6))
	require.NoError(t, Write(sw, float32(1)))

	assert.Equal(t, int64(10), sw.Offset())
	assert.Equal(t, []byte("ab\x00\x00\x00\x00"), buf.Bytes()[:6])

	require.Error(t, sw.PadTo(2))
}

func TestSafeWriter_RoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, sw.PadTo(16))
	require.NoError(t, Write(sw, float32(4000)))
	require.NoError(t, Write(sw, float32(1000)))

	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "roundtrip.spa")
	got, err := ReadFloat32s(sr, 16, 2, "range")
	require.NoError(t, err)
	assert.Equal(t, []float32{4000, 1000}, got)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSafeWriter_Error(t *testing.T) {
	sw := NewSafeWriter(failingWriter{})
	require.Error(t, Write(sw, uint32(1)))
	assert.Equal(t, int64(0), sw.Offset())
}
