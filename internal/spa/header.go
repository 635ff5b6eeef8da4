// Package spa reads the fixed-layout binary SPA spectrum format.
//
// All fields are little-endian:
//
//	offset  field            type
//	30      title            255 bytes, zero padded
//	564     point count      int32
//	576     max wavenumber   float32
//	580     min wavenumber   float32
//	288..   sentinel scan    uint16 values until one equals 3
//	+2      data offset      uint16 following the sentinel
//	data    spectrum         point count × float32
package spa

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/spectra/internal/binary"
	"github.com/simonhull/spectra/internal/types"
)

const (
	offTitle         = 30
	titleLen         = 255
	offScanStart     = 288
	offPointCount    = 564
	offMaxWavenumber = 576
	offMinWavenumber = 580

	sentinel = 3
)

// Header holds the fixed-offset fields and the located data pointer.
type Header struct {
	Title          string
	Points         int
	MaxWavenumber  float32
	MinWavenumber  float32
	SentinelOffset int64
	DataOffset     int64
}

// ReadHeader reads the header fields of an SPA stream without reading the
// spectrum.
func ReadHeader(r io.Reader) (Header, error) {
	sr, err := binary.Open(r, "")
	if err != nil {
		return Header{}, &types.Error{Kind: types.KindMalformedStream, Format: types.FormatSPA, Err: err}
	}
	h, err := readHeader(sr)
	if err != nil {
		return Header{}, layoutError("", err)
	}
	return h, nil
}

func readHeader(sr *binary.SafeReader) (Header, error) {
	cr := binary.NewChainReader(binary.NewReader(sr, offPointCount))
	points := binary.ReadChained[int32](cr, "point count")

	cr.Seek(offTitle)
	title := cr.Bytes(titleLen, "title")

	cr.Seek(offMaxWavenumber)
	maxWave := binary.ReadChained[float32](cr, "max wavenumber")
	minWave := binary.ReadChained[float32](cr, "min wavenumber")

	if err := cr.Error(); err != nil {
		return Header{}, err
	}
	if points <= 0 {
		return Header{}, &layoutFault{offset: offPointCount, reason: fmt.Sprintf("point count %d must be positive", points)}
	}

	h := Header{
		Title:         decodeTitle(title),
		Points:        int(points),
		MaxWavenumber: maxWave,
		MinWavenumber: minWave,
	}

	var err error
	h.SentinelOffset, h.DataOffset, err = scanDataOffset(sr)
	if err != nil {
		return Header{}, err
	}
	return h, nil
}

// scanDataOffset walks uint16 values from offScanStart until the sentinel
// and returns the value that follows it. The walk stops at end of input.
func scanDataOffset(sr *binary.SafeReader) (sentinelAt, dataOffset int64, err error) {
	r := binary.NewReader(sr, offScanStart)
	for r.Remaining() >= 2 {
		at := r.Offset()
		v, err := binary.ReadValue[uint16](r, "sentinel scan")
		if err != nil {
			return 0, 0, err
		}
		if v != sentinel {
			continue
		}
		off, err := binary.ReadValue[uint16](r, "data offset")
		if err != nil {
			return 0, 0, err
		}
		return at, int64(off), nil
	}
	return 0, 0, &layoutFault{offset: offScanStart, reason: "sentinel not found"}
}

// decodeTitle drops every zero byte and maps the rest one byte per rune.
func decodeTitle(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c != 0 {
			sb.WriteRune(rune(c))
		}
	}
	return sb.String()
}

// layoutFault is a structural problem found after the reads succeeded.
type layoutFault struct {
	reason string
	offset int64
}

func (f *layoutFault) Error() string {
	return f.reason
}

func layoutError(name string, err error) *types.Error {
	e := &types.Error{
		Kind:   types.KindBinaryLayoutError,
		Format: types.FormatSPA,
		Name:   name,
	}

	var fault *layoutFault
	var oob *types.OutOfBoundsError
	switch {
	case errors.As(err, &fault):
		e.Reason = fault.reason
		e.Offset = fault.offset
	case errors.As(err, &oob):
		e.Offset = oob.Offset
		e.Err = err
	default:
		e.Err = err
	}
	return e
}
