// Package hash computes content fingerprints for decoded spectra.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// canonicalNaN is the bit pattern every NaN is folded to before hashing.
const canonicalNaN = 0x7FF8000000000001

// Series computes the xxHash64 of a pair of float64 columns.
//
// Values are hashed by their IEEE-754 bit pattern in little-endian order,
// x column first. Every NaN hashes as the same quiet NaN, whatever its sign
// or payload, so two series with identical samples hash equally
// regardless of how they were decoded. The column lengths are mixed in to
// keep ([a], [b c]) distinct from ([a b], [c]).
func Series(x, y []float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(x)))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(y)))
	_, _ = d.Write(buf[:])

	for _, col := range [2][]float64{x, y} {
		for _, v := range col {
			bits := math.Float64bits(v)
			if math.IsNaN(v) {
				bits = canonicalNaN
			}
			binary.LittleEndian.PutUint64(buf[:], bits)
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
