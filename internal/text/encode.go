package text

import (
	"bufio"
	"io"
	"strconv"

	"github.com/simonhull/spectra/internal/types"
)

type encoder struct{}

// Encode writes a wavelength/intensity header line and one line per sample,
// separated by cfg.Delimiter. Derived four-column values are written as
// plain two-column rows.
func (encoder) Encode(w io.Writer, s *types.Series, cfg types.Config) error {
	bw := bufio.NewWriter(w)
	delim := string(cfg.Delimiter)

	bw.WriteString("wavelength" + delim + "intensity\n")
	var buf []byte
	for x, y := range s.Points() {
		buf = strconv.AppendFloat(buf[:0], x, 'g', -1, 64)
		buf = append(buf, delim...)
		buf = strconv.AppendFloat(buf, y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
