package csv

import (
	stdcsv "encoding/csv"
	"io"
	"strconv"

	"github.com/simonhull/spectra/internal/types"
)

// header is written first so exported files pass validation.
var header = []string{"wavelength", "intensity"}

type encoder struct{}

// Encode writes s as a header record followed by one x,y record per sample.
// Values use the shortest representation that parses back exactly.
func (encoder) Encode(w io.Writer, s *types.Series, cfg types.Config) error {
	cw := stdcsv.NewWriter(w)
	cw.Comma = cfg.Delimiter

	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, 2)
	for x, y := range s.Points() {
		rec[0] = strconv.FormatFloat(x, 'g', -1, 64)
		rec[1] = strconv.FormatFloat(y, 'g', -1, 64)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
