package csv

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spectra/internal/types"
)

func TestEncode(t *testing.T) {
	s := &types.Series{X: []float64{500, 500.5}, Y: []float64{0.1, 1e-9}}

	var buf bytes.Buffer
	require.NoError(t, encoder{}.Encode(&buf, s, types.DefaultConfig()))
	assert.Equal(t, "wavelength,intensity\n500,0.1\n500.5,1e-09\n", buf.String())
}

func TestEncode_Delimiter(t *testing.T) {
	s := &types.Series{X: []float64{1}, Y: []float64{2}}
	cfg := types.DefaultConfig()
	cfg.Delimiter = ';'

	var buf bytes.Buffer
	require.NoError(t, encoder{}.Encode(&buf, s, cfg))
	assert.Equal(t, "wavelength;intensity\n1;2\n", buf.String())
}

func TestEncode_OutputValidatesAndDecodes(t *testing.T) {
	s := &types.Series{
		X: []float64{400, 400.25, 401},
		Y: []float64{math.Pi, -0.5, math.Inf(1)},
	}

	var buf bytes.Buffer
	require.NoError(t, encoder{}.Encode(&buf, s, types.DefaultConfig()))

	d := validate(t, buf.String())
	assert.True(t, d.Valid, d.String())
	assert.Equal(t, 3, d.Rows)

	got, err := decode(t, buf.String(), types.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, s.X, got.X)
	assert.Equal(t, s.Y, got.Y)
	assert.Equal(t, s.Fingerprint(), got.Fingerprint())
}
