package jsondata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

func TestNotImplemented(t *testing.T) {
	input := `{"x":[1,2],"y":[3,4]}`

	_, err := registry.GetDecoder(types.FormatJSON).Decode(strings.NewReader(input), types.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotImplemented))

	d, err := registry.GetValidator(types.FormatJSON).Validate(strings.NewReader(input), types.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotImplemented))
	assert.Equal(t, types.KindNotImplemented, d.Kind)
	assert.False(t, d.Valid)
}
