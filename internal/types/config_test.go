package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"tab four columns", Config{Delimiter: '\t', Columns: ColumnsFour}, false},
		{"unset delimiter", Config{Columns: ColumnsTwo}, true},
		{"newline", Config{Delimiter: '\n', Columns: ColumnsTwo}, true},
		{"quote", Config{Delimiter: '"', Columns: ColumnsTwo}, true},
		{"invalid rune", Config{Delimiter: 0xD800, Columns: ColumnsTwo}, true},
		{"three columns", Config{Delimiter: ',', Columns: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, KindInvalidOption, KindOf(err))
		})
	}
}

func TestParseColumnMode(t *testing.T) {
	for input, want := range map[string]ColumnMode{"": ColumnsTwo, "2": ColumnsTwo, "Two": ColumnsTwo, "4": ColumnsFour, "four": ColumnsFour} {
		got, err := ParseColumnMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseColumnMode("3")
	assert.Equal(t, KindInvalidOption, KindOf(err))
}

func TestParseDelimiter(t *testing.T) {
	for input, want := range map[string]rune{"": ',', ";": ';', `\t`: '\t', "tab": '\t', "|": '|'} {
		got, err := ParseDelimiter(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDelimiter(";;")
	assert.Equal(t, KindInvalidOption, KindOf(err))
}
