package spectra_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spectra"
	"github.com/simonhull/spectra/internal/compress"
)

func writeFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	c, _ := compress.Detect(name)
	if c != compress.None {
		var buf bytes.Buffer
		w, err := compress.NewWriter(c, &buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		data = buf.Bytes()
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	spa := buildSPA("ATR crystal", 1000, 4000, []float32{0.5, 0.6, 0.7})

	tests := []struct {
		name   string
		data   []byte
		points int
		format spectra.Format
	}{
		{"run.csv", []byte("wavelength,abs\n500,1\n510,2\n"), 2, spectra.FormatCSV},
		{"run.csv.gz", []byte("wavelength,abs\n500,1\n510,2\n520,3\n"), 3, spectra.FormatCSV},
		{"trace.txt", []byte("500,1\n"), 1, spectra.FormatText},
		{"NBK-026_1.SPA", spa, 3, spectra.FormatSPA},
		{"NBK-026_1.spa.zst", spa, 3, spectra.FormatSPA},
		{"NBK-026_1.spa.lz4", spa, 3, spectra.FormatSPA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.data)

			s, err := spectra.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.points, s.Len())
			assert.Equal(t, tt.format, s.Format)
		})
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := spectra.ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = spectra.ReadFile(writeFile(t, dir, "image.png", []byte("png")))
	assert.True(t, errors.Is(err, spectra.ErrUnsupportedFormat))

	_, err = spectra.ReadFile(writeFile(t, dir, "empty.csv", nil))
	require.Error(t, err)

	var e *spectra.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, spectra.KindEmptyDataset, e.Kind)
	assert.Equal(t, filepath.Join(dir, "empty.csv"), e.Name)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	d, err := spectra.ValidateFile(writeFile(t, dir, "ok.csv.s2", []byte("wavelength,abs\n500,1\n")))
	require.NoError(t, err)
	assert.True(t, d.Valid, d.String())

	d, err = spectra.ValidateFile(writeFile(t, dir, "bad.csv", []byte("nm,abs\n500,1\n")))
	require.NoError(t, err)
	assert.Equal(t, spectra.KindMissingWavelengthHeader, d.Kind)
}

func TestReadMany(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 8)
	for i := range paths {
		data := fmt.Appendf(nil, "wavelength,abs\n%d,1\n", i)
		paths[i] = writeFile(t, dir, fmt.Sprintf("run%d.csv", i), data)
	}

	series, err := spectra.ReadMany(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, series, len(paths))
	for i, s := range series {
		assert.Equal(t, []float64{float64(i)}, s.X, "results keep input order")
	}
}

func TestReadMany_Options(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", []byte("500;10;20;15\n")),
		writeFile(t, dir, "b.txt", []byte("600;0;4;1\n")),
	}

	series, err := spectra.ReadMany(context.Background(), paths,
		spectra.WithDelimiter(';'),
		spectra.WithColumnMode(spectra.ColumnsFour))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, series[0].Y)
	assert.Equal(t, []float64{0.25}, series[1].Y)
}

func TestReadMany_Empty(t *testing.T) {
	series, err := spectra.ReadMany(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, series)
}

// TestReadMany_Cancellation verifies that a cancelled context stops the batch.
func TestReadMany_Cancellation(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = writeFile(t, dir, fmt.Sprintf("run%d.csv", i), []byte("1,2\n"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	series, err := spectra.ReadMany(ctx, paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, series)
}

// TestReadMany_PartialFailure verifies the batch is all or nothing.
func TestReadMany_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "ok.csv", []byte("1,2\n"))

	series, err := spectra.ReadMany(context.Background(), []string{valid, filepath.Join(dir, "nope.csv"), valid})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
	assert.Nil(t, series)
}

func TestValidateMany(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "good.csv", []byte("wavelength,abs\n1,2\n")),
		writeFile(t, dir, "bad.csv", []byte("wavelength,abs\n1,2,3\n")),
		writeFile(t, dir, "good.spa", buildSPA("", 1000, 2000, []float32{1, 2})),
	}

	diags, err := spectra.ValidateMany(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, diags, 3)

	assert.True(t, diags[0].Valid)
	assert.Equal(t, spectra.KindColumnMismatch, diags[1].Kind)
	assert.Equal(t, 2, diags[1].Line)
	assert.True(t, diags[2].Valid)
}

func TestValidateMany_StubFormat(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "peaks.jdx", []byte("##TITLE=x\n"))}

	_, err := spectra.ValidateMany(context.Background(), paths)
	assert.True(t, errors.Is(err, spectra.ErrNotImplemented))
}

// BenchmarkReadFile measures decoding a single 2048-point CSV export.
func BenchmarkReadFile(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("wavelength,absorbance\n")
	for i := range 2048 {
		fmt.Fprintf(&buf, "%d,%f\n", 400+i, float64(i)/2048)
	}
	path := writeFile(b, b.TempDir(), "bench.csv", buf.Bytes())

	b.ReportAllocs()
	for b.Loop() {
		if _, err := spectra.ReadFile(path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkReadMany measures concurrent decoding of SPA files.
func BenchmarkReadMany(b *testing.B) {
	dir := b.TempDir()
	spectrum := make([]float32, 4096)
	paths := make([]string, 16)
	for i := range paths {
		paths[i] = writeFile(b, dir, fmt.Sprintf("s%d.spa", i), buildSPA("bench", 400, 4000, spectrum))
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := spectra.ReadMany(context.Background(), paths); err != nil {
			b.Fatal(err)
		}
	}
}
