package spectra

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/spectra/internal/compress"
	"github.com/simonhull/spectra/internal/types"
)

// ReadFile opens path, decodes it and closes it.
//
// The format comes from the file extension after any compression suffix
// (.gz, .zst, .s2, .sz, .lz4) is removed; the compression itself is applied
// transparently. Options given by the caller take precedence.
//
// Example:
//
//	s, err := spectra.ReadFile("NBK-026_1.SPA.zst")
//	if err != nil {
//		return err
//	}
//	fmt.Println(s.Title, s.Len())
func ReadFile(path string, opts ...Option) (*Series, error) {
	format, o, err := fileOptions(path, opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return read(f, format, o)
}

// ValidateFile opens path, validates it and closes it.
// Format and compression are derived as in ReadFile.
func ValidateFile(path string, opts ...Option) (Diagnostic, error) {
	format, o, err := fileOptions(path, opts)
	if err != nil {
		return Diagnostic{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Diagnostic{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return validate(f, format, o)
}

func fileOptions(path string, opts []Option) (Format, *options, error) {
	c, inner := compress.Detect(path)
	format, err := types.FormatFromPath(inner)
	if err != nil {
		return FormatUnknown, nil, err
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithName(path), WithCompression(c))
	all = append(all, opts...)
	return format, newOptions(all), nil
}

// ReadMany decodes multiple files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining work and is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	series, err := spectra.ReadMany(ctx, paths, spectra.WithDelimiter('\t'))
//	if err != nil {
//		log.Fatal(err)
//	}
func ReadMany(ctx context.Context, paths []string, opts ...Option) ([]*Series, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Series, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, err := ReadFile(path, opts...)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ValidateMany validates multiple files concurrently.
//
// Invalid files do not stop the batch; only the errors ValidateFile
// returns (unknown extension, unreadable file, stub format) do.
// Diagnostics are returned in input order.
func ValidateMany(ctx context.Context, paths []string, opts ...Option) ([]Diagnostic, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]Diagnostic, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			d, err := ValidateFile(path, opts...)
			if err != nil {
				return err
			}
			results[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
