package spectra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/spectra/internal/compress"
	"github.com/simonhull/spectra/internal/registry"
	"github.com/simonhull/spectra/internal/types"
)

// Write encodes s to w in the given format. Only the delimited text formats
// (CSV and Text) can be written. Write never closes w.
func Write(w io.Writer, s *Series, format Format, opts ...SaveOption) error {
	o := defaultSaveOptions()
	for _, opt := range opts {
		opt(o)
	}
	return write(w, s, format, o)
}

func write(w io.Writer, s *Series, format Format, o *saveOptions) error {
	enc := registry.GetEncoder(format)
	if enc == nil {
		return &Error{
			Kind:   KindUnsupportedFormat,
			Format: format,
			Reason: "no encoder registered",
		}
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	return enc.Encode(w, s, o.cfg)
}

// WriteFile writes s to path. The format and compression are derived from
// the file name the same way ReadFile derives them, so
// "run.csv.zst" is written as zstd-compressed CSV.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the output path. If any step fails, any partially written data is
// cleaned up and an existing file at path is left unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := spectra.WriteFile("normalized/run.csv", s,
//	    spectra.WithBackup(".bak"),
//	    spectra.WithVerify(),
//	)
func WriteFile(path string, s *Series, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	o := defaultSaveOptions()
	for _, opt := range opts {
		opt(o)
	}

	c, inner := compress.Detect(path)
	format, err := types.FormatFromPath(inner)
	if err != nil {
		return named(err, path)
	}
	if registry.GetEncoder(format) == nil {
		return &Error{
			Kind:   KindUnsupportedFormat,
			Format: format,
			Name:   path,
			Reason: "no encoder registered",
		}
	}

	// Get the existing file's mod time if we need to preserve it
	var origInfo os.FileInfo
	if o.preserveModTime {
		if info, err := os.Stat(path); err == nil {
			origInfo = info
		}
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".spectra-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	zw, err := compress.NewWriter(c, tempFile)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	if err := write(zw, s, format, o); err != nil {
		_ = zw.Close() //nolint:errcheck // Already failing
		return named(fmt.Errorf("write: %w", err), path)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish %s stream: %w", c, err)
	}

	// Sync temp file (fsync) to ensure data is on disk
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Rename the existing file to its backup name before replacing it
	if o.backupSuffix != "" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+o.backupSuffix); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if origInfo != nil {
		_ = os.Chtimes(path, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if o.verify {
		if err := verifyWritten(path, s, o); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}
	return nil
}

// verifyWritten re-reads path and compares its samples with s.
func verifyWritten(path string, s *Series, o *saveOptions) error {
	got, err := ReadFile(path, WithDelimiter(o.cfg.Delimiter))
	if err != nil {
		return fmt.Errorf("re-read: %w", err)
	}
	if got.Len() != s.Len() {
		return fmt.Errorf("point count mismatch: got %d, want %d", got.Len(), s.Len())
	}
	if got.Fingerprint() != s.Fingerprint() {
		return fmt.Errorf("fingerprint mismatch: got %016x, want %016x", got.Fingerprint(), s.Fingerprint())
	}
	return nil
}
