package spectra

import "github.com/simonhull/spectra/internal/types"

// SaveOption configures Write and WriteFile.
//
// Example:
//
//	err := spectra.WriteFile("run.csv", s,
//	    spectra.WithBackup(".bak"),
//	    spectra.WithVerify(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for writing series.
type saveOptions struct {
	cfg             types.Config // Delimiter used between columns
	backupSuffix    string       // Suffix for backup file (e.g., ".bak")
	verify          bool         // Re-read after write to verify
	preserveModTime bool         // Keep the replaced file's modification time
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{
		cfg: types.DefaultConfig(),
	}
}

// WithOutputDelimiter sets the column separator of written files.
// The default is a comma.
func WithOutputDelimiter(r rune) SaveOption {
	return func(o *saveOptions) {
		o.cfg.Delimiter = r
	}
}

// WithBackup keeps the file being replaced.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will move "run.csv" to
// "run.csv.bak" before the new file takes its place. Nothing is backed up
// when path does not exist yet.
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithVerify re-reads the file after writing and checks that it decodes to
// the same samples.
func WithVerify() SaveOption {
	return func(o *saveOptions) {
		o.verify = true
	}
}

// WithPreserveModTime keeps the modification time of the file being
// replaced.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
