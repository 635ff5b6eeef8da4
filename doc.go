// Package spectra decodes and validates spectral measurement files.
//
// A spectrum is a series of (x, y) pairs: wavelength or wavenumber against
// intensity, absorbance or transmittance. spectra reads instrument exports
// of mixed provenance into one Series and checks candidate files before
// they enter a data pipeline.
//
// # Quick Start
//
// Decoding a stream the caller already holds:
//
//	f, err := os.Open("run.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	s, err := spectra.Read(f, "csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for x, y := range s.Points() {
//		fmt.Println(x, y)
//	}
//
// Or letting spectra open the file:
//
//	s, err := spectra.ReadFile("NBK-026_1.SPA")
//
// # Supported Formats
//
//   - CSV: two columns, configurable delimiter; a header row naming the
//     wavelength column is required by Validate
//   - Text: delimited lines in two-column mode, or four-column mode where
//     y = (c3 - c1) / (c2 - c1)
//   - SPA: fixed-layout little-endian binary; the wavenumber axis is
//     converted to nanometres (1e7 / w)
//   - JCAMP-DX and JSON: registered but not implemented; both report
//     ErrNotImplemented
//
// Files compressed with gzip, zstd, s2 or lz4 are decoded transparently by
// ReadFile and ValidateFile, or by Read with WithCompression.
//
// # Format Tokens
//
// Read and Validate take a format token rather than a Format. The token is
// lowercased and matched by containment, so ".CSV" and "mycsv" both select
// CSV. The token is resolved before the stream is touched.
//
// # Error Handling
//
// Every error is an *Error carrying a Kind. Compare with errors.Is against
// the Err* sentinels:
//
//	if errors.Is(err, spectra.ErrEmptyDataset) {
//		// nothing numeric in the file
//	}
//
// Decoding is lenient: rows that do not parse are dropped and listed in
// Series.Skipped. WithStrict turns the first row skipped after numeric data
// began into an error; leading headings are still skipped.
//
// WithMaxDecompressedSize caps how far a compressed stream may expand.
//
// Validate reports content problems through a Diagnostic and returns an
// error only for requests it cannot serve (unknown token, bad option,
// unimplemented format).
//
// # Writing
//
// CSV and Text series can be written back out with Write or WriteFile. The
// output carries a wavelength header, so it passes Validate and decodes to
// the same samples:
//
//	err := spectra.WriteFile("normalized/run.csv.zst", s, spectra.WithVerify())
//
// # Concurrency
//
// Calls share no state and are safe to run concurrently on independent
// streams. ReadMany and ValidateMany process files in parallel.
package spectra
