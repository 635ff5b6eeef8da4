package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/spectra"
	"github.com/simonhull/spectra/internal/compress"
	"github.com/simonhull/spectra/internal/spa"
)

// Useful for confirming what the decoders actually read from an export.
func main() {
	delimiter := flag.String("d", ",", "text delimiter (`\\t` or tab for tab)")
	columns := flag.String("c", "two", "text column mode: two or four")
	points := flag.Int("n", 5, "number of leading points to print")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: spectra-dump [-d delim] [-c two|four] [-n points] <file>...")
		os.Exit(1)
	}

	delim, err := spectra.ParseDelimiter(*delimiter)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	mode, err := spectra.ParseColumnMode(*columns)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	opts := []spectra.Option{spectra.WithDelimiter(delim), spectra.WithColumnMode(mode)}

	failed := false
	for _, path := range flag.Args() {
		if !dump(path, *points, opts) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func dump(path string, points int, opts []spectra.Option) bool {
	fmt.Println(path)

	c, base := compress.Detect(path)
	if c != compress.None {
		fmt.Printf("  compression: %s\n", c)
	}
	if f, err := spectra.FormatFromPath(base); err == nil && f == spectra.FormatSPA && c == compress.None {
		dumpSPAHeader(path)
	}

	d, err := spectra.ValidateFile(path, opts...)
	if err != nil {
		fmt.Printf("  validate: error: %v\n", err)
		return false
	}
	fmt.Printf("  validate: %s\n", d)
	if len(d.Header) > 0 {
		fmt.Println("  header:")
		for k, v := range d.Header {
			fmt.Printf("    %q = %q\n", k, v)
		}
	}

	s, err := spectra.ReadFile(path, opts...)
	if err != nil {
		fmt.Printf("  decode: error: %v\n", err)
		return false
	}
	fmt.Printf("  decode: %d points, %d skipped, %d non-finite, fingerprint %016x\n",
		s.Len(), len(s.Skipped), s.NonFinite, spectra.Fingerprint(s))
	if lo, hi, ok := s.Bounds(); ok {
		fmt.Printf("  x range: %g .. %g\n", lo, hi)
	}
	for _, sk := range s.Skipped {
		fmt.Printf("    skipped %s\n", sk)
	}

	i := 0
	for x, y := range s.Points() {
		if i == points {
			fmt.Printf("    ... %d more\n", s.Len()-points)
			break
		}
		fmt.Printf("    %12.4f  %g\n", x, y)
		i++
	}
	return true
}

func dumpSPAHeader(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("  spa header: error: %v\n", err)
		return
	}
	defer f.Close()

	h, err := spa.ReadHeader(f)
	if err != nil {
		fmt.Printf("  spa header: error: %v\n", err)
		return
	}
	fmt.Printf("  title:    %s\n", strings.TrimSpace(h.Title))
	fmt.Printf("  points:   %d\n", h.Points)
	fmt.Printf("  range:    %g .. %g cm-1\n", h.MinWavenumber, h.MaxWavenumber)
	fmt.Printf("  sentinel: offset %d\n", h.SentinelOffset)
	fmt.Printf("  data:     offset %d\n", h.DataOffset)
}
