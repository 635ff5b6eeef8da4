package spectra_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/spectra"
)

func ExampleRead() {
	input := "Wavelength (nm),Absorbance\n500,0.10\n510,0.12\nsaturated,--\n520,0.15\n"

	s, err := spectra.Read(strings.NewReader(input), "csv")
	if err != nil {
		fmt.Println(err)
		return
	}

	for x, y := range s.Points() {
		fmt.Printf("%.0f nm: %.2f\n", x, y)
	}
	fmt.Println("skipped:", len(s.Skipped))
	// Output:
	// 500 nm: 0.10
	// 510 nm: 0.12
	// 520 nm: 0.15
	// skipped: 2
}

func ExampleValidate() {
	d, err := spectra.Validate(strings.NewReader("nm,counts\n500,12\n"), "csv")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.Valid, d.Kind)
	// Output: false MissingWavelengthHeader
}

func ExampleParseFormat() {
	for _, token := range []string{".CSV", "mycsv", "spa", "xyz"} {
		f, err := spectra.ParseFormat(token)
		if errors.Is(err, spectra.ErrUnsupportedFormat) {
			fmt.Println(token, "unsupported")
			continue
		}
		fmt.Println(token, f)
	}
	// Output:
	// .CSV CSV
	// mycsv CSV
	// spa SPA
	// xyz unsupported
}
