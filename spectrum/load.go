package spectrum

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-zeeman/core"
)

// fieldsPerLine is the number of columns: wavelength, flux, error.
const fieldsPerLine = 3

// Load reads a spectrum file from path. See Read for the format.
func Load(path string) (Spectrum, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: %s: %w", path, err)
	}

	return s, nil
}

// Read parses whitespace-delimited lines of exactly three numeric fields,
// "wavelength flux error", with no header. Blank lines are skipped. The
// first malformed line, including one holding NaN or ±Inf, aborts the read
// with a *core.ParseError.
func Read(r io.Reader) (Spectrum, error) {
	var wavelength, flux, errs []float64

	sc := bufio.NewScanner(r)
	line := 0

	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != fieldsPerLine {
			return Spectrum{}, &core.ParseError{
				Line:   line,
				Text:   text,
				Reason: fmt.Sprintf("want %d fields, got %d", fieldsPerLine, len(fields)),
			}
		}

		var vals [fieldsPerLine]float64

		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Spectrum{}, &core.ParseError{
					Line:   line,
					Text:   text,
					Reason: fmt.Sprintf("field %d (%q) is not a number", i+1, field),
				}
			}

			if !core.IsFinite(v) {
				return Spectrum{}, &core.ParseError{
					Line:   line,
					Text:   text,
					Reason: fmt.Sprintf("field %d (%q) is not finite", i+1, field),
				}
			}

			vals[i] = v
		}

		wavelength = append(wavelength, vals[0])
		flux = append(flux, vals[1])
		errs = append(errs, vals[2])
	}

	if err := sc.Err(); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: read: %w", err)
	}

	return New(wavelength, flux, errs)
}
