package spectrum

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-zeeman/core"
)

func TestRead(t *testing.T) {
	in := "6500.0 1.25 0.01\n\n6500.2\t1.5e0  0.02\n 6500.4 -0.5 0.03 \n"

	s, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if s.Wavelength[1] != 6500.2 || s.Flux[1] != 1.5 || s.Error[2] != 0.03 {
		t.Fatalf("unexpected columns %v %v %v", s.Wavelength, s.Flux, s.Error)
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantLine int
	}{
		{name: "two fields", in: "6500 1 0.1\n6501 1\n", wantLine: 2},
		{name: "four fields", in: "6500 1 0.1 7\n", wantLine: 1},
		{name: "not numeric", in: "6500 1 0.1\n\n6501 abc 0.1\n", wantLine: 3},
		{name: "header", in: "wavelength flux error\n6500 1 0.1\n", wantLine: 1},
		{name: "comment", in: "6500 1 0.1\n# sky line\n", wantLine: 2},
		{name: "NaN flux", in: "6500 1.0 0.1\n6501 NaN 0.1\n6502 1.0 0.1\n", wantLine: 2},
		{name: "nan error", in: "6500 1.0 0.1\n6501 1.0 0.1\n6502 1.0 nan\n", wantLine: 3},
		{name: "Inf flux", in: "6500 +Inf 0.1\n", wantLine: 1},
		{name: "infinite wavelength", in: "6500 1 0.1\ninf 1 0.1\n", wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if !errors.Is(err, core.ErrParse) {
				t.Fatalf("error = %v, want ErrParse", err)
			}
			var pe *core.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *core.ParseError", err)
			}
			if pe.Line != tt.wantLine {
				t.Fatalf("line = %d, want %d", pe.Line, tt.wantLine)
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	if _, err := Read(strings.NewReader("\n\n")); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("error = %v, want ErrEmptyInput", err)
	}
}

func TestReadUnsorted(t *testing.T) {
	if _, err := Read(strings.NewReader("6501 1 0.1\n6500 1 0.1\n")); !errors.Is(err, core.ErrInvalidRegion) {
		t.Fatalf("error = %v, want ErrInvalidRegion", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wd.dat")
	if err := os.WriteFile(path, []byte("6500 1 0.1\n6501 2 0.2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.dat")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewShapeMismatch(t *testing.T) {
	if _, err := New([]float64{1, 2}, []float64{1}, []float64{1, 2}); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("error = %v, want ErrShapeMismatch", err)
	}
}
