package spectrum

import (
	"errors"
	"slices"
	"testing"

	"github.com/cwbudde/algo-zeeman/core"
)

func TestClipStrictBounds(t *testing.T) {
	w := []float64{6390, 6400, 6410, 6740, 6750, 6760}
	f := []float64{1, 2, 3, 4, 5, 6}
	e := []float64{.1, .2, .3, .4, .5, .6}

	win, err := Clip(w, f, e, 6400, 6750)
	if err != nil {
		t.Fatalf("Clip() error = %v", err)
	}
	if !slices.Equal(win.Wavelength, []float64{6410, 6740}) {
		t.Fatalf("wavelength = %v", win.Wavelength)
	}
	if !slices.Equal(win.Flux, []float64{3, 4}) || !slices.Equal(win.Error, []float64{.3, .4}) {
		t.Fatalf("flux/error = %v / %v", win.Flux, win.Error)
	}
}

func TestClipWithoutErrors(t *testing.T) {
	win, err := Clip([]float64{1, 2, 3}, []float64{4, 5, 6}, nil, 1, 3)
	if err != nil {
		t.Fatalf("Clip() error = %v", err)
	}
	if win.Error != nil || win.Len() != 1 {
		t.Fatalf("unexpected window %+v", win)
	}
}

func TestClipErrors(t *testing.T) {
	if _, err := Clip([]float64{1, 2}, []float64{1, 2}, nil, 5, 6); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("error = %v, want ErrEmptyInput", err)
	}
	if _, err := Clip([]float64{1, 2}, []float64{1}, nil, 0, 6); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("error = %v, want ErrShapeMismatch", err)
	}
}
