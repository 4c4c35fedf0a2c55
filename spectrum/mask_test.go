package spectrum

import (
	"errors"
	"slices"
	"testing"

	"github.com/cwbudde/algo-zeeman/core"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// deleteDescending mirrors the reference behaviour: in-place deletion with
// ranges applied from the highest start downwards.
func deleteDescending(xs []float64, ranges []Range) []float64 {
	out := slices.Clone(xs)
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b Range) int { return b.Start - a.Start })
	for _, r := range sorted {
		end := min(r.End, len(out))
		if r.Start >= end {
			continue
		}
		out = slices.Delete(out, r.Start, end)
	}
	return out
}

func TestExciseOrderIndependent(t *testing.T) {
	w, f := seq(10), seq(10)
	want := []float64{0, 3, 4, 8, 9}

	for _, ranges := range [][]Range{
		{{Start: 5, End: 8}, {Start: 1, End: 3}},
		{{Start: 1, End: 3}, {Start: 5, End: 8}},
	} {
		m, err := Excise(w, f, ranges...)
		if err != nil {
			t.Fatalf("Excise() error = %v", err)
		}
		if !slices.Equal(m.Wavelength, want) || !slices.Equal(m.Flux, want) {
			t.Fatalf("Excise(%v) = %v / %v, want %v", ranges, m.Wavelength, m.Flux, want)
		}
		if got := deleteDescending(w, ranges); !slices.Equal(got, want) {
			t.Fatalf("descending deletion = %v, want %v", got, want)
		}
	}
}

func TestExciseBounds(t *testing.T) {
	w, f := seq(10), seq(10)

	tests := []struct {
		name   string
		ranges []Range
		want   []float64
	}{
		{name: "past end truncates", ranges: []Range{{Start: 7, End: 25}}, want: []float64{0, 1, 2, 3, 4, 5, 6}},
		{name: "entirely past end", ranges: []Range{{Start: 12, End: 20}}, want: seq(10)},
		{name: "negative start clamps", ranges: []Range{{Start: -3, End: 2}}, want: []float64{2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "reversed removes nothing", ranges: []Range{{Start: 6, End: 4}}, want: seq(10)},
		{name: "overlap merges", ranges: []Range{{Start: 2, End: 6}, {Start: 4, End: 8}}, want: []float64{0, 1, 8, 9}},
		{name: "no ranges copies", ranges: nil, want: seq(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Excise(w, f, tt.ranges...)
			if err != nil {
				t.Fatalf("Excise() error = %v", err)
			}
			if !slices.Equal(m.Wavelength, tt.want) {
				t.Fatalf("wavelength = %v, want %v", m.Wavelength, tt.want)
			}
			if len(m.Wavelength) != len(m.Flux) {
				t.Fatalf("length mismatch %d vs %d", len(m.Wavelength), len(m.Flux))
			}
		})
	}

	if !slices.Equal(w, seq(10)) {
		t.Fatal("Excise modified its input")
	}
}

func TestExciseShapeMismatch(t *testing.T) {
	if _, err := Excise(seq(4), seq(3)); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("error = %v, want ErrShapeMismatch", err)
	}
}

func TestExciseWavelengths(t *testing.T) {
	s := linearSpectrum(t, 6400, 10, 40) // 6400 .. 6790

	m, ranges, err := ExciseWavelengths(s, [2]float64{6500, 6650}, [2]float64{6700, 6720})
	if err != nil {
		t.Fatalf("ExciseWavelengths() error = %v", err)
	}
	if len(ranges) != 2 || ranges[0] != (Range{Start: 10, End: 25}) || ranges[1] != (Range{Start: 30, End: 32}) {
		t.Fatalf("ranges = %v", ranges)
	}
	if m.Len() != 40-15-2 {
		t.Fatalf("masked len = %d, want %d", m.Len(), 40-15-2)
	}
	for _, x := range m.Wavelength {
		if (x >= 6500 && x < 6650) || (x >= 6700 && x < 6720) {
			t.Fatalf("wavelength %v survived excision", x)
		}
	}
}
