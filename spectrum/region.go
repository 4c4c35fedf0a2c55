package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zeeman/core"
)

// Region is a half-open index range [Start, End) into a Spectrum.
type Region struct {
	Start int
	End   int
}

// Len returns the number of samples covered.
func (r Region) Len() int { return r.End - r.Start }

// Empty reports whether the region covers no samples.
func (r Region) Empty() bool { return r.End <= r.Start }

// Range converts the region to an excision range.
func (r Region) Range() Range { return Range(r) }

// NearestIndex returns the index i minimising |values[i]-target|. Ties go to
// the first occurrence.
func NearestIndex(values []float64, target float64) (int, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: nearest index of %v in empty sequence", core.ErrEmptyInput, target)
	}

	best := 0
	bestDist := math.Abs(values[0] - target)

	for i := 1; i < len(values); i++ {
		if d := math.Abs(values[i] - target); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best, nil
}

// SliceByWavelength resolves low and high to their nearest samples and
// returns the region between them. The sample nearest to high is excluded.
//
// When the resolved bounds are reversed or equal the returned region is
// empty (Start == End) and the error wraps core.ErrInvalidRegion. The region
// always satisfies 0 <= Start <= End <= s.Len().
func SliceByWavelength(s Spectrum, low, high float64) (Region, error) {
	start, err := NearestIndex(s.Wavelength, low)
	if err != nil {
		return Region{}, err
	}

	end, err := NearestIndex(s.Wavelength, high)
	if err != nil {
		return Region{}, err
	}

	if end <= start {
		return Region{Start: start, End: start},
			fmt.Errorf("%w: window [%v, %v] resolves to no samples (indices %d..%d)",
				core.ErrInvalidRegion, low, high, start, end)
	}

	return Region{Start: start, End: end}, nil
}
