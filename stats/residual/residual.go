// Package residual summarises the residuals of a fit: moments, the largest
// deviation and serial structure. A line model that leaves systematic
// structure behind shows up as few sign runs and a Durbin–Watson statistic
// well below 2.
package residual

import "math"

// Stats holds residual diagnostics.
type Stats struct {
	Length    int     `json:"length" yaml:"length" msgpack:"length"`
	Mean      float64 `json:"mean" yaml:"mean" msgpack:"mean"`
	RMS       float64 `json:"rms" yaml:"rms" msgpack:"rms"`
	Variance  float64 `json:"variance" yaml:"variance" msgpack:"variance"`
	Skewness  float64 `json:"skewness" yaml:"skewness" msgpack:"skewness"`
	Kurtosis  float64 `json:"kurtosis" yaml:"kurtosis" msgpack:"kurtosis"` // excess
	MaxAbs    float64 `json:"max_abs" yaml:"max_abs" msgpack:"max_abs"`
	MaxAbsPos int     `json:"max_abs_pos" yaml:"max_abs_pos" msgpack:"max_abs_pos"`
	// Runs is the number of maximal same-sign stretches; zeros are skipped.
	Runs int `json:"runs" yaml:"runs" msgpack:"runs"`
	// RunsZ is the Wald–Wolfowitz z-score of Runs. Strongly negative values
	// mean the residuals are clustered.
	RunsZ        float64 `json:"runs_z" yaml:"runs_z" msgpack:"runs_z"`
	DurbinWatson float64 `json:"durbin_watson" yaml:"durbin_watson" msgpack:"durbin_watson"`
}

// Calculate computes every statistic. All fields are finite; degenerate
// inputs give zeros.
func Calculate(r []float64) Stats {
	n := len(r)
	if n == 0 {
		return Stats{}
	}

	s := Stats{Length: n}
	s.Mean, s.Variance, s.Skewness, s.Kurtosis = Moments(r)

	var sumSq float64

	for i, x := range r {
		sumSq += x * x

		if a := math.Abs(x); a > s.MaxAbs {
			s.MaxAbs, s.MaxAbsPos = a, i
		}
	}

	s.RMS = math.Sqrt(sumSq / float64(n))
	s.Runs, s.RunsZ = RunsTest(r)
	s.DurbinWatson = DurbinWatson(r)

	return s
}

// Moments returns the mean, population variance, skewness and excess
// kurtosis using Welford's online update.
func Moments(r []float64) (mean, variance, skewness, kurtosis float64) {
	n := len(r)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var m2, m3, m4 float64

	for i, x := range r {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN
	}

	nf := float64(n)

	variance = m2 / nf
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return mean, variance, skewness, kurtosis
}

// RunsTest counts same-sign runs and returns the Wald–Wolfowitz z-score
// against the count expected for independent signs. Zero residuals are
// skipped. z is 0 when fewer than two signs of each kind exist.
func RunsTest(r []float64) (runs int, z float64) {
	var pos, neg int

	prev := 0

	for _, x := range r {
		sign := 0

		switch {
		case x > 0:
			sign = 1
			pos++
		case x < 0:
			sign = -1
			neg++
		default:
			continue
		}

		if sign != prev {
			runs++
			prev = sign
		}
	}

	n := float64(pos + neg)
	if pos < 2 || neg < 2 {
		return runs, 0
	}

	mu := 2*float64(pos)*float64(neg)/n + 1
	variance := (mu - 1) * (mu - 2) / (n - 1)

	if !(variance > 0) {
		return runs, 0
	}

	return runs, (float64(runs) - mu) / math.Sqrt(variance)
}

// DurbinWatson returns Σ(rᵢ−rᵢ₋₁)²/Σrᵢ². Values near 2 indicate
// uncorrelated residuals, values near 0 strong positive correlation.
// It is 0 for fewer than two samples or all-zero residuals.
func DurbinWatson(r []float64) float64 {
	if len(r) < 2 {
		return 0
	}

	var num, den float64

	for i, x := range r {
		den += x * x

		if i > 0 {
			d := x - r[i-1]
			num += d * d
		}
	}

	if den == 0 {
		return 0
	}

	return num / den
}
