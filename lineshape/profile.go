package lineshape

import "math"

var sqrt2Pi = math.Sqrt(2 * math.Pi)

// Gaussian returns the area-normalised Gaussian A/(σ√(2π))·exp(−(x−c)²/2σ²).
// A zero σ yields zero.
func Gaussian(x, amp, center, sigma float64) float64 {
	sigma = math.Abs(sigma)
	if sigma == 0 {
		return 0
	}

	u := (x - center) / sigma

	return amp / (sigma * sqrt2Pi) * math.Exp(-0.5*u*u)
}

// Lorentzian returns the peak-height Lorentzian A·w²/((x−c)²+w²), which
// equals A at x = c. A zero width yields zero.
func Lorentzian(x, amp, center, width float64) float64 {
	w2 := width * width
	if w2 == 0 {
		return 0
	}

	d := x - center

	return amp * w2 / (d*d + w2)
}

// Voigt returns the area-normalised Voigt profile with Gaussian width σ and
// Lorentzian half-width γ. σ = 0 degenerates to the area-normalised
// Lorentzian A·γ/(π((x−c)²+γ²)); σ = γ = 0 yields zero.
func Voigt(x, amp, center, sigma, gamma float64) float64 {
	sigma = math.Abs(sigma)
	gamma = math.Abs(gamma)

	if sigma == 0 {
		if gamma == 0 {
			return 0
		}

		d := x - center

		return amp * gamma / (math.Pi * (d*d + gamma*gamma))
	}

	s := sigma * math.Sqrt2
	z := complex((x-center)/s, gamma/s)

	return amp * real(Faddeeva(z)) / (sigma * sqrt2Pi)
}

// VoigtBlock writes Voigt(x[i], ...) to dst[i]. dst and x must have equal length.
func VoigtBlock(dst, x []float64, amp, center, sigma, gamma float64) {
	for i, xi := range x {
		dst[i] = Voigt(xi, amp, center, sigma, gamma)
	}
}

// LorentzianBlock writes Lorentzian(x[i], ...) to dst[i]. dst and x must have equal length.
func LorentzianBlock(dst, x []float64, amp, center, width float64) {
	for i, xi := range x {
		dst[i] = Lorentzian(xi, amp, center, width)
	}
}
