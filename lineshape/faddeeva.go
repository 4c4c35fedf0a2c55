package lineshape

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DefaultOrder is the expansion order used by Faddeeva. It yields about
// 1e-13 relative accuracy over the upper half-plane.
const DefaultOrder = 32

var errInvalidOrder = errors.New("lineshape: expansion order must be positive")

// Weideman evaluates w(z) = exp(−z²)·erfc(−iz) with an order-N rational
// expansion in (L+iz)/(L−iz).
type Weideman struct {
	l     float64
	coeff []float64 // a₁..a_N, lowest power first
}

// NewWeideman builds the expansion of the given order.
func NewWeideman(order int) (*Weideman, error) {
	if order <= 0 {
		return nil, errInvalidOrder
	}

	m := 2 * order
	size := 2 * m
	l := math.Sqrt(float64(order) / math.Sqrt2)

	// Kernel sampled at t = L·tan(θ/2), θ = kπ/M, stored in FFT order:
	// index j holds k = j for j < M and k = j − 2M above; k = −M is zero.
	in := make([]complex128, size)

	for j := range size {
		if j == m {
			continue
		}

		k := j
		if j > m {
			k = j - size
		}

		t := l * math.Tan(float64(k)*math.Pi/float64(2*m))
		in[j] = complex(math.Exp(-t*t)*(l*l+t*t), 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("lineshape: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("lineshape: forward FFT failed: %w", err)
	}

	coeff := make([]float64, order)
	for n := range order {
		coeff[n] = real(out[n+1]) / float64(size)
	}

	return &Weideman{l: l, coeff: coeff}, nil
}

// Eval returns w(z). The lower half-plane uses w(z) = 2·exp(−z²) − w(−z).
func (w *Weideman) Eval(z complex128) complex128 {
	if imag(z) < 0 {
		return 2*cmplx.Exp(-z*z) - w.upper(-z)
	}

	return w.upper(z)
}

func (w *Weideman) upper(z complex128) complex128 {
	l := complex(w.l, 0)
	iz := complex(0, 1) * z
	den := l - iz
	zz := (l + iz) / den

	var p complex128
	for n := len(w.coeff) - 1; n >= 0; n-- {
		p = p*zz + complex(w.coeff[n], 0)
	}

	return 2*p/(den*den) + complex(1/math.Sqrt(math.Pi), 0)/den
}

var defaultWeideman = sync.OnceValues(func() (*Weideman, error) {
	return NewWeideman(DefaultOrder)
})

// Faddeeva returns w(z) using the DefaultOrder expansion.
func Faddeeva(z complex128) complex128 {
	w, err := defaultWeideman()
	if err != nil {
		panic(err)
	}

	return w.Eval(z)
}
