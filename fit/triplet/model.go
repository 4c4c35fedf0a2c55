package triplet

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-zeeman/lineshape"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

// Model is a triplet line model with a fixed parameter layout. Parameter 0
// is always λ₀ and parameter 1 is B.
type Model interface {
	Name() string
	ParamNames() []string
	// Eval writes the normalised model flux at every x to dst.
	Eval(dst, x, params []float64)
	// Components returns the σ⁻, π and σ⁺ components for params.
	Components(params []float64) [3]Component
	// Law returns the splitting law placing the outer components.
	Law() zeeman.Law
	// even lists the parameters the model is even in.
	even() []int
}

// Shape selects the profile of a Component.
type Shape int

const (
	ShapeVoigt Shape = iota
	ShapeLorentzian
)

// Component is one line of the triplet.
type Component struct {
	Label     string
	Shape     Shape
	Center    float64
	Amplitude float64
	// Width is σ for Voigt components and the half-width for Lorentzians.
	Width float64
	// Gamma is the Lorentzian half-width of a Voigt component; zero for Lorentzians.
	Gamma float64
}

// Eval evaluates the component profile at x.
func (c Component) Eval(x float64) float64 {
	if c.Shape == ShapeLorentzian {
		return lineshape.Lorentzian(x, c.Amplitude, c.Center, c.Width)
	}

	return lineshape.Voigt(x, c.Amplitude, c.Center, c.Width, c.Gamma)
}

const (
	labelMinus = "sigma-"
	labelPi    = "pi"
	labelPlus  = "sigma+"
)

// Voigt is the triple-Voigt model with parameters
// (λ₀, B, A1, σ1, γ1, A2, σ2, γ2); index 1 widths belong to the outer pair.
type Voigt struct {
	// SplittingLaw defaults to zeeman.Empirical.
	SplittingLaw zeeman.Law
}

// Name implements Model.
func (Voigt) Name() string { return "voigt" }

// ParamNames implements Model.
func (Voigt) ParamNames() []string {
	return []string{"lambda0", "B", "A1", "sigma1", "gamma1", "A2", "sigma2", "gamma2"}
}

// Law implements Model.
func (m Voigt) Law() zeeman.Law { return lawOrDefault(m.SplittingLaw) }

func (Voigt) even() []int { return []int{1, 3, 4, 6, 7} }

// Components implements Model.
func (m Voigt) Components(p []float64) [3]Component {
	minus, center, plus := zeeman.Centers(m.Law(), p[0], p[1])

	return [3]Component{
		{Label: labelMinus, Center: minus, Amplitude: p[2], Width: p[3], Gamma: p[4]},
		{Label: labelPi, Center: center, Amplitude: p[5], Width: p[6], Gamma: p[7]},
		{Label: labelPlus, Center: plus, Amplitude: p[2], Width: p[3], Gamma: p[4]},
	}
}

// Eval implements Model.
func (m Voigt) Eval(dst, x, p []float64) {
	comps := m.Components(p)
	buf := make([]float64, len(x))

	lineshape.VoigtBlock(dst, x, comps[0].Amplitude, comps[0].Center, comps[0].Width, comps[0].Gamma)

	for _, c := range comps[1:] {
		lineshape.VoigtBlock(buf, x, c.Amplitude, c.Center, c.Width, c.Gamma)
		vecmath.AddBlockInPlace(dst, buf)
	}

	absorb(dst)
}

// Lorentzian is the triple-Lorentzian model with parameters
// (λ₀, B, amp1, wid1, amp2, wid2); index 1 belongs to the outer pair.
type Lorentzian struct {
	// SplittingLaw defaults to zeeman.Empirical.
	SplittingLaw zeeman.Law
}

// Name implements Model.
func (Lorentzian) Name() string { return "lorentzian" }

// ParamNames implements Model.
func (Lorentzian) ParamNames() []string {
	return []string{"lambda0", "B", "amp1", "wid1", "amp2", "wid2"}
}

// Law implements Model.
func (m Lorentzian) Law() zeeman.Law { return lawOrDefault(m.SplittingLaw) }

func (Lorentzian) even() []int { return []int{1, 3, 5} }

// Components implements Model.
func (m Lorentzian) Components(p []float64) [3]Component {
	minus, center, plus := zeeman.Centers(m.Law(), p[0], p[1])

	return [3]Component{
		{Label: labelMinus, Shape: ShapeLorentzian, Center: minus, Amplitude: p[2], Width: p[3]},
		{Label: labelPi, Shape: ShapeLorentzian, Center: center, Amplitude: p[4], Width: p[5]},
		{Label: labelPlus, Shape: ShapeLorentzian, Center: plus, Amplitude: p[2], Width: p[3]},
	}
}

// Eval implements Model.
func (m Lorentzian) Eval(dst, x, p []float64) {
	comps := m.Components(p)
	buf := make([]float64, len(x))

	lineshape.LorentzianBlock(dst, x, comps[0].Amplitude, comps[0].Center, comps[0].Width)

	for _, c := range comps[1:] {
		lineshape.LorentzianBlock(buf, x, c.Amplitude, c.Center, c.Width)
		vecmath.AddBlockInPlace(dst, buf)
	}

	absorb(dst)
}

// absorb turns a summed depth into normalised flux 1 − depth in place.
func absorb(depth []float64) {
	vecmath.ScaleBlock(depth, depth, -1)

	for i := range depth {
		depth[i]++
	}
}

func lawOrDefault(l zeeman.Law) zeeman.Law {
	if l == nil {
		return zeeman.Empirical
	}

	return l
}
