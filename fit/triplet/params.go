package triplet

// VoigtParams is the parameter vector of the Voigt model.
type VoigtParams struct {
	Lambda0 float64 `json:"lambda0" yaml:"lambda0" mapstructure:"lambda0"`
	B       float64 `json:"b" yaml:"b" mapstructure:"b"`
	A1      float64 `json:"a1" yaml:"a1" mapstructure:"a1"`
	Sigma1  float64 `json:"sigma1" yaml:"sigma1" mapstructure:"sigma1"`
	Gamma1  float64 `json:"gamma1" yaml:"gamma1" mapstructure:"gamma1"`
	A2      float64 `json:"a2" yaml:"a2" mapstructure:"a2"`
	Sigma2  float64 `json:"sigma2" yaml:"sigma2" mapstructure:"sigma2"`
	Gamma2  float64 `json:"gamma2" yaml:"gamma2" mapstructure:"gamma2"`
}

// DefaultVoigtSeed is the starting point used for Hα in DA/DAH white dwarfs.
var DefaultVoigtSeed = VoigtParams{
	Lambda0: 6562.8, B: 2,
	A1: 5, Sigma1: 10, Gamma1: 1.85032,
	A2: 0.5, Sigma2: 10, Gamma2: 1.85032,
}

// Slice returns the parameters in model order.
func (p VoigtParams) Slice() []float64 {
	return []float64{p.Lambda0, p.B, p.A1, p.Sigma1, p.Gamma1, p.A2, p.Sigma2, p.Gamma2}
}

// VoigtParamsFrom is the inverse of VoigtParams.Slice.
func VoigtParamsFrom(s []float64) VoigtParams {
	return VoigtParams{s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]}
}

// LorentzianParams is the parameter vector of the Lorentzian model.
type LorentzianParams struct {
	Lambda0 float64 `json:"lambda0" yaml:"lambda0" mapstructure:"lambda0"`
	B       float64 `json:"b" yaml:"b" mapstructure:"b"`
	Amp1    float64 `json:"amp1" yaml:"amp1" mapstructure:"amp1"`
	Wid1    float64 `json:"wid1" yaml:"wid1" mapstructure:"wid1"`
	Amp2    float64 `json:"amp2" yaml:"amp2" mapstructure:"amp2"`
	Wid2    float64 `json:"wid2" yaml:"wid2" mapstructure:"wid2"`
}

// DefaultLorentzianSeed is the starting point used for Hα in DA/DAH white dwarfs.
var DefaultLorentzianSeed = LorentzianParams{
	Lambda0: 6562.8, B: 1,
	Amp1: 0.8, Wid1: 10,
	Amp2: 0.8, Wid2: 10,
}

// Slice returns the parameters in model order.
func (p LorentzianParams) Slice() []float64 {
	return []float64{p.Lambda0, p.B, p.Amp1, p.Wid1, p.Amp2, p.Wid2}
}

// LorentzianParamsFrom is the inverse of LorentzianParams.Slice.
func LorentzianParamsFrom(s []float64) LorentzianParams {
	return LorentzianParams{s[0], s[1], s[2], s[3], s[4], s[5]}
}
