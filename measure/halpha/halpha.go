package halpha

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cwbudde/algo-zeeman/fit/continuum"
	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/internal/logger"
	"github.com/cwbudde/algo-zeeman/spectrum"
)

// ModelFit is the outcome of one triplet fit. Exactly one of Result and Err
// is meaningful.
type ModelFit struct {
	Kind   ModelKind
	Result triplet.Result
	Err    error
}

// OK reports whether the fit succeeded.
func (m ModelFit) OK() bool { return m.Err == nil }

// Analysis holds every intermediate product of a run.
type Analysis struct {
	Config   Config
	Spectrum spectrum.Spectrum

	BroadRegion spectrum.Region
	Broad       spectrum.Spectrum
	AbsRegion   spectrum.Region
	Absorption  spectrum.Spectrum

	// Excised are the dip and artifact ranges, as indices into Broad.
	Excised []spectrum.Range
	// Masked is Broad without the excised ranges; the continuum is fitted to it.
	Masked spectrum.Masked

	Continuum       continuum.Model
	ContinuumValues []float64
	Normalized      []float64
	NormalizedError []float64

	Window spectrum.Window
	Fits   []ModelFit
}

// Fit returns the fit of the given model, if it was run.
func (a *Analysis) Fit(kind ModelKind) (ModelFit, bool) {
	i := slices.IndexFunc(a.Fits, func(f ModelFit) bool { return f.Kind == kind })
	if i < 0 {
		return ModelFit{}, false
	}

	return a.Fits[i], true
}

// Run analyses s.
//
// Failures before the triplet fits return a nil Analysis. Triplet fit
// failures are recorded on the corresponding ModelFit and also returned
// joined, alongside the Analysis.
func Run(ctx context.Context, s spectrum.Spectrum, cfg Config) (*Analysis, error) {
	cfg = normalizeConfig(cfg)

	if err := cfg.Regions.Validate(); err != nil {
		return nil, err
	}

	a := &Analysis{Config: cfg, Spectrum: s}
	if err := a.prepare(ctx); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.Fits = make([]ModelFit, len(cfg.Models))

	var wg sync.WaitGroup
	for i, kind := range cfg.Models {
		wg.Go(func() {
			a.Fits[i] = a.fitModel(ctx, kind)
		})
	}
	wg.Wait()

	var errs []error
	for _, f := range a.Fits {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s fit: %w", f.Kind, f.Err))
		}
	}

	return a, errors.Join(errs...)
}

func (a *Analysis) prepare(ctx context.Context) error {
	r := a.Config.Regions

	var err error

	a.BroadRegion, err = spectrum.SliceByWavelength(a.Spectrum, r.BroadLow, r.BroadHigh)
	if err != nil {
		return fmt.Errorf("broad window: %w", err)
	}

	a.Broad = a.Spectrum.Slice(a.BroadRegion)

	a.AbsRegion, err = spectrum.SliceByWavelength(a.Spectrum, r.AbsLow, r.AbsHigh)
	if err != nil {
		return fmt.Errorf("absorption window: %w", err)
	}

	a.Absorption = a.Spectrum.Slice(a.AbsRegion)

	logger.DebugKV(ctx, "windows selected",
		"broad", a.Broad.Len(), "absorption", a.Absorption.Len())

	bands := make([][2]float64, 0, 1+len(a.Config.Artifacts))
	bands = append(bands, [2]float64{r.DipLow, r.DipHigh})

	for _, b := range a.Config.Artifacts {
		bands = append(bands, [2]float64{b.Low, b.High})
	}

	a.Masked, a.Excised, err = spectrum.ExciseWavelengths(a.Broad, bands...)
	if err != nil {
		return fmt.Errorf("excision: %w", err)
	}

	start := time.Now()

	a.Continuum, err = continuum.Fit(a.Masked.Wavelength, a.Masked.Flux, a.Config.ContinuumSeed, a.Config.FitOptions...)
	if err != nil {
		return fmt.Errorf("continuum: %w", err)
	}

	logger.DebugKV(ctx, "continuum fitted",
		"samples", a.Masked.Len(), "rss", a.Continuum.RSS, "elapsed", time.Since(start))

	a.ContinuumValues = a.Continuum.Eval(a.Broad.Wavelength)

	a.Normalized, err = continuum.Normalize(a.Broad.Flux, a.ContinuumValues)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}

	if a.Broad.Error != nil {
		a.NormalizedError, err = continuum.Normalize(a.Broad.Error, a.ContinuumValues)
		if err != nil {
			return fmt.Errorf("normalise errors: %w", err)
		}
	}

	a.Window, err = spectrum.Clip(a.Broad.Wavelength, a.Normalized, a.NormalizedError, r.ClipLow, r.ClipHigh)
	if err != nil {
		return fmt.Errorf("triplet window: %w", err)
	}

	return nil
}

func (a *Analysis) fitModel(ctx context.Context, kind ModelKind) ModelFit {
	d := triplet.Data{Wavelength: a.Window.Wavelength, Flux: a.Window.Flux}
	if a.Config.Weighted {
		d.Sigma = a.Window.Error
	}

	opts := a.Config.options(kind)
	start := time.Now()

	var (
		res triplet.Result
		err error
	)

	switch kind {
	case KindVoigt:
		res, err = triplet.FitVoigt(d, a.Config.VoigtSeed, a.Config.Law, opts...)
	case KindLorentzian:
		res, err = triplet.FitLorentzian(d, a.Config.LorentzianSeed, a.Config.Law, opts...)
	default:
		err = fmt.Errorf("halpha: unknown model %q", kind)
	}

	if err != nil {
		logger.WarnKV(ctx, "triplet fit failed", "model", kind, "error", err)
		return ModelFit{Kind: kind, Err: err}
	}

	lambda0, lambda0Sigma, _ := res.Param("lambda0")
	b, bSigma, _ := res.Param("B")
	logger.InfoKV(ctx, "triplet fitted",
		"model", kind,
		"lambda0", lambda0, "lambda0_sigma", lambda0Sigma,
		"B", b, "B_sigma", bSigma,
		"rss", res.RSS, "evaluations", res.Evaluations,
		"elapsed", time.Since(start))

	return ModelFit{Kind: kind, Result: res}
}
