package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zeeman/core"
	"github.com/cwbudde/algo-zeeman/fit"
	"github.com/cwbudde/algo-zeeman/fit/continuum"
	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/spectrum"
)

func analysis() *halpha.Analysis {
	cfg := halpha.DefaultConfig()
	cfg.Artifacts = []halpha.Band{{Low: 6300, High: 6310}}

	lor := triplet.Result{
		Result: fit.Result{
			Params:           []float64{6562.8, 1.5, 0.3, 2, 0.4, 2},
			Sigmas:           []float64{0.01, 0.002, 0.001, 0.01, 0.001, 0.01},
			Residuals:        []float64{0.01, -0.02, 0.03, -0.01, 0.02},
			RSS:              0.25,
			ChiSquare:        0.25,
			DOF:              694,
			ReducedChiSquare: 0.25 / 694,
			Evaluations:      37,
		},
		Model:      "lorentzian",
		Law:        "empirical",
		Names:      triplet.Lorentzian{}.ParamNames(),
		Shift:      30.28,
		ShiftSigma: 0.04,
	}

	return &halpha.Analysis{
		Config:   cfg,
		Spectrum: spectrum.Spectrum{Wavelength: make([]float64, 2401)},
		Masked:   spectrum.Masked{Wavelength: make([]float64, 1300)},
		Continuum: continuum.Model{
			Coeffs: [4]float64{1e-8, -2e-4, 1.3, -2800},
			RSS:    1.5,
		},
		Window: spectrum.Window{Wavelength: make([]float64, 699)},
		Fits: []halpha.ModelFit{
			{Kind: halpha.KindVoigt, Err: &core.ConvergenceError{Stage: "voigt", Reason: "evaluation budget of 2 exhausted"}},
			{Kind: halpha.KindLorentzian, Result: lor},
		},
	}
}

func TestNew(t *testing.T) {
	doc := New("wd.dat", analysis())

	assert.Len(t, doc.RunID, 36)
	assert.Equal(t, "empirical", doc.Law)
	assert.Equal(t, 2401, doc.Samples)
	assert.Equal(t, 1300, doc.Continuum.Samples)
	assert.Equal(t, 699, doc.Window)
	require.Len(t, doc.Fits, 2)

	assert.False(t, doc.Fits[0].OK())
	assert.Contains(t, doc.Fits[0].Error, "budget")

	lor := doc.Fits[1]
	require.True(t, lor.OK())
	b, ok := lor.Param("B")
	require.True(t, ok)
	assert.InDelta(t, 1.5, b.Value, 0)
	assert.InDelta(t, 0.002, b.Sigma, 0)
	assert.Equal(t, 37, lor.Evaluations)
	assert.Equal(t, 5, lor.Diagnostics.Length)
	assert.InDelta(t, 0.03, lor.Diagnostics.MaxAbs, 0)
	assert.Equal(t, 5, lor.Diagnostics.Runs)
	assert.Zero(t, doc.Fits[0].Diagnostics.Length)

	assert.NotEqual(t, doc.RunID, New("wd.dat", analysis()).RunID)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := New("wd.dat", analysis())

	for _, format := range []string{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, want))

			got, err := Decode(&buf, format)
			require.NoError(t, err)

			assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
			got.CreatedAt = want.CreatedAt
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer

	err := Encode(&buf, "xml", New("wd.dat", analysis()))
	require.True(t, errors.Is(err, errUnknownFormat))

	_, err = Decode(&buf, FormatText)
	require.ErrorIs(t, err, errUnknownFormat)
}

func TestSummary(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, New("wd.dat", analysis())))

	out := buf.String()
	assert.Contains(t, out, "wd.dat")
	assert.Contains(t, out, "voigt fit failed")
	assert.Contains(t, out, "lorentzian fit (37 evaluations)")
	assert.Contains(t, out, "6562.8 ± 0.01")
	assert.Contains(t, out, "Δλ")
	assert.Contains(t, out, "runs 5")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".json", Extension(FormatJSON))
	assert.Equal(t, ".msgpack", Extension(FormatMsgpack))
	assert.Equal(t, ".txt", Extension(FormatText))
}
