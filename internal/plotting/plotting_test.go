package plotting

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/internal/testutil"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/spectrum"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

func analysis(t *testing.T) *halpha.Analysis {
	t.Helper()

	x := testutil.Grid(6100, 1, 1000)
	flux, errs := testutil.SyntheticSpectrum(x, [4]float64{0, 0, 0, 50}, testutil.Triplet{
		Lambda0: 6562.8, Shift: zeeman.Empirical.Shift(6562.8, 1.5),
		Amp1: 0.3, Wid1: 3, Amp2: 0.4, Wid2: 3,
	})

	s, err := spectrum.New(x, flux, errs)
	require.NoError(t, err)

	cfg := halpha.DefaultConfig()
	cfg.Models = []halpha.ModelKind{halpha.KindLorentzian}
	cfg.LorentzianSeed = triplet.LorentzianParams{Lambda0: 6562, B: 1.4, Amp1: 0.25, Wid1: 3.5, Amp2: 0.35, Wid2: 3.5}

	a, err := halpha.Run(context.Background(), s, cfg)
	require.NoError(t, err)

	return a
}

func TestRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")

	paths, err := Render(dir, "wd-", analysis(t))
	require.NoError(t, err)
	require.Len(t, paths, 6)

	for _, name := range []string{"spectrum", "broad", "absorption", "masked", "normalized", "fit-lorentzian"} {
		data, err := os.ReadFile(filepath.Join(dir, "wd-"+name+".png"))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), name)
	}
}

func TestRenderSkipsFailedFits(t *testing.T) {
	a := analysis(t)
	a.Fits[0].Err = os.ErrInvalid

	paths, err := Render(t.TempDir(), "", a)
	require.NoError(t, err)
	require.Len(t, paths, 5)
}

func TestRenderNil(t *testing.T) {
	_, err := Render(t.TempDir(), "", nil)
	require.ErrorIs(t, err, errNilAnalysis)
}
