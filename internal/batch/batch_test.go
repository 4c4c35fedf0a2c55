package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zeeman/core"
	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/internal/testutil"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

func writeSpectrum(t *testing.T, dir, name string, b float64) string {
	t.Helper()

	x := testutil.Grid(6100, 1, 1000)
	flux, errs := testutil.SyntheticSpectrum(x, [4]float64{0, 0, 0, 50}, testutil.Triplet{
		Lambda0: 6562.8, Shift: zeeman.Empirical.Shift(6562.8, b),
		Amp1: 0.3, Wid1: 3, Amp2: 0.4, Wid2: 3,
	})

	var sb strings.Builder
	for i := range x {
		fmt.Fprintf(&sb, "%.10g %.10g %.10g\n", x[i], flux[i], errs[i])
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))

	return path
}

func config() halpha.Config {
	cfg := halpha.DefaultConfig()
	cfg.Models = []halpha.ModelKind{halpha.KindLorentzian}
	cfg.LorentzianSeed = triplet.LorentzianParams{Lambda0: 6562, B: 1.4, Amp1: 0.25, Wid1: 3.5, Amp2: 0.35, Wid2: 3.5}

	return cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSpectrum(t, dir, "a.dat", 1.5),
		writeSpectrum(t, dir, "b.dat", 1.6),
		filepath.Join(dir, "missing.dat"),
	}

	broken := filepath.Join(dir, "broken.dat")
	require.NoError(t, os.WriteFile(broken, []byte("6500 1.0\n"), 0o600))
	paths = append(paths, broken)

	var outcomes []Outcome

	err := New(config(), 2).Run(context.Background(), paths, func(o Outcome) error {
		outcomes = append(outcomes, o)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, outcomes, len(paths))

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Index < outcomes[j].Index })

	for i, want := range []float64{1.5, 1.6} {
		o := outcomes[i]
		require.NoError(t, o.Err, o.Path)
		require.NotNil(t, o.Analysis)
		require.Len(t, o.Document.Fits, 1)

		b, ok := o.Document.Fits[0].Param("B")
		require.True(t, ok)
		assert.InEpsilon(t, want, b.Value, 0.01)
	}

	assert.Equal(t, "a", outcomes[0].Document.Source)
	assert.True(t, errors.Is(outcomes[2].Err, os.ErrNotExist))
	assert.Nil(t, outcomes[2].Analysis)
	assert.ErrorIs(t, outcomes[3].Err, core.ErrParse)
}

func TestRunSinkErrorStops(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSpectrum(t, dir, "a.dat", 1.5),
		writeSpectrum(t, dir, "b.dat", 1.5),
		writeSpectrum(t, dir, "c.dat", 1.5),
	}

	stop := errors.New("disk full")
	calls := 0

	err := New(config(), 1).Run(context.Background(), paths, func(Outcome) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(config(), 4).Run(ctx, []string{"x.dat"}, func(Outcome) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaultsWorkers(t *testing.T) {
	assert.Positive(t, New(config(), 0).Workers())
}

func TestSource(t *testing.T) {
	assert.Equal(t, "DESI_WDJ110344.93+510048.61_bin0p2", Source("/data/DESI_WDJ110344.93+510048.61_bin0p2.dat"))
}
