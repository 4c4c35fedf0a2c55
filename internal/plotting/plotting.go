// Package plotting renders the figures of an Analysis to PNG files.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch

	wavelengthLabel = "Wavelength (Å)"
)

var (
	red    = color.RGBA{R: 200, A: 255}
	orange = color.RGBA{R: 230, G: 140, A: 255}
	grey   = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

var errNilAnalysis = errors.New("plotting: nil analysis")

// Render writes every figure of a into dir, prefixing file names with
// prefix, and returns the paths written. Failed fits are skipped.
func Render(dir, prefix string, a *halpha.Analysis) ([]string, error) {
	if a == nil {
		return nil, errNilAnalysis
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	figures := []struct {
		name  string
		build func() (*plot.Plot, error)
	}{
		{"spectrum", func() (*plot.Plot, error) {
			return linePlot("Whole spectrum", "Flux", a.Spectrum.Wavelength, a.Spectrum.Flux)
		}},
		{"broad", func() (*plot.Plot, error) {
			return scatterPlot("Continuum with absorption feature", a.Broad.Wavelength, a.Broad.Flux)
		}},
		{"absorption", func() (*plot.Plot, error) {
			return linePlot("Absorption feature region", "Flux", a.Absorption.Wavelength, a.Absorption.Flux)
		}},
		{"masked", func() (*plot.Plot, error) {
			return scatterPlot("Spectrum with absorption feature removed", a.Masked.Wavelength, a.Masked.Flux)
		}},
		{"normalized", func() (*plot.Plot, error) {
			return normalizedPlot(a)
		}},
	}

	var paths []string

	for _, f := range figures {
		p, err := f.build()
		if err != nil {
			return paths, fmt.Errorf("%s plot: %w", f.name, err)
		}

		path := filepath.Join(dir, prefix+f.name+".png")
		if err := p.Save(width, height, path); err != nil {
			return paths, fmt.Errorf("save %s: %w", path, err)
		}

		paths = append(paths, path)
	}

	for _, mf := range a.Fits {
		if !mf.OK() {
			continue
		}

		path := filepath.Join(dir, prefix+"fit-"+string(mf.Kind)+".png")
		if err := saveFit(path, a, mf); err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = wavelengthLabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	return p
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	return pts
}

func linePlot(title, ylabel string, x, y []float64) (*plot.Plot, error) {
	p := newPlot(title, ylabel)

	l, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return nil, err
	}

	p.Add(l)

	return p, nil
}

func scatterPlot(title string, x, y []float64) (*plot.Plot, error) {
	p := newPlot(title, "Flux")

	s, err := plotter.NewScatter(xys(x, y))
	if err != nil {
		return nil, err
	}

	s.GlyphStyle.Shape = draw.CrossGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)

	return p, nil
}

func normalizedPlot(a *halpha.Analysis) (*plot.Plot, error) {
	p := newPlot("Normalised absorption feature", "Normalised flux")

	data, err := plotter.NewLine(xys(a.Broad.Wavelength, a.Normalized))
	if err != nil {
		return nil, err
	}

	// The continuum divided by itself.
	ones := make([]float64, len(a.Broad.Wavelength))
	for i := range ones {
		ones[i] = 1
	}

	poly, err := plotter.NewLine(xys(a.Broad.Wavelength, ones))
	if err != nil {
		return nil, err
	}

	poly.Color = red
	poly.Width = vg.Points(1.5)

	p.Add(data, poly)
	p.Legend.Add("normalised", data)
	p.Legend.Add("continuum", poly)

	return p, nil
}

func model(a *halpha.Analysis, kind halpha.ModelKind) triplet.Model {
	if kind == halpha.KindVoigt {
		return triplet.Voigt{SplittingLaw: a.Config.Law}
	}

	return triplet.Lorentzian{SplittingLaw: a.Config.Law}
}

func saveFit(path string, a *halpha.Analysis, mf halpha.ModelFit) error {
	x, y := a.Window.Wavelength, a.Window.Flux
	res := mf.Result

	top := newPlot(fmt.Sprintf("%s fit", mf.Kind), "Normalised flux")

	data, err := plotter.NewScatter(xys(x, y))
	if err != nil {
		return err
	}

	data.GlyphStyle.Shape = draw.CrossGlyph{}
	data.GlyphStyle.Radius = vg.Points(2)

	fitted := make([]float64, len(x))
	model(a, mf.Kind).Eval(fitted, x, res.Params)

	curve, err := plotter.NewLine(xys(x, fitted))
	if err != nil {
		return err
	}

	curve.Color = orange
	curve.Width = vg.Points(2)

	top.Add(data, curve)
	top.Legend.Add("data", data)
	top.Legend.Add("fit", curve)

	for _, c := range res.Components {
		comp := make([]float64, len(x))
		for i, xi := range x {
			comp[i] = 1 - c.Eval(xi)
		}

		l, err := plotter.NewLine(xys(x, comp))
		if err != nil {
			return err
		}

		l.Color = grey
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		top.Add(l)
	}

	bottom := newPlot("", "Residuals")

	resid, err := plotter.NewLine(xys(x, res.Residuals))
	if err != nil {
		return err
	}

	bottom.Add(resid)
	bottom.X.Min, bottom.X.Max = top.X.Min, top.X.Max

	img := vgimg.New(width, height*1.4)
	dc := draw.New(img)

	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter}
	canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
