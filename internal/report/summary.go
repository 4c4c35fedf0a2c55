package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgBlue, color.Bold)
	okColor     = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed, color.Bold)
)

// Summary prints doc as an aligned console table, one "value ± sigma" line
// per parameter.
func Summary(w io.Writer, doc Document) error {
	headerColor.Fprintf(w, "%s  (run %s, law %s)\n", doc.Source, shortID(doc.RunID), doc.Law)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "continuum\t%d samples\trss %.6g\n", doc.Continuum.Samples, doc.Continuum.RSS)

	for i, name := range []string{"a", "b", "c", "d"} {
		fmt.Fprintf(tw, "  %s\t%s\t\n", name, pm(doc.Continuum.Coeffs[i], doc.Continuum.Sigmas[i]))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	for _, f := range doc.Fits {
		if !f.OK() {
			errorColor.Fprintf(w, "%s fit failed: %s\n", f.Model, f.Error)
			continue
		}

		okColor.Fprintf(w, "%s fit (%d evaluations)\n", f.Model, f.Evaluations)

		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, p := range f.Params {
			fmt.Fprintf(tw, "  %s\t%s\n", p.Name, pm(p.Value, p.Sigma))
		}

		fmt.Fprintf(tw, "  Δλ\t%s\n", pm(f.Shift, f.ShiftSigma))
		fmt.Fprintf(tw, "  rss\t%.6g\n", f.RSS)
		fmt.Fprintf(tw, "  χ²/dof\t%.4g (dof %d)\n", f.ReducedChiSquare, f.DOF)

		d := f.Diagnostics
		fmt.Fprintf(tw, "  residuals\tmax |r| %.3g, runs %d (z %.2f), DW %.3f\n",
			d.MaxAbs, d.Runs, d.RunsZ, d.DurbinWatson)

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, strings.Repeat("-", 60))

	return err
}

func pm(value, sigma float64) string {
	return fmt.Sprintf("%.8g ± %.3g", value, sigma)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}
