package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/stats/residual"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

var errUnknownFormat = errors.New("report: unknown format")

// Document is the result of one spectrum analysis.
type Document struct {
	RunID     string          `json:"run_id" yaml:"run_id" msgpack:"run_id"`
	Source    string          `json:"source" yaml:"source" msgpack:"source"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at" msgpack:"created_at"`
	Law       string          `json:"law" yaml:"law" msgpack:"law"`
	Samples   int             `json:"samples" yaml:"samples" msgpack:"samples"`
	Regions   halpha.Regions  `json:"regions" yaml:"regions" msgpack:"regions"`
	Artifacts []halpha.Band   `json:"artifacts,omitempty" yaml:"artifacts,omitempty" msgpack:"artifacts,omitempty"`
	Continuum ContinuumResult `json:"continuum" yaml:"continuum" msgpack:"continuum"`
	Window    int             `json:"window_samples" yaml:"window_samples" msgpack:"window_samples"`
	Fits      []FitResult     `json:"fits" yaml:"fits" msgpack:"fits"`
}

// ContinuumResult summarises the cubic continuum.
type ContinuumResult struct {
	// Coeffs are (a, b, c, d) of a·x³ + b·x² + c·x + d.
	Coeffs  [4]float64 `json:"coeffs" yaml:"coeffs" msgpack:"coeffs"`
	Sigmas  [4]float64 `json:"sigmas" yaml:"sigmas" msgpack:"sigmas"`
	RSS     float64    `json:"rss" yaml:"rss" msgpack:"rss"`
	Samples int        `json:"samples" yaml:"samples" msgpack:"samples"`
}

// Param is a named fitted value with its 1-sigma uncertainty.
type Param struct {
	Name  string  `json:"name" yaml:"name" msgpack:"name"`
	Value float64 `json:"value" yaml:"value" msgpack:"value"`
	Sigma float64 `json:"sigma" yaml:"sigma" msgpack:"sigma"`
}

// FitResult summarises one triplet fit. Error is set instead of the
// numbers when the fit failed.
type FitResult struct {
	Model            string  `json:"model" yaml:"model" msgpack:"model"`
	Error            string  `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
	Params           []Param `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	Shift            float64 `json:"shift" yaml:"shift" msgpack:"shift"`
	ShiftSigma       float64 `json:"shift_sigma" yaml:"shift_sigma" msgpack:"shift_sigma"`
	RSS              float64 `json:"rss" yaml:"rss" msgpack:"rss"`
	ChiSquare        float64 `json:"chi_square" yaml:"chi_square" msgpack:"chi_square"`
	ReducedChiSquare float64 `json:"reduced_chi_square" yaml:"reduced_chi_square" msgpack:"reduced_chi_square"`
	DOF              int     `json:"dof" yaml:"dof" msgpack:"dof"`
	Evaluations      int     `json:"evaluations" yaml:"evaluations" msgpack:"evaluations"`

	Diagnostics residual.Stats `json:"diagnostics" yaml:"diagnostics" msgpack:"diagnostics"`
}

// OK reports whether the fit succeeded.
func (f FitResult) OK() bool { return f.Error == "" }

// Param returns the named parameter.
func (f FitResult) Param(name string) (Param, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// New builds a Document with a fresh run id.
func New(source string, a *halpha.Analysis) Document {
	doc := Document{
		RunID:     uuid.New().String(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Law:       a.Config.Law.Name(),
		Samples:   a.Spectrum.Len(),
		Regions:   a.Config.Regions,
		Artifacts: a.Config.Artifacts,
		Continuum: ContinuumResult{
			Coeffs:  a.Continuum.Coeffs,
			Sigmas:  a.Continuum.Sigmas(),
			RSS:     a.Continuum.RSS,
			Samples: a.Masked.Len(),
		},
		Window: a.Window.Len(),
	}

	for _, f := range a.Fits {
		doc.Fits = append(doc.Fits, fitResult(f))
	}

	return doc
}

func fitResult(f halpha.ModelFit) FitResult {
	out := FitResult{Model: string(f.Kind)}
	if f.Err != nil {
		out.Error = f.Err.Error()
		return out
	}

	r := f.Result
	for i, name := range r.Names {
		out.Params = append(out.Params, Param{Name: name, Value: r.Params[i], Sigma: r.Sigmas[i]})
	}

	out.Shift = r.Shift
	out.ShiftSigma = r.ShiftSigma
	out.RSS = r.RSS
	out.ChiSquare = r.ChiSquare
	out.ReducedChiSquare = r.ReducedChiSquare
	out.DOF = r.DOF
	out.Evaluations = r.Evaluations
	out.Diagnostics = residual.Calculate(r.Residuals)

	return out
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatText, "":
		return Summary(w, doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}

// Decode reads a Document written by Encode in a machine format.
func Decode(r io.Reader, format string) (Document, error) {
	var doc Document

	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, fmt.Errorf("%w %q", errUnknownFormat, format)
	}

	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", format, err)
	}

	return doc, nil
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatMsgpack:
		return ".msgpack"
	default:
		return ".txt"
	}
}
