// Package batch analyses many spectra concurrently with a bounded pool of
// workers.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cwbudde/algo-zeeman/internal/logger"
	"github.com/cwbudde/algo-zeeman/internal/report"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/spectrum"
)

// Outcome is the result for one input file. Analysis is nil when the file
// could not be loaded or the pipeline failed before the triplet fits; Err
// then holds the reason. When only fits failed both are set.
type Outcome struct {
	Index    int
	Path     string
	Analysis *halpha.Analysis
	Document report.Document
	Err      error
}

// Sink consumes outcomes. It is called from a single goroutine.
type Sink func(Outcome) error

// Pool runs the pipeline over files.
type Pool struct {
	cfg     halpha.Config
	workers int
}

// New returns a pool running cfg on up to workers files at once.
// workers <= 0 uses GOMAXPROCS.
func New(cfg halpha.Config, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pool{cfg: cfg, workers: workers}
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Run analyses every path and passes each outcome to sink as it completes.
// A sink error cancels the remaining work and is returned; per-file
// failures are only reported through Outcome.Err.
func (p *Pool) Run(ctx context.Context, paths []string, sink Sink) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for range min(p.workers, max(len(paths), 1)) {
		wg.Go(func() {
			for i := range jobs {
				out := p.process(ctx, i, paths[i])

				select {
				case results <- out:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	go func() {
		defer close(jobs)

		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var sinkErr error

	for out := range results {
		if sinkErr != nil {
			continue
		}

		if err := sink(out); err != nil {
			sinkErr = fmt.Errorf("%s: %w", out.Path, err)
			cancel()
		}
	}

	if sinkErr != nil {
		return sinkErr
	}

	return ctx.Err()
}

func (p *Pool) process(ctx context.Context, index int, path string) Outcome {
	ctx = logger.WithKV(ctx, "spectrum", filepath.Base(path))
	out := Outcome{Index: index, Path: path}

	s, err := spectrum.Load(path)
	if err != nil {
		out.Err = err
		logger.WarnKV(ctx, "load failed", "error", err)

		return out
	}

	out.Analysis, out.Err = halpha.Run(ctx, s, p.cfg)
	if out.Analysis != nil {
		out.Document = report.New(Source(path), out.Analysis)
	} else {
		logger.WarnKV(ctx, "analysis failed", "error", out.Err)
	}

	return out
}

// Source returns the name a spectrum is reported under: its base file name
// without extension.
func Source(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
