package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-stellar/broaden"
	"github.com/cwbudde/algo-stellar/dsp/quad"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// ErrNoSynthesizer is returned by Synthesize when no synthesizer is given.
var ErrNoSynthesizer = errors.New("pipeline: nil synthesizer")

// ProgressFunc receives the completed share of a run in percent [0, 100].
// It is called synchronously from the computing goroutine.
type ProgressFunc func(percent float64)

// Synthesizer produces unbroadened flux on a wavelength grid.
type Synthesizer interface {
	Synthesize(wave []float64, progress ProgressFunc) ([]float64, error)
}

// Pipeline applies the broadening stages. The zero value is not usable;
// construct with New. A Pipeline holds no per-run state and may be reused.
type Pipeline struct {
	log       logrus.FieldLogger
	progress  ProgressFunc
	tolerance float64
	quadOpts  []quad.Option
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for stage diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithUniformTolerance sets the relative step deviation under which a grid
// counts as uniform. Values above spectrum.DefaultUniformTolerance are
// clamped to it.
func WithUniformTolerance(tol float64) Option {
	return func(p *Pipeline) {
		if tol > 0 {
			p.tolerance = min(tol, spectrum.DefaultUniformTolerance)
		}
	}
}

// WithQuadrature tunes the macroturbulence kernel quadrature.
func WithQuadrature(opts ...quad.Option) Option {
	return func(p *Pipeline) {
		p.quadOpts = append(p.quadOpts, opts...)
	}
}

// New returns a Pipeline. Without WithLogger nothing is logged.
func New(opts ...Option) *Pipeline {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		log:       discard,
		tolerance: spectrum.DefaultUniformTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Apply broadens s according to params and returns a new spectrum on the
// same grid. s is not modified.
func (p *Pipeline) Apply(s *spectrum.Spectrum, params Params) (*spectrum.Spectrum, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return p.apply(s, params, 0, 100)
}

// Synthesize runs syn on wave and broadens the result. Synthesis progress
// fills the first half of the reported range.
func (p *Pipeline) Synthesize(wave []float64, syn Synthesizer, params Params) (*spectrum.Spectrum, error) {
	if syn == nil {
		return nil, ErrNoSynthesizer
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	flux, err := syn.Synthesize(wave, func(percent float64) {
		p.report(percent / 2)
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: synthesize: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"stage":   "synthesis",
		"samples": len(wave),
		"elapsed": time.Since(start),
	}).Debug("stage complete")

	s, err := spectrum.New(wave, flux)
	if err != nil {
		return nil, fmt.Errorf("pipeline: synthesized spectrum: %w", err)
	}
	return p.apply(s, params, 50, 50)
}

// apply runs the enabled stages, reporting progress from base to base+span.
func (p *Pipeline) apply(s *spectrum.Spectrum, params Params, base, span float64) (*spectrum.Spectrum, error) {
	total := params.enabledStages()
	if total == 0 {
		p.report(base + span)
		return s.Clone(), nil
	}

	work := s
	resampled := false
	if params.needsUniformGrid() {
		if _, err := s.UniformStepTol(p.tolerance); err != nil {
			if !errors.Is(err, spectrum.ErrNonUniformGrid) {
				return nil, err
			}
			grid, err := spectrum.UniformGrid(s)
			if err != nil {
				return nil, fmt.Errorf("pipeline: %w", err)
			}
			work, err = spectrum.Resample(s, grid)
			if err != nil {
				return nil, fmt.Errorf("pipeline: resample to uniform grid: %w", err)
			}
			resampled = true
			p.log.WithFields(logrus.Fields{
				"samples": s.Len(),
				"uniform": work.Len(),
			}).Debug("resampled onto uniform grid")
		}
	}

	done := 0
	run := func(stage string, parameter float64, op func(*spectrum.Spectrum) (*spectrum.Spectrum, error)) error {
		start := time.Now()
		next, err := op(work)
		if err != nil {
			return fmt.Errorf("pipeline: %s: %w", stage, err)
		}
		work = next
		done++
		p.log.WithFields(logrus.Fields{
			"stage":     stage,
			"samples":   work.Len(),
			"parameter": parameter,
			"elapsed":   time.Since(start),
		}).Debug("stage complete")
		p.report(base + span*float64(done)/float64(total))
		return nil
	}

	if params.macroturbulenceEnabled() {
		err := run("macroturbulence", params.Macroturbulence, func(in *spectrum.Spectrum) (*spectrum.Spectrum, error) {
			return broaden.Macroturbulence(in, params.Macroturbulence, p.quadOpts...)
		})
		if err != nil {
			return nil, err
		}
	}

	if params.rotationEnabled() {
		err := run("rotation", params.VSini, func(in *spectrum.Spectrum) (*spectrum.Spectrum, error) {
			return broaden.Rotation(in, params.VSini, params.LimbDarkening)
		})
		if err != nil {
			return nil, err
		}
	}

	if resampled {
		back, err := spectrum.ResampleCubic(work, s.Wave)
		if err != nil {
			return nil, fmt.Errorf("pipeline: resample to original grid: %w", err)
		}
		work = back
	}

	if params.resolutionEnabled() {
		r, err := params.kernelResolution()
		if err != nil {
			return nil, fmt.Errorf("pipeline: resolution: %w", err)
		}
		err = run("resolution", r, func(in *spectrum.Spectrum) (*spectrum.Spectrum, error) {
			return broaden.Resolution(in, r)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.WithFlux(work.Flux), nil
}

func (p *Pipeline) report(percent float64) {
	if p.progress != nil {
		p.progress(percent)
	}
}
