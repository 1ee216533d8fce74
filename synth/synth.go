// Package synth provides an analytic absorption-line synthesizer. It
// stands in for a radiative-transfer code when demonstrating or testing the
// broadening pipeline.
package synth

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-stellar/pipeline"
)

// ErrInvalidLine reports a line with depth outside [0, 1] or a
// non-positive width.
var ErrInvalidLine = errors.New("synth: invalid line")

// ProgressInterval is the number of samples between progress reports.
const ProgressInterval = 100

// Line is a Gaussian absorption line.
type Line struct {
	Center float64 `yaml:"center"`
	Depth  float64 `yaml:"depth"`
	Sigma  float64 `yaml:"sigma"`
}

// Model is a continuum level with a set of absorption lines.
type Model struct {
	Continuum float64 `yaml:"continuum"`
	Lines     []Line  `yaml:"lines"`
}

var _ pipeline.Synthesizer = (*Model)(nil)

// Validate checks every line.
func (m *Model) Validate() error {
	if math.IsNaN(m.Continuum) || math.IsInf(m.Continuum, 0) {
		return fmt.Errorf("%w: continuum %v", ErrInvalidLine, m.Continuum)
	}
	for i, l := range m.Lines {
		if !(l.Depth >= 0 && l.Depth <= 1) {
			return fmt.Errorf("%w: line %d depth %v outside [0, 1]", ErrInvalidLine, i, l.Depth)
		}
		if !(l.Sigma > 0) || math.IsInf(l.Sigma, 0) {
			return fmt.Errorf("%w: line %d sigma %v", ErrInvalidLine, i, l.Sigma)
		}
		if math.IsNaN(l.Center) || math.IsInf(l.Center, 0) {
			return fmt.Errorf("%w: line %d center %v", ErrInvalidLine, i, l.Center)
		}
	}
	return nil
}

// Synthesize returns continuum * prod(1 - depth*exp(-(x-c)^2/(2 sigma^2)))
// on wave, calling progress every ProgressInterval samples.
func (m *Model) Synthesize(wave []float64, progress pipeline.ProgressFunc) ([]float64, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	flux := make([]float64, len(wave))
	for i, w := range wave {
		if progress != nil && i%ProgressInterval == 0 {
			progress(100 * float64(i) / float64(len(wave)))
		}

		f := m.Continuum
		for _, l := range m.Lines {
			d := (w - l.Center) / l.Sigma
			f *= 1 - l.Depth*math.Exp(-0.5*d*d)
		}
		flux[i] = f
	}
	return flux, nil
}

// Decode reads a YAML model. Continuum defaults to 1 when omitted.
func Decode(r io.Reader) (*Model, error) {
	m := &Model{Continuum: 1}
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("synth: decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads a YAML model from path.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
