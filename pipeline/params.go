package pipeline

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-stellar/broaden"
)

// Params holds the broadening parameters for one run. A zero value for a
// velocity or for Resolution disables the corresponding stage.
type Params struct {
	// Macroturbulence velocity in km/s.
	Macroturbulence float64 `yaml:"vmac" mapstructure:"vmac"`
	// VSini is the projected rotational velocity in km/s.
	VSini float64 `yaml:"vsini" mapstructure:"vsini"`
	// LimbDarkening is the linear limb-darkening coefficient in [0, 1].
	LimbDarkening float64 `yaml:"limb_darkening_coeff" mapstructure:"limb_darkening_coeff"`
	// Resolution is the resolving power R.
	Resolution float64 `yaml:"resolution" mapstructure:"resolution"`
	// FromResolution is the resolving power the input already has; zero
	// means infinitely resolved. It must exceed Resolution when both are set.
	FromResolution float64 `yaml:"from_resolution" mapstructure:"from_resolution"`
}

// Validate rejects non-finite or negative parameters and a limb-darkening
// coefficient outside [0, 1].
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"vmac", p.Macroturbulence},
		{"vsini", p.VSini},
		{"limb_darkening_coeff", p.LimbDarkening},
		{"resolution", p.Resolution},
		{"from_resolution", p.FromResolution},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s = %v", broaden.ErrInvalidParams, f.name, f.value)
		}
	}
	if p.LimbDarkening > 1 {
		return fmt.Errorf("%w: limb_darkening_coeff = %v outside [0, 1]", broaden.ErrInvalidParams, p.LimbDarkening)
	}
	if p.resolutionEnabled() {
		if _, err := p.kernelResolution(); err != nil {
			return err
		}
	}
	return nil
}

// kernelResolution is the resolving power of the Gaussian that takes an
// input at FromResolution down to Resolution.
func (p Params) kernelResolution() (float64, error) {
	return broaden.EffectiveResolution(p.Resolution, p.FromResolution)
}

func (p Params) macroturbulenceEnabled() bool { return p.Macroturbulence > 0 }
func (p Params) rotationEnabled() bool        { return p.VSini >= broaden.MinVSini }
func (p Params) resolutionEnabled() bool      { return p.Resolution > 0 }

// needsUniformGrid reports whether any enabled stage requires a uniform grid.
func (p Params) needsUniformGrid() bool {
	return p.macroturbulenceEnabled() || p.rotationEnabled()
}

func (p Params) enabledStages() int {
	n := 0
	for _, on := range []bool{p.macroturbulenceEnabled(), p.rotationEnabled(), p.resolutionEnabled()} {
		if on {
			n++
		}
	}
	return n
}

// LoadParams decodes YAML parameters from r. Unknown keys are rejected and
// empty input yields the zero Params.
func LoadParams(r io.Reader) (Params, error) {
	var p Params
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("pipeline: decode params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
