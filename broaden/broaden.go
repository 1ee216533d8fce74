package broaden

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-stellar/dsp/quad"
)

// SpeedOfLight in vacuum, km/s.
const SpeedOfLight = 299792.458

var (
	// ErrInvalidParams reports an out-of-range broadening parameter.
	ErrInvalidParams = errors.New("broaden: invalid parameters")

	// ErrQuadratureDivergence is returned (wrapped) when a macroturbulence
	// kernel integral does not converge.
	ErrQuadratureDivergence = quad.ErrDivergence
)

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidParams, name, v)
	}
	return nil
}

// EffectiveResolution returns the resolving power of the Gaussian that
// degrades a spectrum observed at resolving power from down to to.
// from == 0 denotes an infinitely resolved input and yields to.
func EffectiveResolution(to, from float64) (float64, error) {
	if err := checkFinite("to", to); err != nil {
		return 0, err
	}
	if err := checkFinite("from", from); err != nil {
		return 0, err
	}
	if to <= 0 {
		return 0, fmt.Errorf("%w: target resolution %g must be positive", ErrInvalidParams, to)
	}
	if from == 0 {
		return to, nil
	}
	if from <= to {
		return 0, fmt.Errorf("%w: cannot raise resolution from %g to %g", ErrInvalidParams, from, to)
	}
	return to * from / math.Sqrt(from*from-to*to), nil
}
