// SPDX-License-Identifier: MIT

package san

import (
	"errors"
	"math"
	"math/rand/v2"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/matrix"
)

// QuitUnsuccessful bounds unsuccessful proposals: an MH pass fails once they
// exceed QuitUnsuccessful times the steps it has accepted.
const QuitUnsuccessful = 5

// Sentinel errors of a sampling run.
var (
	ErrBadConfig             = errors.New("san: invalid configuration")
	ErrProposalImpossible    = errors.New("san: no toggle can be proposed from the current state")
	ErrProposalUnrecoverable = errors.New("san: unrecoverable proposal fault")
	ErrTooManyUnsuccessful   = errors.New("san: too many unsuccessful proposals")
)

// Config parameterises one run.
type Config struct {
	// InvCov is the len(StatIndices)-square inverse covariance.
	InvCov *matrix.Dense
	// Temperature 0 is greedy descent.
	Temperature float64
	// SampleSize is the number of output rows (>= 1).
	SampleSize int
	// Steps is the total number of MH steps over all rows.
	Steps int
	// StatIndices select the tracked statistics from the model's vector.
	StatIndices []int
	// OffsetIndices select the offset statistics, weighted by Offsets.
	OffsetIndices []int
	Offsets       []float64
	// Verbose >= 1 logs progress, >= 5 logs every step.
	Verbose int
	// Seed seeds the run's PCG stream unless RNG is set.
	Seed uint64
	RNG  *rand.Rand
	// RunID tags log lines.
	RunID string
}

// Validate checks cfg against a model of the given statistic width.
func (c *Config) Validate(width int) error {
	k := len(c.StatIndices)
	switch {
	case k == 0:
		return pkgerrors.Wrap(ErrBadConfig, "no tracked statistics")
	case c.InvCov == nil:
		return pkgerrors.Wrap(ErrBadConfig, "missing inverse covariance")
	case c.InvCov.Rows() != k || c.InvCov.Cols() != k:
		return pkgerrors.Wrapf(ErrBadConfig, "inverse covariance is %dx%d, want %dx%d",
			c.InvCov.Rows(), c.InvCov.Cols(), k, k)
	case math.IsNaN(c.Temperature) || math.IsInf(c.Temperature, 0) || c.Temperature < 0:
		return pkgerrors.Wrapf(ErrBadConfig, "temperature %g", c.Temperature)
	case c.SampleSize < 1:
		return pkgerrors.Wrapf(ErrBadConfig, "sample size %d", c.SampleSize)
	case c.Steps < 0:
		return pkgerrors.Wrapf(ErrBadConfig, "steps %d", c.Steps)
	case len(c.Offsets) != len(c.OffsetIndices):
		return pkgerrors.Wrapf(ErrBadConfig, "%d offsets for %d offset indices", len(c.Offsets), len(c.OffsetIndices))
	}

	tracked := make(map[int]bool, k)
	for _, i := range c.StatIndices {
		if i < 0 || i >= width {
			return pkgerrors.Wrapf(ErrBadConfig, "stat index %d outside [0,%d)", i, width)
		}
		tracked[i] = true
	}
	for _, i := range c.OffsetIndices {
		if i < 0 || i >= width {
			return pkgerrors.Wrapf(ErrBadConfig, "offset index %d outside [0,%d)", i, width)
		}
		if tracked[i] {
			return pkgerrors.Wrapf(ErrBadConfig, "index %d is both tracked and offset", i)
		}
	}
	for _, w := range c.Offsets {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return pkgerrors.Wrap(ErrBadConfig, "non-finite offset")
		}
	}

	return nil
}

// layout returns the MH steps of each row: burnin for the first, interval
// for each of the SampleSize-1 others.
func (c *Config) layout() (burnin, interval int) {
	interval = c.Steps / c.SampleSize
	burnin = c.Steps - (c.SampleSize-1)*interval

	return burnin, interval
}

func (c *Config) rng() *rand.Rand {
	if c.RNG != nil {
		return c.RNG
	}

	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}
