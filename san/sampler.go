// SPDX-License-Identifier: MIT
//
// File: sampler.go
// Role: the BurnIn/Sampling loop, one MH pass and the acceptance rule.

package san

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/wtsan/model"
	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/proposal"
)

// Result is the outcome of one run.
//
// Stats and PropStats have SampleSize rows of len(StatIndices). Row r of
// Stats is the offset vector after row r's MH pass; row r of PropStats sums
// the tracked change of every proposal evaluated in that pass, accepted or
// not. Only the first Rows rows were written.
type Result struct {
	Status    Status
	State     State // Converged, Exhausted or Failed
	Stats     [][]float64
	PropStats [][]float64
	Rows      int
	Accepted  int
	Proposed  int
	// Network is the final network, set only when Status is StatusOK.
	Network *network.Network
}

// Sampler drives one model through a SAN run.
type Sampler struct {
	m     *model.Model
	net   *network.Network
	prop  proposal.Proposer
	cfg   Config
	rng   *rand.Rand
	state State

	delta  []float64 // tracked part of the current proposal's change
	invSig []float64 // delta · InvCov
	res    *Result
}

// New binds an initialised model, its proposer and a configuration.
func New(m *model.Model, prop proposal.Proposer, cfg Config) (*Sampler, error) {
	if m == nil || prop == nil {
		return nil, errors.Wrap(ErrBadConfig, "nil model or proposer")
	}
	if err := cfg.Validate(m.NStats()); err != nil {
		return nil, err
	}
	k := len(cfg.StatIndices)

	return &Sampler{
		m:      m,
		net:    m.Network(),
		prop:   prop,
		cfg:    cfg,
		rng:    cfg.rng(),
		state:  BurnIn,
		delta:  make([]float64, k),
		invSig: make([]float64, k),
	}, nil
}

// State returns the sampler's current state.
func (s *Sampler) State() State { return s.state }

// Run samples from start, the initial tracked offset vector. A sampler runs
// once. The returned Result is never nil; on failure the error tells why and
// the rows before Result.Rows remain valid.
func (s *Sampler) Run(start []float64) (*Result, error) {
	k, n := len(s.cfg.StatIndices), s.cfg.SampleSize
	s.res = &Result{Stats: rows(n, k), PropStats: rows(n, k)}
	if s.state.Terminal() {
		return s.fail(errors.Wrap(ErrBadConfig, "sampler already ran"))
	}
	if len(start) != k {
		return s.fail(errors.Wrapf(ErrBadConfig, "start has %d values, want %d", len(start), k))
	}
	copy(s.res.Stats[0], start)

	burnin, interval := s.cfg.layout()
	if _, err := s.metropolisHastings(s.res.Stats[0], s.res.PropStats[0], burnin); err != nil {
		return s.fail(err)
	}
	s.res.Rows = 1
	if n == 1 {
		s.finish(isZero(s.res.Stats[0]))
		return s.res, nil
	}

	s.transition(Sampling)
	taken, prevTaken := 0, 0
	converged := false
	for i := 1; i < n; i++ {
		prev, cur := s.res.Stats[i-1], s.res.Stats[i]
		if isZero(prev) {
			if s.cfg.Verbose > 0 {
				klog.Infof("san[%s]: exact match found", s.cfg.RunID)
			}
			converged = true
			break
		}
		copy(cur, prev)

		t, err := s.metropolisHastings(cur, s.res.PropStats[i], interval)
		if err != nil {
			return s.fail(err)
		}
		s.res.Rows = i + 1
		taken += t

		if (3*i)%n == 0 {
			if s.cfg.Verbose > 0 && n > 500 {
				klog.Infof("san[%s]: sampled %d of %d rows", s.cfg.RunID, i, n)
			}
			if taken == prevTaken {
				klog.Warningf("san[%s]: no step accepted since the previous checkpoint (%d of %d rows)",
					s.cfg.RunID, i, n)
			}
			prevTaken = taken
		}
		if isZero(cur) {
			converged = true
			break
		}
	}
	s.finish(converged)

	return s.res, nil
}

// metropolisHastings runs steps MH steps, accumulating accepted changes into
// stats and every proposal's change into prop. It stops early when stats
// reaches zero and returns the number of accepted steps.
func (s *Sampler) metropolisHastings(stats, prop []float64, steps int) (int, error) {
	taken, unsuccessful := 0, 0
	for step := 0; step < steps; {
		p := s.prop.Propose(s.net, s.rng)
		switch p.Class {
		case proposal.Unrecoverable:
			s.m.Poison()
			return taken, ErrProposalUnrecoverable
		case proposal.Impossible:
			return taken, ErrProposalImpossible
		case proposal.Unsuccessful:
			unsuccessful++
			if s.cfg.Verbose > 0 {
				klog.Warningf("san[%s]: proposal failed to find a valid candidate", s.cfg.RunID)
			}
			if unsuccessful > taken*QuitUnsuccessful {
				return taken, errors.Wrapf(ErrTooManyUnsuccessful, "%d unsuccessful, %d accepted", unsuccessful, taken)
			}
			continue
		case proposal.Constraint:
			step++
			s.res.Proposed++
			continue
		}
		step++
		s.res.Proposed++

		accepted, err := s.try(p.Toggles, stats, prop)
		if err != nil {
			return taken, err
		}
		if !accepted {
			continue
		}
		taken++
		s.res.Accepted++
		if isZero(stats) {
			break
		}
	}

	return taken, nil
}

// try evaluates one batch and commits it when accepted.
func (s *Sampler) try(toggles []network.Toggle, stats, prop []float64) (bool, error) {
	if s.cfg.Verbose >= 5 {
		klog.Infof("san[%s]: proposal %v", s.cfg.RunID, toggles)
	}
	change, err := s.m.ChangeStats(toggles)
	if err != nil {
		return false, err
	}
	for i, idx := range s.cfg.StatIndices {
		s.delta[i] = change[idx]
		prop[i] += change[idx]
	}
	if s.cfg.Verbose >= 5 {
		klog.Infof("san[%s]: changes %v", s.cfg.RunID, s.delta)
	}

	score, err := s.score(change, stats)
	if err != nil {
		return false, err
	}
	if s.cfg.Verbose >= 5 {
		klog.Infof("san[%s]: score %g", s.cfg.RunID, score)
	}
	if !s.accept(score) {
		if s.cfg.Verbose >= 5 {
			klog.Infof("san[%s]: rejected", s.cfg.RunID)
		}
		return false, nil
	}
	if s.cfg.Verbose >= 5 {
		klog.Infof("san[%s]: accepted", s.cfg.RunID)
	}

	if err := s.m.Commit(toggles); err != nil {
		return false, err
	}
	for i, d := range s.delta {
		stats[i] += d
	}

	return true, nil
}

// score is the change of the quadratic form less the offset contribution.
// change is the full model delta; s.delta already holds its tracked part.
func (s *Sampler) score(change, stats []float64) (float64, error) {
	if _, err := s.cfg.InvCov.VecMul(s.delta, s.invSig); err != nil {
		return 0, errors.Wrap(err, "score")
	}
	var ip float64
	for i, v := range s.invSig {
		ip += v * (s.delta[i] + 2*stats[i])
	}
	var off float64
	for k, idx := range s.cfg.OffsetIndices {
		off += change[idx] * s.cfg.Offsets[k]
	}

	return ip - off, nil
}

// accept applies the temperature rule. At temperature 0 no random number is
// drawn.
func (s *Sampler) accept(score float64) bool {
	if s.cfg.Temperature == 0 {
		return score <= 0
	}
	u := s.rng.Float64()
	for u == 0 {
		u = s.rng.Float64()
	}

	return score/s.cfg.Temperature <= -math.Log(u)
}

func (s *Sampler) transition(to State) {
	if s.cfg.Verbose >= 2 {
		klog.Infof("san[%s]: %s -> %s", s.cfg.RunID, s.state, to)
	}
	s.state = to
}

func (s *Sampler) finish(converged bool) {
	if converged {
		s.transition(Converged)
	} else {
		s.transition(Exhausted)
	}
	s.res.State = s.state
	s.res.Status = StatusOK
	if s.cfg.Verbose > 0 && s.res.Proposed > 0 {
		klog.Infof("san[%s]: accepted %7.3f%% of %d proposed steps", s.cfg.RunID,
			float64(s.res.Accepted)*100/float64(s.res.Proposed), s.res.Proposed)
	}
	s.transition(Done)
}

func (s *Sampler) fail(err error) (*Result, error) {
	s.transition(Failed)
	s.res.State = Failed
	s.res.Status = StatusFailed
	klog.Warningf("san[%s]: run failed: %v", s.cfg.RunID, err)

	return s.res, err
}

func rows(n, k int) [][]float64 {
	buf := make([]float64, n*k)
	out := make([][]float64, n)
	for i := range out {
		out[i] = buf[i*k : (i+1)*k : (i+1)*k]
	}

	return out
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}
