// SPDX-License-Identifier: MIT

package san

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/formula"
	"github.com/katalvlaran/wtsan/model"
	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/proposal"
)

// Run samples from net toward target.
//
// src is a term formula (see package formula). The start vector is the
// tracked part of net's summary statistics minus target; a nil target
// starts from zero. net itself is never modified: the run works on a clone,
// returned in Result.Network when the run ends with StatusOK.
//
// Configuration errors return a nil Result. Sampling failures return the
// partial Result with StatusFailed.
func Run(net *network.Network, src string, prop proposal.Proposer, cfg Config, target []float64) (*Result, error) {
	if net == nil {
		return nil, errors.Wrap(ErrBadConfig, "nil network")
	}
	work := net.Clone()
	terms, err := formula.Build(src, work)
	if err != nil {
		return nil, err
	}
	m, err := model.New(work, terms...)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(m.NStats()); err != nil {
		return nil, err
	}
	if target != nil && len(target) != len(cfg.StatIndices) {
		return nil, errors.Wrapf(ErrBadConfig, "target has %d values, want %d", len(target), len(cfg.StatIndices))
	}

	start := make([]float64, len(cfg.StatIndices))
	if target != nil {
		summaryTerms, err := formula.Build(src, net)
		if err != nil {
			return nil, err
		}
		summary, err := model.Summarize(net, summaryTerms...)
		if err != nil {
			return nil, err
		}
		for i, idx := range cfg.StatIndices {
			start[i] = summary[idx] - target[i]
		}
	}

	defer m.Destroy()
	if err = m.Initialize(); err != nil {
		return nil, err
	}

	s, err := New(m, prop, cfg)
	if err != nil {
		return nil, err
	}
	res, err := s.Run(start)
	if err != nil {
		return res, err
	}
	res.Network = work

	return res, nil
}
