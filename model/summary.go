// SPDX-License-Identifier: MIT

package model

import (
	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/term"
)

// Summarize returns the statistic vector of net: the change from the empty
// network to net. Edges are replayed in (tail, head) order onto an empty
// clone through ChangeStats and Commit. Slots of terms that can evaluate the
// full network are then overwritten by a direct evaluation.
//
// terms are bound to an internal model and must not be reused; net is not
// modified.
func Summarize(net *network.Network, terms ...term.Term) ([]float64, error) {
	m, err := New(net.CloneEmpty(), terms...)
	if err != nil {
		return nil, err
	}
	if err = m.Initialize(); err != nil {
		return nil, err
	}
	defer m.Destroy()

	sum := make([]float64, m.width)
	batch := make([]network.Toggle, 1)
	for _, e := range net.Edges() {
		batch[0] = network.Toggle{Tail: e.Tail, Head: e.Head, Weight: e.Weight}
		delta, err := m.ChangeStats(batch)
		if err != nil {
			return nil, err
		}
		for k, v := range delta {
			sum[k] += v
		}
		if err = m.Commit(batch); err != nil {
			return nil, err
		}
	}
	if err = m.evaluateFull(sum); err != nil {
		return nil, err
	}

	return sum, nil
}

// evaluateFull overwrites the slots of FullEvaluator terms in dst with their
// value on the current network.
func (m *Model) evaluateFull(dst []float64) (err error) {
	defer m.guard(&err)
	for _, st := range m.terms {
		fe, ok := st.t.(term.FullEvaluator)
		if !ok || st.n == 0 {
			continue
		}
		m.current = st.t.Name()
		out := st.view(dst)
		clear(out)
		fe.EvaluateFull(&m.env, out)
	}
	m.current = ""

	return nil
}
