// SPDX-License-Identifier: MIT
//
// File: changestats.go
// Role: speculative delta computation with undo-log rollback, and commit.
//
// Protocol of ChangeStats for a batch t_0..t_{k-1}:
//  1. zero the workspace;
//  2. batch-path terms see the stored network and the whole batch;
//  3. per toggle t_i: single-path terms add their delta for t_i; for i < k-1
//     the updaters outside the batch path advance their storage, the weight
//     is written and (dyad, previous, next) is logged;
//  4. the log is replayed in reverse: updaters receive the inverse toggle,
//     then the previous weight is restored.

package model

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/term"
)

// ChangeStats returns the net statistic change of applying toggles in order.
// The network and all term storage are unchanged on return.
//
// The returned slice is the model's workspace: it is overwritten by the next
// call. Copy it to keep it.
//
// Errors:
//   - ErrBadToggle before any mutation;
//   - ErrEngineInvariant when a term callback panics (model poisoned);
//   - ErrPoisoned, ErrLifecycle.
func (m *Model) ChangeStats(toggles []network.Toggle) (delta []float64, err error) {
	if err := m.usable("ChangeStats"); err != nil {
		return nil, err
	}
	if err := m.validate(toggles); err != nil {
		return nil, err
	}
	defer m.guard(&err)

	clear(m.work)
	for _, st := range m.terms {
		if st.path != pathBatch {
			continue
		}
		m.current = st.t.Name()
		st.t.(term.BatchDeltaer).BatchDelta(&m.env, toggles, st.view(m.work))
	}

	multi := len(toggles) > 1
	m.undo = m.undo[:0]
	for i, tg := range toggles {
		tc := term.ToggleContext{
			Index:     i,
			Tail:      tg.Tail,
			Head:      tg.Head,
			OldWeight: m.net.Get(tg.Tail, tg.Head),
			NewWeight: tg.Weight,
		}
		for _, st := range m.terms {
			if st.path != pathSingle {
				continue
			}
			m.current = st.t.Name()
			sd := st.t.(term.SingleDeltaer)
			if !multi {
				sd.SingleDelta(&m.env, tc, st.view(m.work))
				continue
			}
			clear(st.scratch)
			sd.SingleDelta(&m.env, tc, st.scratch)
			out := st.view(m.work)
			for k, v := range st.scratch {
				out[k] += v
			}
		}

		if i < len(toggles)-1 {
			m.speculate(tc)
			_ = m.net.Set(tg.Tail, tg.Head, tg.Weight)
			m.undo = append(m.undo, undoEntry{tail: tg.Tail, head: tg.Head, prev: tc.OldWeight, next: tg.Weight})
		}
	}

	for k := len(m.undo) - 1; k >= 0; k-- {
		u := m.undo[k]
		m.speculate(term.ToggleContext{Index: k, Tail: u.tail, Head: u.head, OldWeight: u.next, NewWeight: u.prev})
		_ = m.net.Set(u.tail, u.head, u.prev)
	}
	m.undo = m.undo[:0]
	m.current = ""

	return m.work, nil
}

// speculate advances the storage of updaters that do not use the batch path.
// Batch-path terms observe only the stored network, so their storage stays put.
func (m *Model) speculate(tc term.ToggleContext) {
	for _, st := range m.terms {
		if st.path == pathBatch {
			continue
		}
		if u, ok := st.t.(term.Updater); ok {
			m.current = st.t.Name()
			u.CommitUpdate(&m.env, tc)
		}
	}
}

// Commit applies toggles permanently: for each toggle in order every
// updater's CommitUpdate runs, then the weight is written.
func (m *Model) Commit(toggles []network.Toggle) (err error) {
	if err := m.usable("Commit"); err != nil {
		return err
	}
	if err := m.validate(toggles); err != nil {
		return err
	}
	defer m.guard(&err)

	for i, tg := range toggles {
		tc := term.ToggleContext{
			Index:     i,
			Tail:      tg.Tail,
			Head:      tg.Head,
			OldWeight: m.net.Get(tg.Tail, tg.Head),
			NewWeight: tg.Weight,
		}
		for _, st := range m.terms {
			if u, ok := st.t.(term.Updater); ok {
				m.current = st.t.Name()
				u.CommitUpdate(&m.env, tc)
			}
		}
		_ = m.net.Set(tg.Tail, tg.Head, tg.Weight)
	}
	m.current = ""

	return nil
}

func (m *Model) validate(toggles []network.Toggle) error {
	for i, tg := range toggles {
		if err := m.net.ValidDyad(tg.Tail, tg.Head); err != nil {
			return errors.Wrapf(ErrBadToggle, "toggle %d (%d,%d): %v", i, tg.Tail, tg.Head, err)
		}
		if math.IsNaN(tg.Weight) || math.IsInf(tg.Weight, 0) {
			return errors.Wrapf(ErrBadToggle, "toggle %d (%d,%d): weight %g", i, tg.Tail, tg.Head, tg.Weight)
		}
	}

	return nil
}
