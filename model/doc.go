// SPDX-License-Identifier: MIT

// Package model binds an ordered list of terms to one network and evaluates
// the statistic change of toggle batches without leaving a trace.
//
// A Model owns a workspace of width Σ NStats, a shared arena for auxiliary
// storage and the initialisation order of its terms. The lifecycle is:
//
//	m, err := model.New(net, terms...)   // validate, lay out, order
//	err = m.Initialize()                 // providers before consumers
//	delta, err := m.ChangeStats(batch)   // speculative, rolled back
//	err = m.Commit(batch)                // permanent
//	m.Destroy()
//
// ChangeStats leaves the network and every term's storage exactly as it
// found them. Toggles after the first are applied speculatively so that each
// toggle's delta sees the state produced by its predecessors; an undo log of
// previous weights is replayed in reverse afterwards.
//
// A panic inside a term callback is recovered and reported as
// ErrEngineInvariant. The model is then poisoned: the network may no longer
// match term storage, and every later call returns ErrPoisoned.
//
// A Model is not safe for concurrent use.
package model
