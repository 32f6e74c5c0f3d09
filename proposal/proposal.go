// SPDX-License-Identifier: MIT

// Package proposal defines how candidate toggle batches are produced for a
// sampling step, and ships the reference proposers used by the wtsan command.
package proposal

import (
	"math/rand/v2"

	"github.com/katalvlaran/wtsan/network"
)

// Class classifies the outcome of one Propose call.
type Class uint8

const (
	// Success carries a batch in Toggles.
	Success Class = iota
	// Unsuccessful means no valid candidate was found this attempt; the
	// sampler retries within its budget.
	Unsuccessful
	// Impossible means no toggle can be proposed from the current state.
	Impossible
	// Unrecoverable signals possible state corruption; nothing more may be
	// run on the same model and network.
	Unrecoverable
	// Constraint means the candidate violated a constraint; the step counts
	// as rejected.
	Constraint
)

var classNames = [...]string{"success", "unsuccessful", "impossible", "unrecoverable", "constraint"}

// String returns the lower-case class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}

	return "unknown"
}

// Proposal is the result of one proposal attempt.
// LogRatio is the Metropolis–Hastings correction log q(x|x')/q(x'|x).
type Proposal struct {
	Class    Class
	Toggles  []network.Toggle
	LogRatio float64
}

// Proposer produces a candidate batch for net. It must not modify net.
type Proposer interface {
	Propose(net *network.Network, rng *rand.Rand) Proposal
}

// Func adapts a plain function to Proposer.
type Func func(net *network.Network, rng *rand.Rand) Proposal

// Propose calls f.
func (f Func) Propose(net *network.Network, rng *rand.Rand) Proposal { return f(net, rng) }
