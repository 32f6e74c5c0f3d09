// SPDX-License-Identifier: MIT
//
// File: term.go
// Role: Term contract, optional capability interfaces, capability bitset and call context.

package term

import (
	"strings"

	"github.com/katalvlaran/wtsan/network"
)

// Term is one pluggable statistic definition.
// NStats()==0 marks an auxiliary term.
type Term interface {
	Name() string
	NStats() int
}

// Env is the state every callback may read: the network and the shared arena.
// Delta callbacks may mutate Net transiently but must restore it before returning.
type Env struct {
	Net *network.Network
	Aux *Arena
}

// ToggleContext describes one toggle at its position in a batch.
// OldWeight is the dyad's weight in the network state the callback observes.
type ToggleContext struct {
	Index     int
	Tail      network.Vertex
	Head      network.Vertex
	OldWeight float64
	NewWeight float64
}

// InitToggle is the degenerate toggle passed to an Updater that has no
// Initializer, once, before any real toggle.
var InitToggle = ToggleContext{Index: -1}

// IsInit reports whether tc is InitToggle.
func (tc ToggleContext) IsInit() bool {
	return tc.Tail == 0 && tc.Head == 0
}

// Flipped reports whether the toggle changes the dyad between absent and present.
func (tc ToggleContext) Flipped() bool {
	return (tc.OldWeight == 0) != (tc.NewWeight == 0)
}

// SingleDeltaer writes into out the change caused by moving dyad (Tail,Head)
// from OldWeight to NewWeight. out is zeroed before the call.
type SingleDeltaer interface {
	SingleDelta(env *Env, tc ToggleContext, out []float64)
}

// BatchDeltaer writes into out the net change of applying toggles in order to
// the network as stored. out is zeroed before the call.
type BatchDeltaer interface {
	BatchDelta(env *Env, toggles []network.Toggle, out []float64)
}

// Initializer creates the term's storage for the current network.
type Initializer interface {
	Initialize(env *Env) error
}

// Finalizer releases the term's storage.
type Finalizer interface {
	Finalize(env *Env)
}

// Updater brings the term's storage in step with a toggle about to be written.
// The network still holds OldWeight when CommitUpdate runs.
type Updater interface {
	CommitUpdate(env *Env, tc ToggleContext)
}

// FullEvaluator writes the statistic of the current network into out.
type FullEvaluator interface {
	EvaluateFull(env *Env, out []float64)
}

// AuxProvider is an auxiliary term publishing shared storage under AuxKey.
type AuxProvider interface {
	AuxKey() string
	BindSlot(s Slot)
}

// AuxConsumer is a term reading shared storage published by other terms.
type AuxConsumer interface {
	Requires() []string
	BindAux(key string, s Slot)
}

// Capability is the set of optional callbacks a term implements.
type Capability uint8

const (
	CapSingleDelta Capability = 1 << iota
	CapBatchDelta
	CapInitialize
	CapFinalize
	CapUpdate
	CapFullEval
)

var capNames = [...]string{"single", "batch", "init", "final", "update", "full"}

// Has reports whether every bit of x is set in c.
func (c Capability) Has(x Capability) bool { return c&x == x }

// String lists the set capabilities, e.g. "single|update".
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, len(capNames))
	for i, name := range capNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}

	return strings.Join(parts, "|")
}

// CapabilitiesOf resolves the optional interfaces implemented by t.
func CapabilitiesOf(t Term) Capability {
	var c Capability
	if _, ok := t.(SingleDeltaer); ok {
		c |= CapSingleDelta
	}
	if _, ok := t.(BatchDeltaer); ok {
		c |= CapBatchDelta
	}
	if _, ok := t.(Initializer); ok {
		c |= CapInitialize
	}
	if _, ok := t.(Finalizer); ok {
		c |= CapFinalize
	}
	if _, ok := t.(Updater); ok {
		c |= CapUpdate
	}
	if _, ok := t.(FullEvaluator); ok {
		c |= CapFullEval
	}

	return c
}
