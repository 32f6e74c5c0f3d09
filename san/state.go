// SPDX-License-Identifier: MIT

package san

// State is a sampler state.
type State uint8

const (
	BurnIn State = iota
	Sampling
	Converged
	Exhausted
	Done
	Failed
)

var stateNames = [...]string{"burnin", "sampling", "converged", "exhausted", "done", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "unknown"
}

// Terminal reports whether no transition leaves s except to Done.
func (s State) Terminal() bool {
	return s == Converged || s == Exhausted || s == Done || s == Failed
}

// Status is the run outcome reported to callers.
type Status uint8

const (
	StatusOK Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}

	return "failed"
}
