// SPDX-License-Identifier: MIT

package model

import "errors"

var (
	// ErrBadToggle indicates a toggle addressing no dyad of the network or
	// carrying a non-finite weight. The batch is rejected before any mutation.
	ErrBadToggle = errors.New("model: invalid toggle")

	// ErrEngineInvariant indicates a term callback faulted mid-call; rollback
	// guarantees no longer hold.
	ErrEngineInvariant = errors.New("model: engine invariant violated")

	// ErrPoisoned is returned by every call on a model after an invariant
	// violation or an explicit Poison.
	ErrPoisoned = errors.New("model: model is poisoned")

	// ErrLifecycle indicates a call out of order (e.g. ChangeStats before
	// Initialize, or any call after Destroy).
	ErrLifecycle = errors.New("model: call out of lifecycle order")
)
