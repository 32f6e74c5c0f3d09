// SPDX-License-Identifier: MIT
//
// File: arena.go
// Role: Model-owned shared storage for auxiliary terms, addressed by Slot index.

package term

// Slot addresses one entry of an Arena.
type Slot int

// NoSlot is the zero binding of an unbound provider or consumer.
const NoSlot Slot = -1

// Arena holds the shared storage of auxiliary terms for one Model.
// Terms keep Slot indices, never references to each other.
type Arena struct {
	keys  []string
	slots []any
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Reserve allocates a slot for key and returns it. Reserving an existing key
// returns the existing slot.
func (a *Arena) Reserve(key string) Slot {
	if s, ok := a.Lookup(key); ok {
		return s
	}
	a.keys = append(a.keys, key)
	a.slots = append(a.slots, nil)

	return Slot(len(a.slots) - 1)
}

// Lookup returns the slot reserved for key.
func (a *Arena) Lookup(key string) (Slot, bool) {
	for i, k := range a.keys {
		if k == key {
			return Slot(i), true
		}
	}

	return NoSlot, false
}

// Get returns the value stored in s (nil if unset or out of range).
func (a *Arena) Get(s Slot) any {
	if s < 0 || int(s) >= len(a.slots) {
		return nil
	}

	return a.slots[s]
}

// Set stores v in s. Panics on an unreserved slot: that is a wiring bug.
func (a *Arena) Set(s Slot, v any) {
	a.slots[s] = v
}

// Release drops every stored value. Reserved keys are kept.
func (a *Arena) Release() {
	for i := range a.slots {
		a.slots[i] = nil
	}
}
