// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/term"
)

// Initialize creates every term's storage in initialisation order. A term
// with an Initializer is initialised through it; otherwise an Updater
// receives term.InitToggle once. Pure statistic terms are skipped.
func (m *Model) Initialize() (err error) {
	switch {
	case m.poisoned:
		return ErrPoisoned
	case m.destroyed, m.initialized:
		return errors.Wrap(ErrLifecycle, "Initialize")
	}
	defer m.guard(&err)

	for _, i := range m.order {
		st := m.terms[i]
		m.current = st.t.Name()
		switch t := st.t.(type) {
		case term.Initializer:
			if err := t.Initialize(&m.env); err != nil {
				return errors.Wrapf(err, "initialize %s", st.t.Name())
			}
		case term.Updater:
			t.CommitUpdate(&m.env, term.InitToggle)
		}
	}
	m.current = ""
	m.initialized = true

	return nil
}

// Destroy finalises terms in declaration order, drops the per-term buffers
// and releases the arena once. Calling Destroy again is a no-op.
func (m *Model) Destroy() (err error) {
	if m.destroyed {
		return nil
	}
	defer func() {
		for _, st := range m.terms {
			st.scratch = nil
		}
		m.arena.Release()
		m.work = nil
		m.undo = nil
		m.destroyed = true
	}()
	defer m.guard(&err)

	if m.initialized {
		for _, st := range m.terms {
			if f, ok := st.t.(term.Finalizer); ok {
				m.current = st.t.Name()
				f.Finalize(&m.env)
			}
		}
	}
	m.current = ""

	return nil
}

// usable gates every workspace operation.
func (m *Model) usable(op string) error {
	switch {
	case m.poisoned:
		return ErrPoisoned
	case m.destroyed || !m.initialized:
		return errors.Wrap(ErrLifecycle, op)
	}

	return nil
}

// guard converts a panic raised by a term callback into ErrEngineInvariant
// and poisons the model. It must be deferred directly.
func (m *Model) guard(err *error) {
	r := recover()
	if r == nil {
		return
	}
	m.poisoned = true
	*err = errors.Wrapf(ErrEngineInvariant, "term %q: %s", m.current, fmt.Sprint(r))
	m.current = ""
}
