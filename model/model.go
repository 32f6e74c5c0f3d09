// SPDX-License-Identifier: MIT
//
// File: model.go
// Role: Model construction: term validation, workspace layout, arena wiring
// and the initialisation order.

package model

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/term"
)

// path is the delta path the engine uses for one term.
type path uint8

const (
	pathNone path = iota
	pathSingle
	pathBatch
)

// slotTerm is one term with its resolved capabilities and workspace view.
type slotTerm struct {
	t      term.Term
	caps   term.Capability
	path   path
	offset int
	n      int

	// scratch receives single deltas of multi-toggle batches before they
	// are added into the workspace.
	scratch []float64
}

func (st *slotTerm) view(work []float64) []float64 {
	return work[st.offset : st.offset+st.n]
}

// undoEntry records the weight a dyad held before a speculative write.
type undoEntry struct {
	tail, head network.Vertex
	prev       float64
	next       float64
}

// Model is an ordered collection of terms bound to one network.
type Model struct {
	net   *network.Network
	terms []*slotTerm
	order []int // initialisation order, indices into terms
	width int

	work  []float64
	arena *term.Arena
	env   term.Env
	undo  []undoEntry

	initialized bool
	destroyed   bool
	poisoned    bool
	current     string // term running a callback, for fault reports
}

// New validates terms, lays out the workspace in declaration order, reserves
// arena slots for auxiliary providers, binds consumers and computes the
// initialisation order.
//
// Errors (all wrap term.ErrConfiguration):
//   - auxiliary term (NStats 0) without an updater;
//   - statistic term with neither single nor batch delta;
//   - negative NStats;
//   - two providers publishing the same key;
//   - a required key with no provider, or a dependency cycle.
//
// A term offering both delta paths is evaluated through its single delta;
// a warning is logged.
func New(net *network.Network, terms ...term.Term) (*Model, error) {
	if net == nil {
		return nil, errors.Wrap(term.ErrConfiguration, "model: nil network")
	}

	m := &Model{net: net, arena: term.NewArena()}
	for i, t := range terms {
		st, err := resolve(t)
		if err != nil {
			return nil, errors.Wrapf(err, "term %d", i)
		}
		st.offset = m.width
		m.width += st.n
		m.terms = append(m.terms, st)
	}
	m.work = make([]float64, m.width)
	m.env = term.Env{Net: net, Aux: m.arena}

	if err := m.wire(); err != nil {
		return nil, err
	}

	return m, nil
}

func resolve(t term.Term) (*slotTerm, error) {
	if t == nil {
		return nil, errors.Wrap(term.ErrConfiguration, "nil term")
	}
	st := &slotTerm{t: t, caps: term.CapabilitiesOf(t), n: t.NStats()}
	switch {
	case st.n < 0:
		return nil, errors.Wrapf(term.ErrConfiguration, "%s: negative nstats %d", t.Name(), st.n)
	case st.n == 0:
		if !st.caps.Has(term.CapUpdate) {
			return nil, errors.Wrapf(term.ErrConfiguration, "%s: auxiliary term without updater", t.Name())
		}
		return st, nil
	}

	single, batch := st.caps.Has(term.CapSingleDelta), st.caps.Has(term.CapBatchDelta)
	switch {
	case single && batch:
		klog.Warningf("model: term %s has both single and batch delta; using single", t.Name())
		st.path = pathSingle
	case single:
		st.path = pathSingle
	case batch:
		st.path = pathBatch
	default:
		return nil, errors.Wrapf(term.ErrConfiguration, "%s: statistic term without delta", t.Name())
	}
	if st.path == pathSingle {
		st.scratch = make([]float64, st.n)
	}

	return st, nil
}

// wire reserves provider slots, binds consumers and orders initialisation.
func (m *Model) wire() error {
	provider := make(map[string]int)
	for i, st := range m.terms {
		p, ok := st.t.(term.AuxProvider)
		if !ok {
			continue
		}
		key := p.AuxKey()
		if j, dup := provider[key]; dup {
			return errors.Wrapf(term.ErrConfiguration, "aux %q provided by %s and %s",
				key, m.terms[j].t.Name(), st.t.Name())
		}
		provider[key] = i
		p.BindSlot(m.arena.Reserve(key))
	}

	deps := make([][]int, len(m.terms))
	for i, st := range m.terms {
		c, ok := st.t.(term.AuxConsumer)
		if !ok {
			continue
		}
		for _, key := range c.Requires() {
			j, ok := provider[key]
			if !ok {
				return errors.Wrapf(term.ErrConfiguration, "%s requires aux %q: no provider", st.t.Name(), key)
			}
			if j == i {
				return errors.Wrapf(term.ErrConfiguration, "%s requires its own aux %q", st.t.Name(), key)
			}
			s, _ := m.arena.Lookup(key)
			c.BindAux(key, s)
			deps[i] = append(deps[i], j)
		}
	}

	order, err := initOrder(deps)
	if err != nil {
		return errors.Wrapf(err, "term %s", m.terms[order[len(order)-1]].t.Name())
	}
	m.order = order

	return nil
}

// initOrder returns a topological order of terms in which every term follows
// its providers. Among ready terms the last declared goes first, so a list
// without dependencies initialises in reverse declaration order.
//
// On a cycle the returned order is partial and ends with a term of the cycle.
func initOrder(deps [][]int) ([]int, error) {
	n := len(deps)
	done := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		progress := false
		for i := n - 1; i >= 0; i-- {
			if done[i] || !ready(deps[i], done) {
				continue
			}
			done[i] = true
			order = append(order, i)
			progress = true
		}
		if !progress {
			for i := n - 1; i >= 0; i-- {
				if !done[i] {
					order = append(order, i)
					break
				}
			}
			return order, errors.Wrap(term.ErrConfiguration, "aux dependency cycle")
		}
	}

	return order, nil
}

func ready(deps []int, done []bool) bool {
	for _, j := range deps {
		if !done[j] {
			return false
		}
	}

	return true
}

// NStats returns the statistic-vector width.
func (m *Model) NStats() int { return m.width }

// Network returns the bound network.
func (m *Model) Network() *network.Network { return m.net }

// Offset returns the first workspace index of the i-th declared term,
// or -1 when i is out of range.
func (m *Model) Offset(i int) int {
	if i < 0 || i >= len(m.terms) {
		return -1
	}

	return m.terms[i].offset
}

// Names labels every statistic slot. A term with NStats 1 is labelled by its
// name, wider terms by name#k.
func (m *Model) Names() []string {
	names := make([]string, 0, m.width)
	for _, st := range m.terms {
		if st.n == 1 {
			names = append(names, st.t.Name())
			continue
		}
		for k := 0; k < st.n; k++ {
			names = append(names, st.t.Name()+"#"+strconv.Itoa(k))
		}
	}

	return names
}

// InitOrder returns the term names in initialisation order.
func (m *Model) InitOrder() []string {
	out := make([]string, len(m.order))
	for k, i := range m.order {
		out[k] = m.terms[i].t.Name()
	}

	return out
}

// Poison marks the model unusable. Callers poison after an unrecoverable
// proposal fault.
func (m *Model) Poison() { m.poisoned = true }

// Poisoned reports whether the model was poisoned.
func (m *Model) Poisoned() bool { return m.poisoned }
