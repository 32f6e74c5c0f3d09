// SPDX-License-Identifier: MIT
//
// File: registry.go
// Role: Static name -> factory mapping and term arguments.

package term

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/network"
)

// Value is one term argument: a number or a string.
type Value struct {
	Num   float64
	Str   string
	IsStr bool
}

// Args holds the positional and named arguments of one term occurrence.
type Args struct {
	Pos   []Value
	Named map[string]Value
}

// lookup returns the named argument, else the positional one at pos.
func (a Args) lookup(name string, pos int) (Value, bool) {
	if v, ok := a.Named[name]; ok {
		return v, true
	}
	if pos >= 0 && pos < len(a.Pos) {
		return a.Pos[pos], true
	}

	return Value{}, false
}

// Float returns argument name (or position pos) as a number, def when absent.
func (a Args) Float(name string, pos int, def float64) (float64, error) {
	v, ok := a.lookup(name, pos)
	if !ok {
		return def, nil
	}
	if v.IsStr {
		return 0, errors.Wrapf(ErrBadArgument, "%s: expected a number, got %q", name, v.Str)
	}

	return v.Num, nil
}

// String returns argument name (or position pos) as a string, def when absent.
func (a Args) String(name string, pos int, def string) (string, error) {
	v, ok := a.lookup(name, pos)
	if !ok {
		return def, nil
	}
	if !v.IsStr {
		return "", errors.Wrapf(ErrBadArgument, "%s: expected a string, got %g", name, v.Num)
	}

	return v.Str, nil
}

// Len returns the total number of arguments supplied.
func (a Args) Len() int { return len(a.Pos) + len(a.Named) }

// Factory builds a fresh term instance for net.
type Factory func(net *network.Network, args Args) (Term, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		"edges":           newEdges,
		"nonzero":         newNonzero,
		"sum":             newSum,
		"greaterthan":     newGreaterThan,
		"atleast":         newAtLeast,
		"atmost":          newAtMost,
		"equalto":         newEqualTo,
		"mutual":          newMutual,
		"concurrent_ties": newConcurrentTies,
		"isolates":        newIsolates,
		DegreeKey:         newDegree,
	}
)

// Register adds a factory under name. Built-ins cannot be replaced.
func Register(name string, f Factory) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return errors.Wrap(ErrDuplicateTerm, name)
	}
	registry[name] = f

	return nil
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownTerm, name)
	}

	return f, nil
}

// Names returns the registered term names in ascending order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// noArgs rejects any argument for terms that take none.
func noArgs(name string, args Args) error {
	if args.Len() > 0 {
		return errors.Wrapf(ErrBadArgument, "%s takes no arguments", name)
	}

	return nil
}
