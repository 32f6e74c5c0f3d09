// SPDX-License-Identifier: MIT
//
// File: builtin_dyad.go
// Role: Dyad-independent weighted statistics: counts by weight predicate and weight sums.
// Every term here has a closed-form single-toggle delta and a direct full evaluation.

package term

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/network"
)

// eachEdge visits every stored edge of net.
func eachEdge(net *network.Network, fn func(t, h network.Vertex, w float64)) {
	for v := 1; v <= net.Size(); v++ {
		tail := network.Vertex(v)
		net.EachOut(tail, func(head network.Vertex, w float64) bool {
			fn(tail, head, w)
			return true
		})
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// countTerm counts dyads whose weight satisfies pred. Absent dyads (weight 0)
// count too when pred(0) holds, so single deltas and full evaluations agree.
type countTerm struct {
	name string
	pred func(w float64) bool
}

func (c *countTerm) Name() string { return c.name }
func (c *countTerm) NStats() int  { return 1 }

func (c *countTerm) SingleDelta(_ *Env, tc ToggleContext, out []float64) {
	out[0] = indicator(c.pred(tc.NewWeight)) - indicator(c.pred(tc.OldWeight))
}

func (c *countTerm) EvaluateFull(env *Env, out []float64) {
	var n int
	eachEdge(env.Net, func(_, _ network.Vertex, w float64) {
		if c.pred(w) {
			n++
		}
	})
	if c.pred(0) {
		n += env.Net.DyadCount() - env.Net.EdgeCount()
	}
	out[0] = float64(n)
}

func newNonzero(_ *network.Network, args Args) (Term, error) {
	return nonzeroNamed("nonzero", args)
}

func newEdges(_ *network.Network, args Args) (Term, error) {
	return nonzeroNamed("edges", args)
}

func nonzeroNamed(name string, args Args) (Term, error) {
	if err := noArgs(name, args); err != nil {
		return nil, err
	}

	return &countTerm{name: name, pred: func(w float64) bool { return w != 0 }}, nil
}

func newGreaterThan(_ *network.Network, args Args) (Term, error) {
	th, err := args.Float("threshold", 0, 0)
	if err != nil {
		return nil, err
	}

	return &countTerm{name: fmt.Sprintf("greaterthan(%g)", th), pred: func(w float64) bool { return w > th }}, nil
}

func newAtLeast(_ *network.Network, args Args) (Term, error) {
	th, err := args.Float("threshold", 0, 0)
	if err != nil {
		return nil, err
	}

	return &countTerm{name: fmt.Sprintf("atleast(%g)", th), pred: func(w float64) bool { return w >= th }}, nil
}

func newAtMost(_ *network.Network, args Args) (Term, error) {
	th, err := args.Float("threshold", 0, 0)
	if err != nil {
		return nil, err
	}

	return &countTerm{name: fmt.Sprintf("atmost(%g)", th), pred: func(w float64) bool { return w <= th }}, nil
}

func newEqualTo(_ *network.Network, args Args) (Term, error) {
	val, err := args.Float("value", 0, 0)
	if err != nil {
		return nil, err
	}
	tol, err := args.Float("tolerance", 1, 0)
	if err != nil {
		return nil, err
	}
	if tol < 0 {
		return nil, errors.Wrap(ErrBadArgument, "equalto: tolerance must be non-negative")
	}

	return &countTerm{
		name: fmt.Sprintf("equalto(%g,%g)", val, tol),
		pred: func(w float64) bool { return math.Abs(w-val) <= tol },
	}, nil
}

// sumTerm is Σ w^pow over all dyads.
type sumTerm struct {
	pow float64
}

func newSum(_ *network.Network, args Args) (Term, error) {
	p, err := args.Float("pow", 0, 1)
	if err != nil {
		return nil, err
	}
	if p <= 0 {
		return nil, errors.Wrapf(ErrBadArgument, "sum: pow must be positive, got %g", p)
	}

	return &sumTerm{pow: p}, nil
}

func (s *sumTerm) Name() string {
	if s.pow == 1 {
		return "sum"
	}

	return fmt.Sprintf("sum(%g)", s.pow)
}

func (s *sumTerm) NStats() int { return 1 }

func (s *sumTerm) f(w float64) float64 {
	if s.pow == 1 {
		return w
	}

	return math.Pow(w, s.pow)
}

func (s *sumTerm) SingleDelta(_ *Env, tc ToggleContext, out []float64) {
	out[0] = s.f(tc.NewWeight) - s.f(tc.OldWeight)
}

func (s *sumTerm) EvaluateFull(env *Env, out []float64) {
	var total float64
	eachEdge(env.Net, func(_, _ network.Vertex, w float64) {
		total += s.f(w)
	})
	out[0] = total
}
