// SPDX-License-Identifier: MIT

package term

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/network"
)

// mutualTerm sums f(y_ij, y_ji) over unordered pairs {i,j}, i != j, of a directed network.
type mutualTerm struct {
	form string
	f    func(a, b float64) float64
}

func newMutual(net *network.Network, args Args) (Term, error) {
	if !net.Directed() {
		return nil, errors.Wrap(ErrConfiguration, "mutual: requires a directed network")
	}
	form, err := args.String("form", 0, "min")
	if err != nil {
		return nil, err
	}
	m := &mutualTerm{form: form}
	switch form {
	case "min":
		m.f = math.Min
	case "product":
		m.f = func(a, b float64) float64 { return a * b }
	default:
		return nil, errors.Wrapf(ErrBadArgument, "mutual: unknown form %q", form)
	}

	return m, nil
}

func (m *mutualTerm) Name() string { return "mutual." + m.form }
func (m *mutualTerm) NStats() int  { return 1 }

func (m *mutualTerm) SingleDelta(env *Env, tc ToggleContext, out []float64) {
	if tc.Tail == tc.Head {
		return
	}
	back := env.Net.Get(tc.Head, tc.Tail)
	out[0] = m.f(tc.NewWeight, back) - m.f(tc.OldWeight, back)
}

func (m *mutualTerm) EvaluateFull(env *Env, out []float64) {
	var total float64
	eachEdge(env.Net, func(t, h network.Vertex, w float64) {
		switch {
		case t == h:
		case t < h:
			total += m.f(w, env.Net.Get(h, t))
		case !env.Net.Has(h, t):
			// pair {h,t} not visited from the (h,t) side
			total += m.f(w, 0)
		}
	})
	out[0] = total
}
