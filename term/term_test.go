// SPDX-License-Identifier: MIT
// Package term_test verifies capability resolution, argument handling and the
// agreement between single-toggle deltas and full evaluations of built-in terms.

package term_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/term"
)

func build(t *testing.T, net *network.Network, name string, args term.Args) term.Term {
	t.Helper()
	f, err := term.Lookup(name)
	require.NoError(t, err)
	tm, err := f(net, args)
	require.NoError(t, err)

	return tm
}

func num(v float64) term.Value { return term.Value{Num: v} }
func str(s string) term.Value  { return term.Value{Str: s, IsStr: true} }

func TestCapabilitiesOf(t *testing.T) {
	net, _ := network.New(3)

	require.Equal(t, term.CapSingleDelta|term.CapFullEval, term.CapabilitiesOf(build(t, net, "edges", term.Args{})))
	require.Equal(t, term.CapBatchDelta|term.CapFullEval, term.CapabilitiesOf(build(t, net, "isolates", term.Args{})))
	require.Equal(t, term.CapFinalize|term.CapUpdate, term.CapabilitiesOf(build(t, net, "degree", term.Args{})))

	require.True(t, term.InitToggle.IsInit())
	require.False(t, term.ToggleContext{Tail: 1, Head: 2, NewWeight: 1}.IsInit())

	c := term.CapSingleDelta | term.CapUpdate
	require.True(t, c.Has(term.CapUpdate))
	require.False(t, c.Has(term.CapBatchDelta))
	require.Equal(t, "single|update", c.String())
	require.Equal(t, "none", term.Capability(0).String())
}

func TestRegistry(t *testing.T) {
	_, err := term.Lookup("nope")
	require.ErrorIs(t, err, term.ErrUnknownTerm)

	require.ErrorIs(t, term.Register("edges", nil), term.ErrDuplicateTerm)
	require.Contains(t, term.Names(), "concurrent_ties")
	require.Contains(t, term.Names(), term.DegreeKey)
}

func TestArgs(t *testing.T) {
	net, _ := network.New(3)
	dnet, _ := network.New(3, network.WithDirected(true))

	gt := build(t, net, "greaterthan", term.Args{Pos: []term.Value{num(2)}})
	require.Equal(t, "greaterthan(2)", gt.Name())

	gt = build(t, net, "greaterthan", term.Args{Named: map[string]term.Value{"threshold": num(1.5)}})
	require.Equal(t, "greaterthan(1.5)", gt.Name())

	f, _ := term.Lookup("greaterthan")
	_, err := f(net, term.Args{Pos: []term.Value{str("x")}})
	require.ErrorIs(t, err, term.ErrBadArgument)

	f, _ = term.Lookup("edges")
	_, err = f(net, term.Args{Pos: []term.Value{num(1)}})
	require.ErrorIs(t, err, term.ErrBadArgument)

	f, _ = term.Lookup("sum")
	_, err = f(net, term.Args{Named: map[string]term.Value{"pow": num(0)}})
	require.ErrorIs(t, err, term.ErrBadArgument)

	f, _ = term.Lookup("mutual")
	_, err = f(net, term.Args{})
	require.ErrorIs(t, err, term.ErrConfiguration)
	_, err = f(dnet, term.Args{Pos: []term.Value{str("max")}})
	require.ErrorIs(t, err, term.ErrBadArgument)
	m, err := f(dnet, term.Args{Pos: []term.Value{str("product")}})
	require.NoError(t, err)
	require.Equal(t, "mutual.product", m.Name())
}

func TestArena(t *testing.T) {
	a := term.NewArena()
	s := a.Reserve("x")
	require.Equal(t, s, a.Reserve("x"))

	a.Set(s, 42)
	require.Equal(t, 42, a.Get(s))
	require.Nil(t, a.Get(term.NoSlot))

	got, ok := a.Lookup("x")
	require.True(t, ok)
	require.Equal(t, s, got)

	a.Release()
	require.Nil(t, a.Get(s))
}

// randomToggle returns a valid dyad and a new weight in {0,1,2,3}.
func randomToggle(rng *rand.Rand, net *network.Network) network.Toggle {
	n := net.Size()
	for {
		tl := network.Vertex(rng.IntN(n) + 1)
		hd := network.Vertex(rng.IntN(n) + 1)
		if net.ValidDyad(tl, hd) == nil {
			return network.Toggle{Tail: tl, Head: hd, Weight: float64(rng.IntN(4))}
		}
	}
}

// TestSingleDeltaMatchesFullEvaluation walks random toggles and checks that every
// SingleDelta equals the difference of two EvaluateFull calls around Set.
func TestSingleDeltaMatchesFullEvaluation(t *testing.T) {
	cases := []struct {
		name     string
		directed bool
		loops    bool
		args     term.Args
	}{
		{"edges", false, false, term.Args{}},
		{"edges", false, true, term.Args{}},
		{"sum", false, false, term.Args{}},
		{"sum", true, true, term.Args{Pos: []term.Value{num(2)}}},
		{"greaterthan", false, false, term.Args{Pos: []term.Value{num(1)}}},
		{"atleast", true, false, term.Args{Pos: []term.Value{num(2)}}},
		{"atmost", false, true, term.Args{Pos: []term.Value{num(1)}}},
		{"equalto", false, false, term.Args{Pos: []term.Value{num(2)}}},
		{"mutual", true, false, term.Args{}},
		{"mutual", true, true, term.Args{}},
		{"mutual", true, false, term.Args{Pos: []term.Value{str("product")}}},
		{"concurrent_ties", false, false, term.Args{}},
		{"concurrent_ties", true, false, term.Args{}},
		{"concurrent_ties", false, true, term.Args{}},
		{"concurrent_ties", true, true, term.Args{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(7, 11))
			opts := []network.Option{network.WithDirected(tc.directed)}
			if tc.loops {
				opts = append(opts, network.WithLoops())
			}
			net, err := network.New(6, opts...)
			require.NoError(t, err)
			env := &term.Env{Net: net, Aux: term.NewArena()}

			tm := build(t, net, tc.name, tc.args)
			sd, ok := tm.(term.SingleDeltaer)
			require.True(t, ok)
			fe, ok := tm.(term.FullEvaluator)
			require.True(t, ok)

			// wire the degree auxiliary when the term needs it
			var aux term.Updater
			if ac, ok := tm.(term.AuxConsumer); ok {
				deg := build(t, net, term.DegreeKey, term.Args{})
				slot := env.Aux.Reserve(term.DegreeKey)
				deg.(term.AuxProvider).BindSlot(slot)
				ac.BindAux(term.DegreeKey, slot)
				deg.(term.Updater).CommitUpdate(env, term.InitToggle)
				aux = deg.(term.Updater)
			}

			before, after, delta := make([]float64, 1), make([]float64, 1), make([]float64, 1)
			for i := 0; i < 300; i++ {
				tg := randomToggle(rng, net)
				ctx := term.ToggleContext{Index: 0, Tail: tg.Tail, Head: tg.Head, OldWeight: net.Get(tg.Tail, tg.Head), NewWeight: tg.Weight}

				delta[0] = 0
				sd.SingleDelta(env, ctx, delta)
				fe.EvaluateFull(env, before)

				if aux != nil {
					aux.CommitUpdate(env, ctx)
				}
				require.NoError(t, net.Set(tg.Tail, tg.Head, tg.Weight))
				fe.EvaluateFull(env, after)

				require.InDelta(t, after[0]-before[0], delta[0], 1e-9, "step %d toggle %+v", i, tg)
			}
		})
	}
}

// TestConcurrentTies_UndirectedLoop adds and removes a loop on an isolated
// vertex; the loop alone already makes the vertex concurrent.
func TestConcurrentTies_UndirectedLoop(t *testing.T) {
	net, err := network.New(3, network.WithLoops())
	require.NoError(t, err)
	env := &term.Env{Net: net, Aux: term.NewArena()}

	ct := build(t, net, "concurrent_ties", term.Args{})
	deg := build(t, net, term.DegreeKey, term.Args{})
	slot := env.Aux.Reserve(term.DegreeKey)
	deg.(term.AuxProvider).BindSlot(slot)
	ct.(term.AuxConsumer).BindAux(term.DegreeKey, slot)
	deg.(term.Updater).CommitUpdate(env, term.InitToggle)

	add := term.ToggleContext{Tail: 1, Head: 1, OldWeight: 0, NewWeight: 1}
	out := make([]float64, 1)
	ct.(term.SingleDeltaer).SingleDelta(env, add, out)
	require.Equal(t, 1.0, out[0])

	deg.(term.Updater).CommitUpdate(env, add)
	require.NoError(t, net.Set(1, 1, 1))
	ct.(term.FullEvaluator).EvaluateFull(env, out)
	require.Equal(t, 1.0, out[0])

	out[0] = 0
	ct.(term.SingleDeltaer).SingleDelta(env, term.ToggleContext{Tail: 1, Head: 1, OldWeight: 1, NewWeight: 0}, out)
	require.Equal(t, -1.0, out[0])
}

func TestBatchFromFull_RestoresNetwork(t *testing.T) {
	net, _ := network.New(5)
	require.NoError(t, net.Set(1, 2, 1))
	require.NoError(t, net.Set(3, 4, 2))
	snapshot := net.Edges()
	env := &term.Env{Net: net, Aux: term.NewArena()}

	iso := build(t, net, "isolates", term.Args{})
	bd := iso.(term.BatchDeltaer)

	out := make([]float64, 1)
	// isolate 2 then connect 5 then re-touch the same dyad
	bd.BatchDelta(env, []network.Toggle{{Tail: 1, Head: 2, Weight: 0}, {Tail: 5, Head: 1, Weight: 3}, {Tail: 2, Head: 1, Weight: 0}}, out)
	// before: isolates {5} = 1; after: 2 isolated, 1–5 tied => {2} = 1
	require.Equal(t, 0.0, out[0])
	require.Equal(t, snapshot, net.Edges())

	bd.BatchDelta(env, []network.Toggle{{Tail: 3, Head: 4, Weight: 0}}, out)
	require.Equal(t, 2.0, out[0])
	require.Equal(t, snapshot, net.Edges())
}
