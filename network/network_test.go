// SPDX-License-Identifier: MIT
// Package network_test locks in the dyad storage contract of network.Network.

package network_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wtsan/network"
)

func mustNew(t *testing.T, n int, opts ...network.Option) *network.Network {
	t.Helper()
	nw, err := network.New(n, opts...)
	require.NoError(t, err)

	return nw
}

func TestNew_BadSize(t *testing.T) {
	_, err := network.New(-1)
	require.ErrorIs(t, err, network.ErrBadSize)

	nw, err := network.New(0)
	require.NoError(t, err)
	require.Equal(t, 0, nw.Size())
	require.Empty(t, nw.Edges())
}

func TestSetGet_Undirected_Canonical(t *testing.T) {
	nw := mustNew(t, 4)

	require.NoError(t, nw.Set(3, 1, 2.5))
	require.Equal(t, 2.5, nw.Get(1, 3))
	require.Equal(t, 2.5, nw.Get(3, 1))
	require.Equal(t, 1, nw.EdgeCount())

	// stored once, as (1,3)
	require.Equal(t, []network.Edge{{Tail: 1, Head: 3, Weight: 2.5}}, nw.Edges())
	require.Equal(t, 1, nw.OutDegree(1))
	require.Equal(t, 1, nw.InDegree(3))
	require.Equal(t, 1, nw.Degree(1))
	require.Equal(t, 1, nw.Degree(3))

	// overwrite keeps the count
	require.NoError(t, nw.Set(1, 3, 4))
	require.Equal(t, 1, nw.EdgeCount())
	require.Equal(t, 4.0, nw.Get(3, 1))

	// zero removes
	require.NoError(t, nw.Set(1, 3, 0))
	require.Equal(t, 0, nw.EdgeCount())
	require.False(t, nw.Has(1, 3))
	require.Equal(t, 0, nw.Degree(1))

	// removing an absent dyad is a no-op
	require.NoError(t, nw.Set(2, 4, 0))
	require.Equal(t, 0, nw.EdgeCount())
}

func TestSetGet_Directed(t *testing.T) {
	nw := mustNew(t, 3, network.WithDirected(true))

	require.NoError(t, nw.Set(2, 1, 1))
	require.Equal(t, 1.0, nw.Get(2, 1))
	require.Equal(t, 0.0, nw.Get(1, 2))
	require.NoError(t, nw.Set(1, 2, 3))
	require.Equal(t, 2, nw.EdgeCount())
	require.Equal(t, 1, nw.OutDegree(1))
	require.Equal(t, 1, nw.InDegree(1))
	require.False(t, nw.SameDyad(1, 2, 2, 1))
}

func TestSet_Errors(t *testing.T) {
	nw := mustNew(t, 3)

	require.ErrorIs(t, nw.Set(0, 1, 1), network.ErrVertexOutOfRange)
	require.ErrorIs(t, nw.Set(1, 4, 1), network.ErrVertexOutOfRange)
	require.ErrorIs(t, nw.Set(2, 2, 1), network.ErrLoopNotAllowed)
	require.ErrorIs(t, nw.Set(1, 2, math.NaN()), network.ErrBadWeight)
	require.ErrorIs(t, nw.Set(1, 2, math.Inf(1)), network.ErrBadWeight)
	require.Equal(t, 0, nw.EdgeCount())

	looped := mustNew(t, 3, network.WithLoops())
	require.NoError(t, looped.Set(2, 2, 1))
	require.Equal(t, 1.0, looped.Get(2, 2))
}

func TestIteration_Ordered(t *testing.T) {
	nw := mustNew(t, 5)
	for _, e := range []network.Edge{{Tail: 3, Head: 5, Weight: 1}, {Tail: 3, Head: 1, Weight: 2}, {Tail: 3, Head: 4, Weight: 3}, {Tail: 2, Head: 3, Weight: 4}} {
		require.NoError(t, nw.Set(e.Tail, e.Head, e.Weight))
	}

	var seen []network.Vertex
	nw.EachNeighbor(3, func(u network.Vertex, _ float64) bool {
		seen = append(seen, u)
		return true
	})
	// out-edges of 3 (heads 4,5) then in-edges (tails 1,2)
	require.Equal(t, []network.Vertex{4, 5, 1, 2}, seen)

	// early stop
	seen = seen[:0]
	nw.EachNeighbor(3, func(u network.Vertex, _ float64) bool {
		seen = append(seen, u)
		return len(seen) < 3
	})
	require.Len(t, seen, 3)

	require.Equal(t, []network.Edge{
		{Tail: 1, Head: 3, Weight: 2},
		{Tail: 2, Head: 3, Weight: 4},
		{Tail: 3, Head: 4, Weight: 3},
		{Tail: 3, Head: 5, Weight: 1},
	}, nw.Edges())
	require.Equal(t, 10.0, nw.TotalWeight())
}

func TestClone_Independent(t *testing.T) {
	nw := mustNew(t, 4, network.WithDirected(true))
	require.NoError(t, nw.Set(1, 2, 1))
	require.NoError(t, nw.Set(4, 3, 2))

	c := nw.Clone()
	require.Equal(t, nw.Edges(), c.Edges())
	require.Equal(t, nw.EdgeCount(), c.EdgeCount())
	require.True(t, c.Directed())

	require.NoError(t, c.Set(1, 2, 0))
	require.Equal(t, 1.0, nw.Get(1, 2))
	require.Equal(t, 1, c.EdgeCount())

	e := nw.CloneEmpty()
	require.Equal(t, 4, e.Size())
	require.Equal(t, 0, e.EdgeCount())
}

func TestDyadCount(t *testing.T) {
	require.Equal(t, 6, mustNew(t, 4).DyadCount())
	require.Equal(t, 12, mustNew(t, 4, network.WithDirected(true)).DyadCount())
	require.Equal(t, 10, mustNew(t, 4, network.WithLoops()).DyadCount())
}

func TestFromEdges(t *testing.T) {
	nw, err := network.FromEdges(3, []network.Edge{{Tail: 1, Head: 2, Weight: 1}, {Tail: 2, Head: 1, Weight: 5}})
	require.NoError(t, err)
	require.Equal(t, 1, nw.EdgeCount())
	require.Equal(t, 5.0, nw.Get(1, 2))

	_, err = network.FromEdges(2, []network.Edge{{Tail: 1, Head: 3, Weight: 1}})
	require.ErrorIs(t, err, network.ErrVertexOutOfRange)
}

func TestRandom(t *testing.T) {
	_, err := network.Random(3, 1.5, nil, rand.New(rand.NewPCG(1, 1)))
	require.ErrorIs(t, err, network.ErrBadProbability)

	full, err := network.Random(4, 1, nil, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	require.Equal(t, full.DyadCount(), full.EdgeCount())

	empty, err := network.Random(4, 0, nil, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	require.Zero(t, empty.EdgeCount())

	a, _ := network.Random(8, 0.4, network.UniformIntWeight(1, 3), rand.New(rand.NewPCG(5, 5)), network.WithDirected(true))
	b, _ := network.Random(8, 0.4, network.UniformIntWeight(1, 3), rand.New(rand.NewPCG(5, 5)), network.WithDirected(true))
	require.Equal(t, a.Edges(), b.Edges())
	for _, e := range a.Edges() {
		require.GreaterOrEqual(t, e.Weight, 1.0)
		require.LessOrEqual(t, e.Weight, 3.0)
	}
}
