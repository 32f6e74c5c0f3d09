// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Vertex/Dyad/Edge value types, Network struct, options, sentinels and constructor.

package network

import (
	"errors"
	"math"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Sentinel errors for network operations.
var (
	// ErrBadSize indicates a negative vertex count was requested.
	ErrBadSize = errors.New("network: vertex count must be non-negative")

	// ErrVertexOutOfRange indicates a vertex outside [1, N].
	ErrVertexOutOfRange = errors.New("network: vertex out of range")

	// ErrLoopNotAllowed indicates a self-dyad on a network without loops.
	ErrLoopNotAllowed = errors.New("network: self-loop not allowed")

	// ErrBadWeight indicates a NaN or infinite weight.
	ErrBadWeight = errors.New("network: weight must be finite")
)

// Vertex is a 1-based vertex identifier.
type Vertex int

// Dyad is an (ordered or canonical unordered) vertex pair.
type Dyad struct {
	Tail, Head Vertex
}

// Edge is a stored dyad with its non-zero weight.
type Edge struct {
	Tail   Vertex
	Head   Vertex
	Weight float64
}

// Option configures a Network before creation.
type Option func(nw *Network)

// WithDirected sets whether dyads are ordered (true) or unordered (false).
func WithDirected(directed bool) Option {
	return func(nw *Network) { nw.directed = directed }
}

// WithLoops permits (v,v) dyads.
func WithLoops() Option {
	return func(nw *Network) { nw.loops = true }
}

// Network is a weighted graph with a fixed vertex set {1..N}.
//
// out[v] holds v's out-edges keyed by head, in[v] holds v's in-edges keyed by tail.
// Undirected dyads live in out[min] and in[max]. Index 0 of both slices is unused.
type Network struct {
	n        int  // vertex count
	directed bool // ordered dyads
	loops    bool // (v,v) permitted

	out    []*redblacktree.Tree // tail -> {head: weight}
	in     []*redblacktree.Tree // head -> {tail: weight}
	nedges int                  // number of dyads with non-zero weight
}

// New creates an empty Network on n vertices.
// By default the network is undirected and rejects loops.
// Complexity: O(n).
func New(n int, opts ...Option) (*Network, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	nw := &Network{n: n}
	for _, opt := range opts {
		opt(nw)
	}
	nw.out = newTrees(n)
	nw.in = newTrees(n)

	return nw, nil
}

// newTrees allocates n+1 empty int-keyed trees (slot 0 unused).
func newTrees(n int) []*redblacktree.Tree {
	trees := make([]*redblacktree.Tree, n+1)
	for v := 1; v <= n; v++ {
		// keys are stored as plain int; utils.IntComparator asserts on int.
		trees[v] = redblacktree.NewWith(utils.IntComparator)
	}

	return trees
}

// Size returns the number of vertices N.
func (nw *Network) Size() int { return nw.n }

// Directed reports whether dyads are ordered.
func (nw *Network) Directed() bool { return nw.directed }

// Loops reports whether (v,v) dyads are permitted.
func (nw *Network) Loops() bool { return nw.loops }

// EdgeCount returns the number of dyads with non-zero weight. O(1).
func (nw *Network) EdgeCount() int { return nw.nedges }

// DyadCount returns the number of addressable dyads.
func (nw *Network) DyadCount() int {
	n := nw.n
	var d int
	if nw.directed {
		d = n * (n - 1)
	} else {
		d = n * (n - 1) / 2
	}
	if nw.loops {
		d += n
	}

	return d
}

// ValidDyad reports whether (t,h) addresses a dyad of this network.
func (nw *Network) ValidDyad(t, h Vertex) error {
	if t < 1 || int(t) > nw.n || h < 1 || int(h) > nw.n {
		return ErrVertexOutOfRange
	}
	if t == h && !nw.loops {
		return ErrLoopNotAllowed
	}

	return nil
}

// Canonical returns the storage order of (t,h): unchanged for directed
// networks, (min,max) for undirected ones.
func (nw *Network) Canonical(t, h Vertex) Dyad {
	if !nw.directed && t > h {
		return Dyad{Tail: h, Head: t}
	}

	return Dyad{Tail: t, Head: h}
}

// SameDyad reports whether two pairs address the same dyad.
func (nw *Network) SameDyad(t1, h1, t2, h2 Vertex) bool {
	return nw.Canonical(t1, h1) == nw.Canonical(t2, h2)
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0)
}

// Toggle is a proposed change of one dyad's weight. Weight 0 denotes removal.
// A batch is an ordered []Toggle; later toggles see the effect of earlier ones.
type Toggle struct {
	Tail   Vertex
	Head   Vertex
	Weight float64
}
