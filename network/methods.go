// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Weight lookup/mutation, degrees, ordered iteration and snapshots.
// Determinism:
//   - Every iteration is ordered by vertex id (tree order); Edges() is sorted by (tail, head).

package network

// Get returns the weight of dyad (t,h), 0 when absent or out of range.
// Complexity: O(log d).
func (nw *Network) Get(t, h Vertex) float64 {
	if t < 1 || int(t) > nw.n || h < 1 || int(h) > nw.n {
		return 0
	}
	d := nw.Canonical(t, h)
	w, ok := nw.out[d.Tail].Get(int(d.Head))
	if !ok {
		return 0
	}

	return w.(float64)
}

// Has reports whether dyad (t,h) carries a non-zero weight.
func (nw *Network) Has(t, h Vertex) bool {
	return nw.Get(t, h) != 0
}

// Set writes weight w on dyad (t,h); w == 0 removes the edge.
//
// Errors:
//   - ErrVertexOutOfRange, ErrLoopNotAllowed from ValidDyad.
//   - ErrBadWeight for NaN/±Inf.
//
// Complexity: O(log d).
func (nw *Network) Set(t, h Vertex, w float64) error {
	if err := nw.ValidDyad(t, h); err != nil {
		return err
	}
	if !validWeight(w) {
		return ErrBadWeight
	}
	d := nw.Canonical(t, h)
	tail, head := int(d.Tail), int(d.Head)

	_, present := nw.out[tail].Get(head)
	if w == 0 {
		if present {
			nw.out[tail].Remove(head)
			nw.in[head].Remove(tail)
			nw.nedges--
		}
		return nil
	}
	if !present {
		nw.nedges++
	}
	nw.out[tail].Put(head, w)
	nw.in[head].Put(tail, w)

	return nil
}

// OutDegree returns the number of stored out-edges of v.
// For undirected networks this counts neighbours with a larger id.
func (nw *Network) OutDegree(v Vertex) int {
	if v < 1 || int(v) > nw.n {
		return 0
	}

	return nw.out[v].Size()
}

// InDegree returns the number of stored in-edges of v.
// For undirected networks this counts neighbours with a smaller id.
func (nw *Network) InDegree(v Vertex) int {
	if v < 1 || int(v) > nw.n {
		return 0
	}

	return nw.in[v].Size()
}

// Degree returns the total number of edges incident to v.
func (nw *Network) Degree(v Vertex) int {
	return nw.OutDegree(v) + nw.InDegree(v)
}

// EachOut calls fn for every stored out-edge of v in ascending head order
// until fn returns false. fn must not mutate the network.
func (nw *Network) EachOut(v Vertex, fn func(head Vertex, w float64) bool) {
	if v < 1 || int(v) > nw.n {
		return
	}
	it := nw.out[v].Iterator()
	for it.Next() {
		if !fn(Vertex(it.Key().(int)), it.Value().(float64)) {
			return
		}
	}
}

// EachIn calls fn for every stored in-edge of v in ascending tail order
// until fn returns false. fn must not mutate the network.
func (nw *Network) EachIn(v Vertex, fn func(tail Vertex, w float64) bool) {
	if v < 1 || int(v) > nw.n {
		return
	}
	it := nw.in[v].Iterator()
	for it.Next() {
		if !fn(Vertex(it.Key().(int)), it.Value().(float64)) {
			return
		}
	}
}

// EachNeighbor visits every edge incident to v: out-edges first, then in-edges.
func (nw *Network) EachNeighbor(v Vertex, fn func(u Vertex, w float64) bool) {
	stopped := false
	nw.EachOut(v, func(u Vertex, w float64) bool {
		if !fn(u, w) {
			stopped = true
			return false
		}
		return true
	})
	if stopped {
		return
	}
	nw.EachIn(v, fn)
}

// Edges returns every stored edge sorted by (tail, head).
// Complexity: O(V + E).
func (nw *Network) Edges() []Edge {
	out := make([]Edge, 0, nw.nedges)
	for t := 1; t <= nw.n; t++ {
		tail := Vertex(t)
		nw.EachOut(tail, func(head Vertex, w float64) bool {
			out = append(out, Edge{Tail: tail, Head: head, Weight: w})
			return true
		})
	}

	return out
}

// TotalWeight returns the sum of all stored weights.
func (nw *Network) TotalWeight() float64 {
	var s float64
	for t := 1; t <= nw.n; t++ {
		nw.EachOut(Vertex(t), func(_ Vertex, w float64) bool {
			s += w
			return true
		})
	}

	return s
}

// CloneEmpty returns a network with identical configuration and no edges.
func (nw *Network) CloneEmpty() *Network {
	c := &Network{n: nw.n, directed: nw.directed, loops: nw.loops}
	c.out = newTrees(nw.n)
	c.in = newTrees(nw.n)

	return c
}

// Clone returns a deep copy of the network.
// Complexity: O((V + E) log d).
func (nw *Network) Clone() *Network {
	c := nw.CloneEmpty()
	for _, e := range nw.Edges() {
		c.out[e.Tail].Put(int(e.Head), e.Weight)
		c.in[e.Head].Put(int(e.Tail), e.Weight)
	}
	c.nedges = nw.nedges

	return c
}

// FromEdges builds a network on n vertices from an edge list.
// Later entries for the same dyad overwrite earlier ones.
func FromEdges(n int, edges []Edge, opts ...Option) (*Network, error) {
	nw, err := New(n, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err = nw.Set(e.Tail, e.Head, e.Weight); err != nil {
			return nil, err
		}
	}

	return nw, nil
}
