// Package network provides the weighted relational graph store consumed by the
// change-statistic engine and the SAN sampler.
//
// A Network has a fixed vertex set {1..N} and stores one float64 weight per dyad.
// A dyad is present (an "edge") iff its weight is non-zero; writing a zero weight
// removes it. Directed networks key dyads by the ordered pair (tail, head);
// undirected networks store every dyad canonically as (min, max).
//
// Storage:
//
//	out[v]   balanced red-black tree of v's out-edges keyed by head
//	in[v]    balanced red-black tree of v's in-edges keyed by tail
//
// so lookups, inserts and deletes are O(log d) and per-vertex iteration is
// ordered by the neighbouring vertex id.
//
// Options (Option):
//
//	– WithDirected(directed bool)  ordered vs. unordered dyads (default undirected)
//	– WithLoops()                  permit (v,v) dyads (default rejected)
//
// Errors (sentinel):
//
//	– ErrBadSize            negative vertex count.
//	– ErrVertexOutOfRange   vertex outside [1, N].
//	– ErrLoopNotAllowed     (v,v) on a network without loops.
//	– ErrBadWeight          NaN or ±Inf weight.
//
// Concurrency:
//
//	A Network is NOT safe for concurrent use. Sampling runs are single-threaded;
//	independent runs must use independent Network instances (see Clone).
package network
