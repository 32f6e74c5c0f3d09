// Package term defines the statistic plug-in contract of the change-statistic
// engine, the shared auxiliary arena, and the built-in weighted statistics.
//
// A Term is one statistic definition. Beyond Name and NStats, everything a term
// can do is an optional capability, expressed as a small interface:
//
//	SingleDeltaer    change caused by one dyad moving to a new weight
//	BatchDeltaer     net change of a whole ordered batch
//	Initializer      create private/shared storage
//	Finalizer        release private/shared storage
//	Updater          keep storage in step with a committed (or speculated) toggle
//	FullEvaluator    statistic of the current network, computed directly
//
// CapabilitiesOf resolves these once into a Capability bitset so the engine
// never probes for missing callbacks in its hot loop.
//
// Auxiliary terms (NStats() == 0) contribute no statistics; they maintain
// shared state in the Model's Arena for other terms. Providers announce a key
// (AuxProvider), consumers list the keys they need (AuxConsumer) and are bound
// to arena slots before initialization. The dependency is explicit: a consumer is
// always initialized after its providers.
//
// Callbacks that must not produce statistics (Initialize, Finalize,
// CommitUpdate) receive no output slice, so writing statistics from them is
// impossible by construction.
//
// Built-in terms (see Lookup / Names):
//
//	edges, nonzero           number of dyads with non-zero weight
//	sum(pow=1)               Σ w^pow over stored dyads
//	greaterthan(threshold=0) number of dyads with w > threshold
//	atleast(threshold=0)     number of dyads with w ≥ threshold
//	atmost(threshold=0)      number of dyads with w ≤ threshold
//	equalto(value=0, tolerance=0)
//	mutual(form="min"|"product")   directed networks only
//	concurrent_ties          ties beyond each vertex's first (uses the degree auxiliary)
//	isolates                 vertices without incident ties (batch delta from full evaluation)
//	degree                   auxiliary: shared per-vertex tie counts
package term
