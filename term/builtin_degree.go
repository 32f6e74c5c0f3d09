// SPDX-License-Identifier: MIT
//
// File: builtin_degree.go
// Role: Degree-based statistics and the shared "degree" auxiliary.
//   - degree:          auxiliary (NStats 0); per-vertex tie counts in the arena.
//   - concurrent_ties: Σ_v max(deg_v - 1, 0), read from the degree auxiliary.
//   - isolates:        vertices with no incident tie; batch delta via BatchFromFull.

package term

import "github.com/katalvlaran/wtsan/network"

// DegreeKey is the arena key (and registry name) of the degree auxiliary.
const DegreeKey = "degree"

// DegreeTable counts non-zero ties per vertex in storage order:
// Out[v] ties stored with v as tail, In[v] ties stored with v as head.
// Index 0 is unused.
type DegreeTable struct {
	Out []int
	In  []int
}

// Total returns all ties incident to v.
func (d *DegreeTable) Total(v network.Vertex) int {
	return d.Out[v] + d.In[v]
}

type degreeTerm struct {
	slot Slot
}

func newDegree(_ *network.Network, args Args) (Term, error) {
	if err := noArgs(DegreeKey, args); err != nil {
		return nil, err
	}

	return &degreeTerm{slot: NoSlot}, nil
}

func (d *degreeTerm) Name() string      { return DegreeKey }
func (d *degreeTerm) NStats() int       { return 0 }
func (d *degreeTerm) AuxKey() string    { return DegreeKey }
func (d *degreeTerm) BindSlot(s Slot)   { d.slot = s }
func (d *degreeTerm) Finalize(env *Env) { env.Aux.Set(d.slot, nil) }

// CommitUpdate builds the table on InitToggle and keeps it current afterwards.
func (d *degreeTerm) CommitUpdate(env *Env, tc ToggleContext) {
	if tc.IsInit() {
		n := env.Net.Size()
		tbl := &DegreeTable{Out: make([]int, n+1), In: make([]int, n+1)}
		eachEdge(env.Net, func(t, h network.Vertex, _ float64) {
			tbl.Out[t]++
			tbl.In[h]++
		})
		env.Aux.Set(d.slot, tbl)
		return
	}
	if !tc.Flipped() {
		return
	}
	tbl := env.Aux.Get(d.slot).(*DegreeTable)
	dy := env.Net.Canonical(tc.Tail, tc.Head)
	step := -1
	if tc.NewWeight != 0 {
		step = 1
	}
	tbl.Out[dy.Tail] += step
	tbl.In[dy.Head] += step
}

// concurrentTies counts, per vertex, the ties beyond its first.
// Directed networks count out-ties at the tail and in-ties at the head.
type concurrentTies struct {
	directed bool
	slot     Slot
}

func newConcurrentTies(net *network.Network, args Args) (Term, error) {
	if err := noArgs("concurrent_ties", args); err != nil {
		return nil, err
	}

	return &concurrentTies{directed: net.Directed(), slot: NoSlot}, nil
}

func (c *concurrentTies) Name() string       { return "concurrent_ties" }
func (c *concurrentTies) NStats() int        { return 1 }
func (c *concurrentTies) Requires() []string { return []string{DegreeKey} }

func (c *concurrentTies) BindAux(key string, s Slot) {
	if key == DegreeKey {
		c.slot = s
	}
}

func (c *concurrentTies) SingleDelta(env *Env, tc ToggleContext, out []float64) {
	if !tc.Flipped() {
		return
	}
	tbl := env.Aux.Get(c.slot).(*DegreeTable)
	dy := env.Net.Canonical(tc.Tail, tc.Head)
	step := -1
	if tc.NewWeight != 0 {
		step = 1
	}

	switch {
	case c.directed:
		out[0] += excessChange(tbl.Out[dy.Tail], step) + excessChange(tbl.In[dy.Head], step)
	case dy.Tail == dy.Head:
		// an undirected loop counts twice toward its vertex's degree
		out[0] += excessChange(tbl.Total(dy.Tail), 2*step)
	default:
		out[0] += excessChange(tbl.Total(dy.Tail), step) + excessChange(tbl.Total(dy.Head), step)
	}
}

func (c *concurrentTies) EvaluateFull(env *Env, out []float64) {
	var total int
	for v := 1; v <= env.Net.Size(); v++ {
		vx := network.Vertex(v)
		if c.directed {
			total += excess(env.Net.OutDegree(vx)) + excess(env.Net.InDegree(vx))
		} else {
			total += excess(env.Net.Degree(vx))
		}
	}
	out[0] = float64(total)
}

// excessChange is excess(deg+step) - excess(deg).
func excessChange(deg, step int) float64 {
	return float64(excess(deg+step) - excess(deg))
}

func excess(deg int) int {
	if deg > 1 {
		return deg - 1
	}

	return 0
}

// isolatesTerm counts vertices without incident ties.
type isolatesTerm struct{}

func newIsolates(_ *network.Network, args Args) (Term, error) {
	if err := noArgs("isolates", args); err != nil {
		return nil, err
	}

	return isolatesTerm{}, nil
}

func (isolatesTerm) Name() string { return "isolates" }
func (isolatesTerm) NStats() int  { return 1 }

func (i isolatesTerm) BatchDelta(env *Env, toggles []network.Toggle, out []float64) {
	BatchFromFull(env, toggles, out, i.EvaluateFull)
}

func (isolatesTerm) EvaluateFull(env *Env, out []float64) {
	var n int
	for v := 1; v <= env.Net.Size(); v++ {
		if env.Net.Degree(network.Vertex(v)) == 0 {
			n++
		}
	}
	out[0] = float64(n)
}
