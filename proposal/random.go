// SPDX-License-Identifier: MIT

package proposal

import (
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/wtsan/network"
)

// WeightSampler draws a new weight for a dyad holding current.
// ok == false reports that no weight other than current is available.
type WeightSampler interface {
	Sample(current float64, rng *rand.Rand) (w float64, ok bool)
}

// RandomDyad toggles Batch dyads drawn uniformly at random, each to a weight
// from Weights. Batch <= 0 means 1. Undirected dyads are emitted in
// canonical (min, max) order.
type RandomDyad struct {
	Weights WeightSampler
	Batch   int
}

// Propose implements Proposer.
func (p RandomDyad) Propose(net *network.Network, rng *rand.Rand) Proposal {
	if net.DyadCount() == 0 {
		return Proposal{Class: Impossible}
	}
	k := p.Batch
	if k <= 0 {
		k = 1
	}
	toggles := make([]network.Toggle, 0, k)
	for len(toggles) < k {
		d := drawDyad(net, rng)
		cur := currentWeight(net, toggles, d)
		w, ok := p.Weights.Sample(cur, rng)
		if !ok {
			return Proposal{Class: Unsuccessful}
		}
		toggles = append(toggles, network.Toggle{Tail: d.Tail, Head: d.Head, Weight: w})
	}

	return Proposal{Class: Success, Toggles: toggles}
}

// drawDyad samples uniformly among the addressable dyads of net.
func drawDyad(net *network.Network, rng *rand.Rand) network.Dyad {
	n := net.Size()
	for {
		t := network.Vertex(1 + rng.IntN(n))
		h := network.Vertex(1 + rng.IntN(n))
		if t == h && !net.Loops() {
			continue
		}
		if !net.Directed() && t > h {
			continue
		}

		return network.Dyad{Tail: t, Head: h}
	}
}

// currentWeight is the weight d holds after the toggles proposed so far.
func currentWeight(net *network.Network, proposed []network.Toggle, d network.Dyad) float64 {
	for i := len(proposed) - 1; i >= 0; i-- {
		if proposed[i].Tail == d.Tail && proposed[i].Head == d.Head {
			return proposed[i].Weight
		}
	}

	return net.Get(d.Tail, d.Head)
}

// DiscUnif draws integer weights uniformly from [Min, Max], excluding the
// current weight when it lies in the range.
type DiscUnif struct {
	Min, Max int
}

// Sample implements WeightSampler.
func (d DiscUnif) Sample(current float64, rng *rand.Rand) (float64, bool) {
	if d.Max < d.Min {
		return 0, false
	}
	n := d.Max - d.Min + 1
	if current == math.Trunc(current) && current >= float64(d.Min) && current <= float64(d.Max) {
		if n == 1 {
			return 0, false
		}
		v := d.Min + rng.IntN(n-1)
		if v >= int(current) {
			v++
		}
		return float64(v), true
	}

	return float64(d.Min + rng.IntN(n)), true
}

// Binary flips between absent (0) and present (1).
type Binary struct{}

// Sample implements WeightSampler.
func (Binary) Sample(current float64, _ *rand.Rand) (float64, bool) {
	if current == 0 {
		return 1, true
	}

	return 0, true
}
