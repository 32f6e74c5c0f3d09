// SPDX-License-Identifier: MIT
//
// File: random.go
// Role: Bernoulli random networks for starting states and tests.
// Determinism:
//   - Trials run in (tail asc, head asc) order; a fixed seed gives a fixed network.

package network

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrBadProbability indicates p outside [0, 1].
var ErrBadProbability = errors.New("network: probability must lie in [0,1]")

// WeightFn draws the weight of a sampled tie. A zero draw leaves the dyad empty.
type WeightFn func(rng *rand.Rand) float64

// UnitWeight always yields 1.
func UnitWeight(*rand.Rand) float64 { return 1 }

// UniformIntWeight draws integers uniformly from [lo, hi]; hi < lo yields lo.
func UniformIntWeight(lo, hi int) WeightFn {
	return func(rng *rand.Rand) float64 {
		if hi <= lo {
			return float64(lo)
		}
		return float64(lo + rng.IntN(hi-lo+1))
	}
}

// Random samples a network on n vertices in which every addressable dyad
// carries a tie independently with probability p, weighted by weight
// (UnitWeight when nil).
//
// Errors:
//   - ErrBadSize from New; ErrBadProbability; ErrBadWeight for a non-finite draw.
//
// Complexity: O(n² log d).
func Random(n int, p float64, weight WeightFn, rng *rand.Rand, opts ...Option) (*Network, error) {
	nw, err := New(n, opts...)
	if err != nil {
		return nil, err
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("Random: p=%g: %w", p, ErrBadProbability)
	}
	if weight == nil {
		weight = UnitWeight
	}

	for t := 1; t <= n; t++ {
		h0 := 1
		if !nw.directed {
			h0 = t
		}
		for h := h0; h <= n; h++ {
			if t == h && !nw.loops {
				continue
			}
			if rng.Float64() >= p {
				continue
			}
			if err := nw.Set(Vertex(t), Vertex(h), weight(rng)); err != nil {
				return nil, fmt.Errorf("Random: (%d,%d): %w", t, h, err)
			}
		}
	}

	return nw, nil
}
