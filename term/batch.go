// SPDX-License-Identifier: MIT

package term

import "github.com/katalvlaran/wtsan/network"

// BatchFromFull computes a batch delta from a full evaluator: evaluate,
// apply the batch, evaluate again, subtract, then undo the batch in reverse
// from a log of previous weights. The network ends as it began.
func BatchFromFull(env *Env, toggles []network.Toggle, out []float64, eval func(env *Env, out []float64)) {
	before := make([]float64, len(out))
	eval(env, before)

	prev := make([]float64, len(toggles))
	for i, tg := range toggles {
		prev[i] = env.Net.Get(tg.Tail, tg.Head)
		_ = env.Net.Set(tg.Tail, tg.Head, tg.Weight)
	}

	eval(env, out)
	for i := range out {
		out[i] -= before[i]
	}

	for i := len(toggles) - 1; i >= 0; i-- {
		_ = env.Net.Set(toggles[i].Tail, toggles[i].Head, prev[i])
	}
}
