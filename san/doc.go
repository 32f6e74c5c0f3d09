// SPDX-License-Identifier: MIT

// Package san implements the simulated-annealing Metropolis–Hastings sampler
// that searches for a network whose tracked statistics match a target.
//
// The sampler works on the offset vector s = stats - target. A proposal with
// tracked change d is scored by the change of the quadratic form s·M·sᵀ
// (M the inverse covariance), less the offset contribution:
//
//	ip    = Σ_i (d·M)[i] * (d[i] + 2*s[i])
//	score = ip - Σ_k d_off[k]*offset[k]
//
// At temperature 0 a proposal is accepted iff score <= 0 (greedy descent);
// otherwise iff score/T <= -ln U with U uniform on (0,1).
//
// A run passes through BurnIn and Sampling, stops in Converged (s reached
// exactly zero) or Exhausted (all rows filled), then Done. Failed is
// reachable from every state.
package san
