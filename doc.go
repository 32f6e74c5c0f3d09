// Package wtsan computes change statistics of weighted networks and samples
// networks toward target statistics by simulated annealing.
//
// The module is organised as one package per concern:
//
//	network/    weighted dyad store: ordered red-black edge index, canonical undirected dyads
//	term/       statistic plugins: capability interfaces, shared arena, built-in terms, registry
//	model/      workspace, initialisation order, speculative delta with undo-log rollback, commit
//	proposal/   proposal contract and random-dyad proposers
//	san/        simulated-annealing Metropolis–Hastings sampler and the Run entry point
//	formula/    "edges + greaterthan(2)" parser and compiler to terms
//	matrix/     dense row-major matrices: validation, inversion, row-vector products
//	cmd/wtsan   command line: YAML run files in, YAML results out
//
// Quick example:
//
//	net, _ := network.New(4)
//	invCov, _ := matrix.Identity(1)
//	cfg := san.Config{InvCov: invCov, SampleSize: 1, Steps: 10, StatIndices: []int{0}, Seed: 1}
//	res, err := san.Run(net, "edges", proposal.RandomDyad{Weights: proposal.Binary{}}, cfg, []float64{3})
//
// Every operation is single-threaded; independent runs need independent
// networks and models.
package wtsan
