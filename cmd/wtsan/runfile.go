// SPDX-License-Identifier: MIT

package main

import (
	"math/rand/v2"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wtsan/matrix"
	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/proposal"
	"github.com/katalvlaran/wtsan/san"
)

// runFile is the YAML description of one run.
type runFile struct {
	Network       networkFile  `yaml:"network"`
	Formula       string       `yaml:"formula"`
	Target        []float64    `yaml:"target"`
	StatIndices   []int        `yaml:"stat_indices"`
	OffsetIndices []int        `yaml:"offset_indices"`
	Offsets       []float64    `yaml:"offsets"`
	InvCov        [][]float64  `yaml:"invcov"`
	Cov           [][]float64  `yaml:"cov"`
	Temperature   float64      `yaml:"temperature"`
	SampleSize    int          `yaml:"sample_size"`
	Steps         int          `yaml:"steps"`
	Seed          uint64       `yaml:"seed"`
	Verbose       int          `yaml:"verbose"`
	Proposal      proposalFile `yaml:"proposal"`
}

type networkFile struct {
	N        int         `yaml:"n"`
	Directed bool        `yaml:"directed"`
	Loops    bool        `yaml:"loops"`
	Edges    []edgeFile  `yaml:"edges"`
	Random   *randomFile `yaml:"random"`
}

// randomFile draws the starting network instead of listing its edges.
type randomFile struct {
	P    float64 `yaml:"p"`
	Min  int     `yaml:"min"`
	Max  int     `yaml:"max"`
	Seed uint64  `yaml:"seed"`
}

type edgeFile struct {
	Tail   int     `yaml:"tail"`
	Head   int     `yaml:"head"`
	Weight float64 `yaml:"weight"`
}

type proposalFile struct {
	Kind  string `yaml:"kind"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Batch int    `yaml:"batch"`
}

var errRunFile = errors.New("wtsan: invalid run file")

func loadRunFile(path string) (*runFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read run file")
	}

	return parseRunFile(raw)
}

func parseRunFile(raw []byte) (*runFile, error) {
	rf := &runFile{SampleSize: 1}
	if err := yaml.Unmarshal(raw, rf); err != nil {
		return nil, errors.Wrap(errRunFile, err.Error())
	}
	if rf.Formula == "" {
		return nil, errors.Wrap(errRunFile, "formula is required")
	}
	if rf.InvCov != nil && rf.Cov != nil {
		return nil, errors.Wrap(errRunFile, "set invcov or cov, not both")
	}

	return rf, nil
}

func (rf *runFile) network() (*network.Network, error) {
	opts := []network.Option{network.WithDirected(rf.Network.Directed)}
	if rf.Network.Loops {
		opts = append(opts, network.WithLoops())
	}
	if r := rf.Network.Random; r != nil {
		if len(rf.Network.Edges) > 0 {
			return nil, errors.Wrap(errRunFile, "network: set edges or random, not both")
		}
		lo, hi := r.Min, r.Max
		if lo == 0 && hi == 0 {
			lo, hi = 1, 1
		}
		rng := rand.New(rand.NewPCG(r.Seed, r.Seed+1))
		net, err := network.Random(rf.Network.N, r.P, network.UniformIntWeight(lo, hi), rng, opts...)
		return net, errors.Wrap(err, "network")
	}
	edges := make([]network.Edge, len(rf.Network.Edges))
	for i, e := range rf.Network.Edges {
		edges[i] = network.Edge{Tail: network.Vertex(e.Tail), Head: network.Vertex(e.Head), Weight: e.Weight}
	}
	net, err := network.FromEdges(rf.Network.N, edges, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "network")
	}

	return net, nil
}

func (rf *runFile) proposer() (proposal.Proposer, error) {
	var w proposal.WeightSampler
	switch rf.Proposal.Kind {
	case "", "binary":
		w = proposal.Binary{}
	case "discunif":
		if rf.Proposal.Max < rf.Proposal.Min {
			return nil, errors.Wrapf(errRunFile, "discunif: max %d < min %d", rf.Proposal.Max, rf.Proposal.Min)
		}
		w = proposal.DiscUnif{Min: rf.Proposal.Min, Max: rf.Proposal.Max}
	default:
		return nil, errors.Wrapf(errRunFile, "unknown proposal %q", rf.Proposal.Kind)
	}

	return proposal.RandomDyad{Weights: w, Batch: rf.Proposal.Batch}, nil
}

// samplerConfig maps the run file onto san.Config. width is the model's
// statistic width; an empty stat_indices tracks every statistic not listed
// as an offset, and a missing matrix defaults to the identity.
func (rf *runFile) samplerConfig(width int, runID string) (san.Config, error) {
	idx := rf.StatIndices
	if len(idx) == 0 {
		off := make(map[int]bool, len(rf.OffsetIndices))
		for _, i := range rf.OffsetIndices {
			off[i] = true
		}
		for i := 0; i < width; i++ {
			if !off[i] {
				idx = append(idx, i)
			}
		}
	}

	inv, err := rf.inverseCovariance(len(idx))
	if err != nil {
		return san.Config{}, err
	}

	return san.Config{
		InvCov:        inv,
		Temperature:   rf.Temperature,
		SampleSize:    rf.SampleSize,
		Steps:         rf.Steps,
		StatIndices:   idx,
		OffsetIndices: rf.OffsetIndices,
		Offsets:       rf.Offsets,
		Verbose:       rf.Verbose,
		Seed:          rf.Seed,
		RunID:         runID,
	}, nil
}

func (rf *runFile) inverseCovariance(k int) (*matrix.Dense, error) {
	switch {
	case rf.InvCov != nil:
		m, err := matrix.NewFromRows(rf.InvCov)
		return m, errors.Wrap(err, "invcov")
	case rf.Cov != nil:
		c, err := matrix.NewFromRows(rf.Cov)
		if err != nil {
			return nil, errors.Wrap(err, "cov")
		}
		if err = matrix.ValidateSymmetric(c, 1e-9); err != nil {
			return nil, errors.Wrap(err, "cov")
		}
		m, err := matrix.Inverse(c)
		return m, errors.Wrap(err, "cov")
	}

	return matrix.Identity(k)
}
