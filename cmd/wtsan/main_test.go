// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wtsan/matrix"
)

const scenario = `
network:
  n: 4
formula: edges + sum
target: [3]
stat_indices: [0]
offset_indices: [1]
offsets: [0]
invcov: [[1]]
steps: 10
seed: 42
proposal:
  kind: binary
`

func TestParseRunFile(t *testing.T) {
	rf, err := parseRunFile([]byte(scenario))
	require.NoError(t, err)
	require.Equal(t, 4, rf.Network.N)
	require.Equal(t, "edges + sum", rf.Formula)
	require.Equal(t, 1, rf.SampleSize)

	_, err = parseRunFile([]byte("network: {n: 3}"))
	require.ErrorIs(t, err, errRunFile)

	_, err = parseRunFile([]byte("formula: edges\ninvcov: [[1]]\ncov: [[1]]"))
	require.ErrorIs(t, err, errRunFile)

	_, err = parseRunFile([]byte("formula: [unclosed"))
	require.ErrorIs(t, err, errRunFile)
}

func TestSamplerConfig_Defaults(t *testing.T) {
	rf, err := parseRunFile([]byte("formula: edges + sum + isolates\noffset_indices: [1]\noffsets: [2]\ncov: [[4, 0], [0, 2]]"))
	require.NoError(t, err)

	cfg, err := rf.samplerConfig(3, "id")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, cfg.StatIndices)
	require.Equal(t, "id", cfg.RunID)
	v, _ := cfg.InvCov.At(0, 0)
	require.InDelta(t, 0.25, v, 1e-12)
	v, _ = cfg.InvCov.At(1, 1)
	require.InDelta(t, 0.5, v, 1e-12)

	rf.Cov = [][]float64{{1, 2}, {3, 1}}
	_, err = rf.samplerConfig(3, "id")
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestProposer(t *testing.T) {
	rf := &runFile{Proposal: proposalFile{Kind: "discunif", Min: 0, Max: 3}}
	_, err := rf.proposer()
	require.NoError(t, err)

	rf.Proposal = proposalFile{Kind: "discunif", Min: 3, Max: 0}
	_, err = rf.proposer()
	require.ErrorIs(t, err, errRunFile)

	rf.Proposal = proposalFile{Kind: "tnt"}
	_, err = rf.proposer()
	require.ErrorIs(t, err, errRunFile)
}

func TestRunSampler(t *testing.T) {
	rf, err := parseRunFile([]byte(scenario))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runSampler(rf, "run-1", &buf))

	var out runOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "run-1", out.RunID)
	require.Equal(t, "ok", out.Status)
	require.Equal(t, []string{"edges"}, out.Names)
	require.Len(t, out.Stats, 1)
	require.Equal(t, float64(len(out.Edges)-3), out.Stats[0][0])
}

func TestPrintSummary(t *testing.T) {
	rf, err := parseRunFile([]byte(`
network:
  n: 3
  edges:
    - {tail: 1, head: 2, weight: 2}
    - {tail: 2, head: 3, weight: 1.5}
formula: edges + sum + isolates
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printSummary(rf, &buf))

	var got map[string]float64
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, map[string]float64{"edges": 2, "sum": 3.5, "isolates": 0}, got)
}

func TestRandomNetwork(t *testing.T) {
	rf, err := parseRunFile([]byte("formula: edges\nnetwork: {n: 6, random: {p: 1, min: 2, max: 2, seed: 3}}"))
	require.NoError(t, err)
	net, err := rf.network()
	require.NoError(t, err)
	require.Equal(t, 15, net.EdgeCount())
	require.Equal(t, 30.0, net.TotalWeight())

	rf.Network.Edges = []edgeFile{{Tail: 1, Head: 2, Weight: 1}}
	_, err = rf.network()
	require.ErrorIs(t, err, errRunFile)
}
