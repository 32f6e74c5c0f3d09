// SPDX-License-Identifier: MIT

// Command wtsan runs simulated-annealing sampling of weighted networks
// described by a YAML run file.
//
//	wtsan run -c run.yaml [-o result.yaml] [--seed N] [--steps N] [--temperature T]
//	wtsan summary -c run.yaml
//	wtsan terms
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wtsan/formula"
	"github.com/katalvlaran/wtsan/model"
	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/san"
	"github.com/katalvlaran/wtsan/term"
)

var (
	runPath     string
	outPath     string
	seed        uint64
	steps       int
	temperature float64
)

var rootCmd = &cobra.Command{
	Use:   "wtsan",
	Short: "Weighted-network change statistics and SAN sampling",
	Long: `wtsan evaluates statistics of weighted networks and searches, by simulated
annealing, for a network whose statistics match a target.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the SAN sampler described by a run file",
	RunE: func(cmd *cobra.Command, args []string) error {
		rf, err := loadRunFile(runPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			rf.Seed = seed
		}
		if cmd.Flags().Changed("steps") {
			rf.Steps = steps
		}
		if cmd.Flags().Changed("temperature") {
			rf.Temperature = temperature
		}

		return withOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error {
			return runSampler(rf, uuid.NewString(), w)
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the statistics of the run file's network",
	RunE: func(cmd *cobra.Command, args []string) error {
		rf, err := loadRunFile(runPath)
		if err != nil {
			return err
		}

		return withOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error {
			return printSummary(rf, w)
		})
	},
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the registered terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range term.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	fset := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fset)
	_ = fset.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(fset)

	for _, c := range []*cobra.Command{runCmd, summaryCmd} {
		c.Flags().StringVarP(&runPath, "config", "c", "", "YAML run file")
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")
		_ = c.MarkFlagRequired("config")
	}
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "override the run file's seed")
	runCmd.Flags().IntVar(&steps, "steps", 0, "override the run file's steps")
	runCmd.Flags().Float64Var(&temperature, "temperature", 0, "override the run file's temperature")

	rootCmd.AddCommand(runCmd, summaryCmd, termsCmd)
}

func main() {
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	err := rootCmd.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

// runOutput is the YAML result of one run.
type runOutput struct {
	RunID     string      `yaml:"run_id"`
	Formula   string      `yaml:"formula"`
	Status    string      `yaml:"status"`
	State     string      `yaml:"state"`
	Names     []string    `yaml:"names"`
	Rows      int         `yaml:"rows"`
	Accepted  int         `yaml:"accepted"`
	Proposed  int         `yaml:"proposed"`
	Stats     [][]float64 `yaml:"stats"`
	PropStats [][]float64 `yaml:"prop_stats"`
	Edges     []edgeFile  `yaml:"edges,omitempty"`
	Error     string      `yaml:"error,omitempty"`
}

func runSampler(rf *runFile, runID string, w io.Writer) error {
	net, err := rf.network()
	if err != nil {
		return err
	}
	prop, err := rf.proposer()
	if err != nil {
		return err
	}
	names, err := statNames(net, rf.Formula)
	if err != nil {
		return err
	}
	cfg, err := rf.samplerConfig(len(names), runID)
	if err != nil {
		return err
	}
	klog.Infof("wtsan: run %s formula %q steps %d sample size %d", runID, rf.Formula, cfg.Steps, cfg.SampleSize)

	res, runErr := san.Run(net, rf.Formula, prop, cfg, rf.Target)
	if res == nil {
		return runErr
	}
	out := runOutput{
		RunID:     runID,
		Formula:   rf.Formula,
		Status:    res.Status.String(),
		State:     res.State.String(),
		Rows:      res.Rows,
		Accepted:  res.Accepted,
		Proposed:  res.Proposed,
		Stats:     res.Stats,
		PropStats: res.PropStats,
	}
	for _, i := range cfg.StatIndices {
		out.Names = append(out.Names, names[i])
	}
	if res.Network != nil {
		out.Edges = toEdgeFiles(res.Network.Edges())
	}
	if runErr != nil {
		out.Error = runErr.Error()
	}
	if err = yaml.NewEncoder(w).Encode(out); err != nil {
		return errors.Wrap(err, "encode result")
	}

	return runErr
}

func printSummary(rf *runFile, w io.Writer) error {
	net, err := rf.network()
	if err != nil {
		return err
	}
	names, err := statNames(net, rf.Formula)
	if err != nil {
		return err
	}
	terms, err := formula.Build(rf.Formula, net)
	if err != nil {
		return err
	}
	sum, err := model.Summarize(net, terms...)
	if err != nil {
		return err
	}

	out := yaml.Node{Kind: yaml.MappingNode}
	for i, name := range names {
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprint(sum[i])})
	}

	return errors.Wrap(yaml.NewEncoder(w).Encode(&out), "encode summary")
}

// statNames labels the statistic vector of src on net.
func statNames(net *network.Network, src string) ([]string, error) {
	terms, err := formula.Build(src, net)
	if err != nil {
		return nil, err
	}
	m, err := model.New(net.CloneEmpty(), terms...)
	if err != nil {
		return nil, err
	}

	return m.Names(), nil
}

func toEdgeFiles(edges []network.Edge) []edgeFile {
	out := make([]edgeFile, len(edges))
	for i, e := range edges {
		out[i] = edgeFile{Tail: int(e.Tail), Head: int(e.Head), Weight: e.Weight}
	}

	return out
}

func withOutput(path string, stdout io.Writer, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	err = fn(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close output")
	}

	return err
}
