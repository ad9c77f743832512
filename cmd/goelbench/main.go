// The MIT License (MIT)

// Copyright (c) 2016, 2017 Fabian Wenzelmann

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command goelbench compares the solvers on random ontologies.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/FabianWe/goel/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type benchConfig struct {
	names, roles               uint
	conjunctions, existentials uint
	gcis, equivalences         uint
	maxConjuncts               uint
	runs                       int
	seed                       int64
	workers                    int
	solvers                    []string
	verbose                    bool
}

type benchResult struct {
	solver   string
	run      int
	duration time.Duration
	stats    goel.SolverStats
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfg benchConfig
	cmd := &cobra.Command{
		Use:          "goelbench",
		Short:        "Benchmark the solvers on random ontologies",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if cfg.verbose {
				var err error
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			results, err := runBenchmarks(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "solver\trun\tduration\ts updates\tr updates\trounds")
			for _, res := range results {
				fmt.Fprintf(w, "%s\t%d\t%v\t%d\t%d\t%d\n", res.solver, res.run, res.duration,
					res.stats.SUpdates, res.stats.RUpdates, res.stats.Rounds)
			}
			return w.Flush()
		},
	}
	flags := cmd.Flags()
	flags.UintVar(&cfg.names, "names", 1000, "number of concept names")
	flags.UintVar(&cfg.roles, "roles", 50, "number of roles")
	flags.UintVar(&cfg.conjunctions, "conjunctions", 1000, "number of conjunctions")
	flags.UintVar(&cfg.existentials, "existentials", 1000, "number of existential restrictions")
	flags.UintVar(&cfg.gcis, "gcis", 2000, "number of GCIs")
	flags.UintVar(&cfg.equivalences, "equivalences", 100, "number of equivalences")
	flags.UintVar(&cfg.maxConjuncts, "max-conjuncts", 3, "maximal number of operands of a conjunction")
	flags.IntVar(&cfg.runs, "runs", 3, "number of random ontologies")
	flags.Int64Var(&cfg.seed, "seed", time.Now().UnixNano(), "seed of the first ontology")
	flags.IntVar(&cfg.workers, "workers", 0, "number of workers for the concurrent solver, 0 means GOMAXPROCS")
	flags.StringSliceVar(&cfg.solvers, "solvers", []string{goel.SolverRule, goel.SolverConcurrent}, "solvers to run")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log solver progress")
	return cmd
}

func runBenchmarks(ctx context.Context, cfg benchConfig, logger *zap.Logger) ([]benchResult, error) {
	solvers := make([]goel.Solver, len(cfg.solvers))
	for i, name := range cfg.solvers {
		solverCfg := goel.DefaultConfig()
		solverCfg.Solver = name
		solverCfg.Workers = cfg.workers
		if err := solverCfg.Validate(); err != nil {
			return nil, err
		}
		solvers[i] = solverCfg.NewSolver(logger)
	}
	var results []benchResult
	for run := 0; run < cfg.runs; run++ {
		builder := goel.NewRandomELBuilder(cfg.seed+int64(run), cfg.names, cfg.roles)
		builder.MaxConjuncts = cfg.maxConjuncts
		o := builder.GenerateRandomOntology(cfg.conjunctions, cfg.existentials, cfg.gcis, cfg.equivalences)
		tbox, err := goel.NewNormalizer(logger).Normalize(o)
		if err != nil {
			return nil, err
		}
		logger.Info("generated ontology",
			zap.Int("run", run),
			zap.Int("normalized_axioms", tbox.Len()),
			zap.Uint("auxiliary", tbox.NumAuxiliary()))
		for _, solver := range solvers {
			start := time.Now()
			sat, err := solver.Solve(ctx, tbox)
			if err != nil {
				return nil, fmt.Errorf("run %d with %s solver: %w", run, solver.Name(), err)
			}
			results = append(results, benchResult{
				solver:   solver.Name(),
				run:      run,
				duration: time.Since(start),
				stats:    sat.Stats,
			})
		}
	}
	return results, nil
}
