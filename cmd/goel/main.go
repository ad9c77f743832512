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

// Command goel classifies EL ontologies.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/FabianWe/goel/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	configPath string
	solver     string
	timeout    time.Duration
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:           "goel",
		Short:         "Classify EL ontologies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.solver, "solver", "", "Solver to use (rule, naive, concurrent)")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "Abort the classification after this duration")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose development logging")

	cmd.AddCommand(classifyCmd(&flags), subsumersCmd(&flags))
	return cmd
}

func classifyCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILE",
		Short: "Print the concept hierarchy of an ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReasoner(cmd.Context(), flags, args[0], func(ctx context.Context, r *goel.Reasoner) error {
				h, err := r.Classify(ctx)
				if err != nil {
					return err
				}
				order, err := h.TopologicalOrder()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, n := range order {
					if len(n.Parents()) == 0 {
						fmt.Fprintln(out, n)
						continue
					}
					parents := make([]string, len(n.Parents()))
					for i, p := range n.Parents() {
						parents[i] = p.String()
					}
					fmt.Fprintf(out, "%v ⊑ %s\n", n, strings.Join(parents, ", "))
				}
				return nil
			})
		},
	}
}

func subsumersCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "subsumers FILE NAME...",
		Short: "Print the subsumers of concept names",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReasoner(cmd.Context(), flags, args[0], func(ctx context.Context, r *goel.Reasoner) error {
				out := cmd.OutOrStdout()
				for _, name := range args[1:] {
					subsumers, err := r.SubsumersOf(name)
					if err != nil {
						return err
					}
					strs := make([]string, len(subsumers))
					for i, c := range subsumers {
						strs[i] = c.String()
					}
					fmt.Fprintf(out, "%s: %s\n", name, strings.Join(strs, ", "))
				}
				return nil
			})
		},
	}
}

func loadConfig(flags *globalFlags) (goel.Config, error) {
	cfg := goel.DefaultConfig()
	if flags.configPath != "" {
		f, err := os.Open(flags.configPath)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg, err = goel.LoadConfig(f); err != nil {
			return cfg, fmt.Errorf("%s: %w", flags.configPath, err)
		}
	}
	if flags.solver != "" {
		cfg.Solver = flags.solver
	}
	if flags.timeout > 0 {
		cfg.Timeout = flags.timeout
	}
	return cfg, cfg.Validate()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func withReasoner(ctx context.Context, flags *globalFlags, path string, f func(context.Context, *goel.Reasoner) error) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(flags.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	o, err := readOntology(path)
	if err != nil {
		return err
	}
	r, err := goel.NewReasoner(ctx, o, goel.WithConfig(cfg), goel.WithLogger(logger))
	if err != nil {
		return err
	}
	return f(ctx, r)
}
