// Package main provides the CLI entry point for qubench, a cross-engine
// quantum circuit simulator benchmarking tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantastica/qubench/backend"
	"github.com/quantastica/qubench/harness"
	"github.com/quantastica/qubench/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("benchmark failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "qubench",
		Short: "Cross-engine quantum simulator benchmarking tool",
		Long: `Qubench measures single-shot QFT execution latency across several
quantum circuit simulators by running the same logical circuit through each
engine's native representation and plotting the comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		fromQubits int
		toQubits   int
		backends   []string
		urls       map[string]string
		chartPath  string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark QFT latency across simulator backends",
		Long: `Benchmark every selected backend with QFT circuits over the requested
qubit range, print the result table, and write a log-scale latency chart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, runConfig{
				fromQubits: fromQubits,
				toQubits:   toQubits,
				backends:   backends,
				urls:       urls,
				chartPath:  chartPath,
				outputJSON: outputJSON,
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&fromQubits, "from", 1,
		"Smallest circuit size in qubits")
	flags.IntVar(&toQubits, "to", 25,
		"Largest circuit size in qubits")
	flags.StringSliceVar(&backends, "backends", backend.Known(),
		"Backends to benchmark (e.g. aer,qvm)")
	flags.StringToStringVar(&urls, "url", nil,
		"Backend service URL overrides (e.g. qvm=http://127.0.0.1:5001)")
	flags.StringVar(&chartPath, "chart", "benchmark_qft.png",
		"Output path for the latency chart")
	flags.BoolVar(&outputJSON, "json", false,
		"Print the result table as JSON instead of markdown")

	return cmd
}

type runConfig struct {
	fromQubits int
	toQubits   int
	backends   []string
	urls       map[string]string
	chartPath  string
	outputJSON bool
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg runConfig,
) error {
	adapters := make([]backend.Adapter, 0, len(cfg.backends))

	for _, name := range cfg.backends {
		a, err := backend.Resolve(name, cfg.urls[name])
		if err != nil {
			return err
		}

		adapters = append(adapters, a)
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("from", cfg.fromQubits),
		slog.Int("to", cfg.toQubits),
		slog.Any("backends", cfg.backends),
	)

	table, err := harness.Run(ctx, logger, harness.Config{
		From:     cfg.fromQubits,
		To:       cfg.toQubits,
		Backends: adapters,
	})
	if err != nil {
		return err
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(os.Stdout, table); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(os.Stdout, table); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	if err := report.WriteChart(cfg.chartPath, table); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.String("chart", cfg.chartPath),
	)

	return nil
}
