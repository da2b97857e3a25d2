// Package harness runs the cross-engine timing protocol and aggregates
// latencies into a comparison table.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/quantastica/qubench/backend"
	"github.com/quantastica/qubench/circuit"
)

// Benchmark error classes. Any of them aborts the whole invocation; the
// partial table is discarded, never plotted.
var (
	// ErrBackendUnavailable marks a failed version/label query.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrCircuitBuild marks a circuit that could not be translated to an
	// engine's native form.
	ErrCircuitBuild = errors.New("circuit build failed")
	// ErrExecution marks a failure during a timed repeat.
	ErrExecution = errors.New("circuit execution failed")
)

// Config holds the parameters for one benchmark invocation.
type Config struct {
	From     int
	To       int
	Backends []backend.Adapter
}

// Repeats returns the sample count for a circuit of n qubits. Small
// circuits finish fast enough that a single sample is dominated by
// noise; large circuits are stable and too slow to repeat.
func Repeats(n int) int {
	if n <= 20 {
		return 4
	}

	return 1
}

// suppressGC turns the automatic collector off and returns a func that
// restores the previous setting. The restore must run on every exit
// path; the toggle is process-wide state.
func suppressGC() (restore func()) {
	prev := debug.SetGCPercent(-1)

	return func() { debug.SetGCPercent(prev) }
}

// Run executes the full benchmarking pass: every backend in order, every
// qubit count in [cfg.From, cfg.To], strictly sequentially so engines
// never contend for the machine. Automatic garbage collection is
// suppressed for the whole pass to keep reclamation pauses out of the
// samples.
func Run(ctx context.Context, logger *slog.Logger, cfg Config) (*Table, error) {
	if len(cfg.Backends) == 0 {
		return nil, fmt.Errorf("no backends to benchmark")
	}

	table, err := NewTable(cfg.From, cfg.To)
	if err != nil {
		return nil, err
	}

	restore := suppressGC()
	defer restore()

	for _, b := range cfg.Backends {
		if err := runBackend(ctx, logger, b, table); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// runBackend benchmarks every qubit count against one engine. The label
// is queried once and names the engine's column for the whole pass.
func runBackend(
	ctx context.Context,
	logger *slog.Logger,
	b backend.Adapter,
	table *Table,
) error {
	label, err := b.Label(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", b.Name(), ErrBackendUnavailable, err)
	}

	if err := table.AddColumn(label); err != nil {
		return err
	}

	log := logger.With(slog.String("backend", label))
	log.InfoContext(ctx, "starting backend pass",
		slog.Int("from", table.From),
		slog.Int("to", table.To),
	)

	for n := table.From; n <= table.To; n++ {
		best, err := measure(ctx, b, n)
		if err != nil {
			return fmt.Errorf("%s at %d qubits: %w", b.Name(), n, err)
		}

		if err := table.Set(n, label, best); err != nil {
			return err
		}

		log.InfoContext(ctx, "measured",
			slog.Int("qubits", n),
			slog.Float64("best_ms", best),
		)
	}

	return nil
}

// measure runs the repeat protocol for one (qubit count, backend) pair
// and returns the best-of latency in milliseconds. The circuit is built
// and translated outside the timed region; a forced collection before
// each repeat starts every sample from a comparable heap.
func measure(ctx context.Context, b backend.Adapter, n int) (float64, error) {
	spec, err := circuit.QFT(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCircuitBuild, err)
	}

	prog, err := b.Build(ctx, spec)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCircuitBuild, err)
	}

	best := math.NaN()

	for r := 0; r < Repeats(n); r++ {
		runtime.GC()

		start := time.Now()
		if err := b.Run(ctx, prog); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecution, err)
		}
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)

		if math.IsNaN(best) || elapsed < best {
			best = elapsed
		}
	}

	return best, nil
}
