// Package circuit builds backend-neutral descriptions of the benchmark
// circuits. Every backend receives the same gate sequence so engines are
// compared on an identical logical circuit.
package circuit

import (
	"fmt"
	"math"
)

// Kind identifies what a single operation does.
type Kind int

const (
	// Hadamard applies H to Target.
	Hadamard Kind = iota
	// ControlledPhase applies a phase of Angle radians to Target,
	// conditioned on Control.
	ControlledPhase
	// Measure reads Target into the classical register at the same index.
	Measure
)

// Op is one gate or measurement in a circuit.
type Op struct {
	Kind    Kind
	Angle   float64 // radians, ControlledPhase only
	Control int     // ControlledPhase only
	Target  int
}

// Spec is an ordered gate sequence over Qubits qubits, measurements
// included. It is built fresh per qubit count and never cached.
type Spec struct {
	Qubits int
	Ops    []Op
}

// QFT builds the quantum Fourier transform circuit over n qubits: for
// each qubit j, a controlled phase of pi/2^(j-k) from j onto every k < j
// in ascending k order, then a Hadamard on j; after all gates, a
// measurement of every qubit in index order. The result always holds
// exactly n Hadamards and n(n-1)/2 controlled phases.
func QFT(n int) (*Spec, error) {
	if n < 1 {
		return nil, fmt.Errorf("qubit count must be positive, got %d", n)
	}

	ops := make([]Op, 0, 2*n+n*(n-1)/2)

	for j := 0; j < n; j++ {
		for k := 0; k < j; k++ {
			ops = append(ops, Op{
				Kind:    ControlledPhase,
				Angle:   math.Pi / math.Pow(2, float64(j-k)),
				Control: j,
				Target:  k,
			})
		}

		ops = append(ops, Op{Kind: Hadamard, Target: j})
	}

	for i := 0; i < n; i++ {
		ops = append(ops, Op{Kind: Measure, Target: i})
	}

	return &Spec{Qubits: n, Ops: ops}, nil
}

// Count returns the number of operations of the given kind.
func (s *Spec) Count(k Kind) int {
	count := 0

	for _, op := range s.Ops {
		if op.Kind == k {
			count++
		}
	}

	return count
}
