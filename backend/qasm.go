package backend

import (
	"fmt"
	"strings"

	"github.com/quantastica/qubench/circuit"
)

// toQASM renders spec as OpenQASM 2.0 source. Aer and the toaster accept
// the same dialect; the controlled phase becomes a single cu1 rotation.
func toQASM(spec *circuit.Spec) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\ncreg c[%d];\n", spec.Qubits, spec.Qubits)

	for _, op := range spec.Ops {
		switch op.Kind {
		case circuit.Hadamard:
			fmt.Fprintf(&b, "h q[%d];\n", op.Target)
		case circuit.ControlledPhase:
			fmt.Fprintf(&b, "cu1(%.17g) q[%d],q[%d];\n",
				op.Angle, op.Control, op.Target)
		case circuit.Measure:
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", op.Target, op.Target)
		default:
			return "", fmt.Errorf("op kind %d has no QASM form", op.Kind)
		}
	}

	return b.String(), nil
}
