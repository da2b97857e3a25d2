package backend

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/quantastica/qubench/circuit"
)

// Cirq drives a local Cirq simulator service with a JSON gate list.
type Cirq struct {
	baseURL string
	client  *http.Client
}

// NewCirq creates an adapter for the Cirq service at baseURL.
func NewCirq(baseURL string) *Cirq {
	return &Cirq{baseURL: baseURL, client: newClient()}
}

func (c *Cirq) Name() string { return "cirq" }

func (c *Cirq) Label(ctx context.Context) (string, error) {
	version, err := getVersion(ctx, c.client, c.baseURL+"/version")
	if err != nil {
		return "", fmt.Errorf("query cirq version: %w", err)
	}

	return "Cirq-Simulator " + version, nil
}

// CirqGate is one entry in the service's gate list.
type CirqGate struct {
	Gate     string  `json:"gate"`
	Qubits   []int   `json:"qubits"`
	Exponent float64 `json:"exponent,omitempty"`
	Key      string  `json:"key,omitempty"`
}

// CirqCircuit is the service's native circuit form.
type CirqCircuit struct {
	Qubits int        `json:"qubits"`
	Gates  []CirqGate `json:"gates"`
}

// Build translates spec into the service's gate list. Cirq has no plain
// CPHASE; the controlled phase becomes a controlled Z-power whose
// exponent is the angle in half-turns, the same logical gate.
func (c *Cirq) Build(_ context.Context, spec *circuit.Spec) (Program, error) {
	native := CirqCircuit{
		Qubits: spec.Qubits,
		Gates:  make([]CirqGate, 0, len(spec.Ops)),
	}

	for _, op := range spec.Ops {
		switch op.Kind {
		case circuit.Hadamard:
			native.Gates = append(native.Gates, CirqGate{
				Gate:   "h",
				Qubits: []int{op.Target},
			})
		case circuit.ControlledPhase:
			native.Gates = append(native.Gates, CirqGate{
				Gate:     "cz_pow",
				Qubits:   []int{op.Control, op.Target},
				Exponent: op.Angle / math.Pi,
			})
		case circuit.Measure:
			native.Gates = append(native.Gates, CirqGate{
				Gate:   "measure",
				Qubits: []int{op.Target},
				Key:    "c" + strconv.Itoa(op.Target),
			})
		default:
			return nil, fmt.Errorf("op kind %d has no cirq form", op.Kind)
		}
	}

	return native, nil
}

func (c *Cirq) Run(ctx context.Context, p Program) error {
	native, ok := p.(CirqCircuit)
	if !ok {
		return fmt.Errorf("program is %T, want cirq circuit", p)
	}

	return postJSON(ctx, c.client, c.baseURL+"/simulate", map[string]any{
		"circuit":     native,
		"repetitions": 1,
	})
}
