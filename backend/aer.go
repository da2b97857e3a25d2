package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quantastica/qubench/circuit"
)

// Aer drives a local Qiskit Aer gateway: OpenQASM in, counts out.
type Aer struct {
	baseURL string
	client  *http.Client
}

// NewAer creates an adapter for the Aer gateway at baseURL.
func NewAer(baseURL string) *Aer {
	return &Aer{baseURL: baseURL, client: newClient()}
}

func (a *Aer) Name() string { return "aer" }

func (a *Aer) Label(ctx context.Context) (string, error) {
	version, err := getVersion(ctx, a.client, a.baseURL+"/version")
	if err != nil {
		return "", fmt.Errorf("query aer version: %w", err)
	}

	return "Qiskit-Aer " + version, nil
}

func (a *Aer) Build(_ context.Context, spec *circuit.Spec) (Program, error) {
	qasm, err := toQASM(spec)
	if err != nil {
		return nil, fmt.Errorf("translate for aer: %w", err)
	}

	return qasm, nil
}

func (a *Aer) Run(ctx context.Context, p Program) error {
	qasm, ok := p.(string)
	if !ok {
		return fmt.Errorf("program is %T, want QASM source", p)
	}

	return postJSON(ctx, a.client, a.baseURL+"/execute", map[string]any{
		"qasm":  qasm,
		"shots": 1,
	})
}
