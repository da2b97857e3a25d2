package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quantastica/qubench/circuit"
)

// Toaster drives a local qubit-toaster service. It consumes the same
// OpenQASM source as Aer, so the two columns run a byte-identical
// circuit text.
type Toaster struct {
	baseURL string
	client  *http.Client
}

// NewToaster creates an adapter for the toaster service at baseURL.
func NewToaster(baseURL string) *Toaster {
	return &Toaster{baseURL: baseURL, client: newClient()}
}

func (t *Toaster) Name() string { return "toaster" }

func (t *Toaster) Label(ctx context.Context) (string, error) {
	version, err := getVersion(ctx, t.client, t.baseURL+"/version")
	if err != nil {
		return "", fmt.Errorf("query toaster version: %w", err)
	}

	return "Qiskit-Toaster " + version, nil
}

func (t *Toaster) Build(_ context.Context, spec *circuit.Spec) (Program, error) {
	qasm, err := toQASM(spec)
	if err != nil {
		return nil, fmt.Errorf("translate for toaster: %w", err)
	}

	return qasm, nil
}

func (t *Toaster) Run(ctx context.Context, p Program) error {
	qasm, ok := p.(string)
	if !ok {
		return fmt.Errorf("program is %T, want QASM source", p)
	}

	return postJSON(ctx, t.client, t.baseURL+"/run", map[string]any{
		"source": qasm,
		"shots":  1,
	})
}
