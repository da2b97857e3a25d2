package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quantastica/qubench/circuit"
)

// QVM drives a Forest QVM over its wire protocol: every call is a typed
// JSON request POSTed to the service root.
type QVM struct {
	baseURL string
	client  *http.Client
}

// NewQVM creates an adapter for the QVM at baseURL.
func NewQVM(baseURL string) *QVM {
	return &QVM{baseURL: baseURL, client: newClient()}
}

func (q *QVM) Name() string { return "qvm" }

// Label sends a version request. The QVM answers with plain text such as
// "1.17.1 [cf3f91f]"; only the leading version token goes into the label.
func (q *QVM) Label(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"type": "version"})
	if err != nil {
		return "", fmt.Errorf("encode version request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, q.baseURL, bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("query qvm version: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query qvm version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("qvm version request returned %s", resp.Status)
	}

	text, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read qvm version: %w", err)
	}

	fields := strings.Fields(string(text))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty qvm version response")
	}

	return "pyQuil-QVM " + fields[0], nil
}

// Build renders the circuit as Quil and wraps it in a single-trial
// multishot request, the QVM's one-execution primitive.
func (q *QVM) Build(_ context.Context, spec *circuit.Spec) (Program, error) {
	quil, err := toQuil(spec)
	if err != nil {
		return nil, fmt.Errorf("translate for qvm: %w", err)
	}

	return map[string]any{
		"type":          "multishot",
		"compiled-quil": quil,
		"addresses":     map[string]bool{"ro": true},
		"trials":        1,
	}, nil
}

func (q *QVM) Run(ctx context.Context, p Program) error {
	payload, ok := p.(map[string]any)
	if !ok {
		return fmt.Errorf("program is %T, want multishot request", p)
	}

	return postJSON(ctx, q.client, q.baseURL, payload)
}

// toQuil renders spec as Quil source with a classical readout register.
func toQuil(spec *circuit.Spec) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "DECLARE ro BIT[%d]\n", spec.Qubits)

	for _, op := range spec.Ops {
		switch op.Kind {
		case circuit.Hadamard:
			fmt.Fprintf(&b, "H %d\n", op.Target)
		case circuit.ControlledPhase:
			fmt.Fprintf(&b, "CPHASE(%.17g) %d %d\n",
				op.Angle, op.Control, op.Target)
		case circuit.Measure:
			fmt.Fprintf(&b, "MEASURE %d ro[%d]\n", op.Target, op.Target)
		default:
			return "", fmt.Errorf("op kind %d has no Quil form", op.Kind)
		}
	}

	return b.String(), nil
}
