// Package backend adapts the neutral circuit description to the native
// wire formats of the simulator engines under benchmark. Each engine runs
// as a local service on a fixed port; the harness depends only on the
// Adapter capability set.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quantastica/qubench/circuit"
)

// Program is a backend-native compiled circuit, opaque to the harness.
type Program any

// Adapter is what the harness needs from an engine: translate a circuit
// into its native form, execute it, and identify itself.
type Adapter interface {
	// Name is the engine's short registry name.
	Name() string

	// Label identifies the engine and its version. It hits the engine's
	// version endpoint and is called once per benchmarking pass; the
	// result names the engine's column for the whole run. A failure is
	// fatal for the pass and is not retried.
	Label(ctx context.Context) (string, error)

	// Build translates spec into the engine's native circuit form.
	Build(ctx context.Context, spec *circuit.Spec) (Program, error)

	// Run executes a built circuit with exactly one shot. The harness
	// times this call alone, so Run must not build or acquire anything
	// it could have acquired in Build.
	Run(ctx context.Context, p Program) error
}

// Known returns the engines this harness can benchmark, in default
// benchmarking order.
func Known() []string {
	return []string{"toaster", "aer", "qvm", "cirq"}
}

// DefaultURL returns the local service address an engine listens on when
// no override is given.
func DefaultURL(name string) string {
	switch name {
	case "aer":
		return "http://127.0.0.1:8642"
	case "toaster":
		return "http://127.0.0.1:8001"
	case "qvm":
		return "http://127.0.0.1:5000"
	case "cirq":
		return "http://127.0.0.1:8853"
	default:
		return ""
	}
}

// Resolve constructs the adapter for the named engine. An empty baseURL
// selects the engine's default local port.
func Resolve(name, baseURL string) (Adapter, error) {
	if baseURL == "" {
		baseURL = DefaultURL(name)
	}

	switch name {
	case "aer":
		return NewAer(baseURL), nil
	case "toaster":
		return NewToaster(baseURL), nil
	case "qvm":
		return NewQVM(baseURL), nil
	case "cirq":
		return NewCirq(baseURL), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// versionTimeout bounds the one-off version query. Run calls are
// deliberately unbounded: a stalled engine is a fatal condition, not a
// recoverable one, and large circuits legitimately take minutes.
const versionTimeout = 10 * time.Second

// newClient returns the HTTP client adapters share. No client-level
// timeout, see versionTimeout.
func newClient() *http.Client {
	return &http.Client{}
}

// getVersion fetches a version endpoint returning either a bare string
// or a {"version": ...} JSON object.
func getVersion(ctx context.Context, client *http.Client, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}

	return parseVersion(body), nil
}

func parseVersion(body []byte) string {
	var payload struct {
		Version string `json:"version"`
	}

	if err := json.Unmarshal(body, &payload); err == nil && payload.Version != "" {
		return payload.Version
	}

	return strings.TrimSpace(string(body))
}

// postJSON sends payload to url and drains the response. The body is
// read in full before returning so a timed sample includes result
// delivery, not just request dispatch.
func postJSON(ctx context.Context, client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s", url, resp.Status)
	}

	return nil
}
