package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAer serves the Aer gateway surface. failWidth, when set, rejects
// circuits of that qubit width during execution.
func fakeAer(t *testing.T, failWidth string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/version":
				_ = json.NewEncoder(w).Encode(map[string]string{"version": "0.8.2"})
			case "/execute":
				var req struct {
					QASM  string `json:"qasm"`
					Shots int    `json:"shots"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, 1, req.Shots)

				if failWidth != "" && strings.Contains(req.QASM, failWidth) {
					http.Error(w, "simulation failed", http.StatusInternalServerError)
					return
				}

				_, _ = w.Write([]byte(`{"counts":{"0":1}}`))
			default:
				http.NotFound(w, r)
			}
		},
	))
	t.Cleanup(srv.Close)

	return srv
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunBenchmarkEndToEnd(t *testing.T) {
	engine := fakeAer(t, "")
	chartPath := filepath.Join(t.TempDir(), "benchmark_qft.png")

	err := runBenchmark(context.Background(), testLogger(), runConfig{
		fromQubits: 1,
		toQubits:   3,
		backends:   []string{"aer", "toaster"},
		urls: map[string]string{
			"aer":     engine.URL,
			"toaster": fakeToaster(t).URL,
		},
		chartPath: chartPath,
	})
	require.NoError(t, err)

	info, statErr := os.Stat(chartPath)
	require.NoError(t, statErr)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunBenchmarkAbortsWithoutArtifact(t *testing.T) {
	healthy := fakeAer(t, "")
	failing := fakeToasterFailingAt(t, "creg c[3];")
	chartPath := filepath.Join(t.TempDir(), "benchmark_qft.png")

	err := runBenchmark(context.Background(), testLogger(), runConfig{
		fromQubits: 1,
		toQubits:   3,
		backends:   []string{"aer", "toaster"},
		urls: map[string]string{
			"aer":     healthy.URL,
			"toaster": failing.URL,
		},
		chartPath: chartPath,
	})
	require.Error(t, err)

	_, statErr := os.Stat(chartPath)
	assert.True(t, os.IsNotExist(statErr), "no chart should be written on abort")
}

func TestRunBenchmarkUnknownBackend(t *testing.T) {
	err := runBenchmark(context.Background(), testLogger(), runConfig{
		fromQubits: 1,
		toQubits:   2,
		backends:   []string{"dwave"},
	})
	assert.Error(t, err)
}

func fakeToaster(t *testing.T) *httptest.Server {
	return fakeToasterFailingAt(t, "")
}

// fakeToasterFailingAt serves the toaster surface, rejecting circuits
// whose QASM source contains marker.
func fakeToasterFailingAt(t *testing.T, marker string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/version":
				_, _ = w.Write([]byte("0.9.21"))
			case "/run":
				var req struct {
					Source string `json:"source"`
					Shots  int    `json:"shots"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, 1, req.Shots)

				if marker != "" && strings.Contains(req.Source, marker) {
					http.Error(w, "simulation failed", http.StatusInternalServerError)
					return
				}

				_, _ = w.Write([]byte(`{"counts":{"0":1}}`))
			default:
				http.NotFound(w, r)
			}
		},
	))
	t.Cleanup(srv.Close)

	return srv
}
