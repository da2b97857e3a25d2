// Package report renders the benchmark table as text, JSON, and a
// comparison chart.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/quantastica/qubench/harness"
)

// Generate writes a markdown comparison table: one row per qubit count,
// one latency column per backend in insertion order.
func Generate(w io.Writer, table *harness.Table) error {
	cols := table.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## QFT Benchmark Results")
	fmt.Fprintln(w)

	fmt.Fprint(w, "| Qubits |")
	for _, c := range cols {
		fmt.Fprintf(w, " %s |", c)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "|--------|")
	for range cols {
		fmt.Fprint(w, "---|")
	}
	fmt.Fprintln(w)

	for _, row := range table.Rows() {
		fmt.Fprintf(w, "| %d |", row.Qubits)
		for _, c := range cols {
			fmt.Fprintf(w, " %s |", formatCell(row.Cells[c]))
		}
		fmt.Fprintln(w)
	}

	return nil
}

type jsonRow struct {
	Qubits    int                 `json:"qubits"`
	LatencyMs map[string]*float64 `json:"latency_ms"`
}

// GenerateJSON writes the table as a JSON row array. Missing cells are
// encoded as null.
func GenerateJSON(w io.Writer, table *harness.Table) error {
	tableRows := table.Rows()
	rows := make([]jsonRow, 0, len(tableRows))

	for _, row := range tableRows {
		lat := make(map[string]*float64, len(row.Cells))

		for label, m := range row.Cells {
			if m.OK {
				v := m.Millis
				lat[label] = &v
			} else {
				lat[label] = nil
			}
		}

		rows = append(rows, jsonRow{Qubits: row.Qubits, LatencyMs: lat})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rows)
}

func formatCell(m harness.Measurement) string {
	if !m.OK {
		return "-"
	}

	if m.Millis < 1000 {
		return fmt.Sprintf("%.3fms", m.Millis)
	}

	return fmt.Sprintf("%.2fs", m.Millis/1000)
}
