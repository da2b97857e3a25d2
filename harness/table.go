package harness

import "fmt"

// Measurement is one aggregated best-of latency cell, in milliseconds.
// OK is false while the cell has not been filled.
type Measurement struct {
	Millis float64
	OK     bool
}

// Table is the benchmark result grid: one row per qubit count in
// [From, To], one column per backend label in insertion order. It is
// written by a single sequential writer and read once by the report.
type Table struct {
	From, To int

	columns []string
	cells   map[int]map[string]Measurement
}

// Row is a single qubit count's measurements keyed by backend label.
type Row struct {
	Qubits int
	Cells  map[string]Measurement
}

// NewTable creates an empty table covering every qubit count in
// [from, to].
func NewTable(from, to int) (*Table, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("invalid qubit range [%d, %d]", from, to)
	}

	cells := make(map[int]map[string]Measurement, to-from+1)
	for n := from; n <= to; n++ {
		cells[n] = make(map[string]Measurement)
	}

	return &Table{From: from, To: to, cells: cells}, nil
}

// AddColumn registers a backend label and fills every row with a
// not-available cell. Each label is added exactly once, at the start of
// that backend's pass.
func (t *Table) AddColumn(label string) error {
	for _, c := range t.columns {
		if c == label {
			return fmt.Errorf("column %q already added", label)
		}
	}

	t.columns = append(t.columns, label)

	for n := t.From; n <= t.To; n++ {
		t.cells[n][label] = Measurement{}
	}

	return nil
}

// Set stores the aggregated latency for one (qubit count, backend) cell.
func (t *Table) Set(n int, label string, millis float64) error {
	row, ok := t.cells[n]
	if !ok {
		return fmt.Errorf("qubit count %d outside range [%d, %d]",
			n, t.From, t.To)
	}

	if _, ok := row[label]; !ok {
		return fmt.Errorf("unknown column %q", label)
	}

	row[label] = Measurement{Millis: millis, OK: true}

	return nil
}

// Columns returns backend labels in insertion order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)

	return cols
}

// Rows returns every row ordered by ascending qubit count.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, t.To-t.From+1)

	for n := t.From; n <= t.To; n++ {
		cells := make(map[string]Measurement, len(t.columns))
		for label, m := range t.cells[n] {
			cells[label] = m
		}

		rows = append(rows, Row{Qubits: n, Cells: cells})
	}

	return rows
}
