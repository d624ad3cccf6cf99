package sheets

import "strings"

// Table is one fetched worksheet: a header row plus string cell rows.
// All values stay raw strings; normalization is the report core's job.
type Table struct {
	Worksheet string     `json:"worksheet"`
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
}

// NewTable builds a Table from a raw values matrix, trimming header
// whitespace the way sheet editors tend to leave it behind.
func NewTable(worksheet string, values [][]string) *Table {
	t := &Table{Worksheet: worksheet}
	if len(values) == 0 {
		return t
	}
	t.Headers = make([]string, len(values[0]))
	for i, h := range values[0] {
		t.Headers[i] = strings.TrimSpace(h)
	}
	t.Rows = values[1:]
	return t
}

// Column returns the index of a header, or -1 when absent.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value at the given column of a row, tolerating
// ragged rows shorter than the header.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
