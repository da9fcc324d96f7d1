package quality

import (
	"fmt"
	"strings"
)

// Row maps a column name to one scalar value of unknown type. A missing key
// and an explicit nil both read as null.
type Row map[string]interface{}

// Dataset is an ordered sequence of rows plus the ordered header list.
// It is owned by the caller and never mutated by the engine.
type Dataset struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// NewDataset creates a dataset from already-parsed rows and headers
func NewDataset(headers []string, rows []Row) Dataset {
	return Dataset{Headers: headers, Rows: rows}
}

// IsEmpty returns true when there is nothing to analyze
func (d Dataset) IsEmpty() bool {
	return len(d.Headers) == 0 || len(d.Rows) == 0
}

// HasHeader checks whether a column name exists in the header list
func (d Dataset) HasHeader(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column collects one column's values in row order, nulls included
func (d Dataset) Column(name string) []interface{} {
	values := make([]interface{}, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[name]
	}
	return values
}

// IsNull reports whether a cell value counts as null: nil, or a string that
// is empty after trimming.
func IsNull(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ValueString renders a cell value canonically for comparison and display.
// Strings are trimmed, nulls become the empty string.
func ValueString(value interface{}) string {
	if IsNull(value) {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprintf("%v", value)
}
