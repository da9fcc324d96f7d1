package analysis

import (
	"dataqc/domain/core"
	"dataqc/domain/quality"
)

// DuplicateDetector finds rows that exactly repeat an earlier row. Two rows
// are duplicates when every column's value, after null normalization and
// string trimming, is equal. The count covers all occurrences after the
// first, not the number of duplicate groups.
type DuplicateDetector struct{}

// NewDuplicateDetector creates a new duplicate detector
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{}
}

// Count returns the number of duplicate rows in the dataset
func (d *DuplicateDetector) Count(ds quality.Dataset) int {
	seen := make(map[core.RowSignature]struct{}, len(ds.Rows))
	duplicates := 0

	fields := make([]string, len(ds.Headers))
	for _, row := range ds.Rows {
		// Canonical signature: header order, trimmed strings, nulls
		// normalized to the empty string.
		for i, header := range ds.Headers {
			fields[i] = quality.ValueString(row[header])
		}
		sig := core.NewRowSignature(fields)
		if _, ok := seen[sig]; ok {
			duplicates++
			continue
		}
		seen[sig] = struct{}{}
	}
	return duplicates
}
