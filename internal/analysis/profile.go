package analysis

import (
	"github.com/montanaflynn/stats"

	"dataqc/domain/quality"
)

// ColumnProfiler computes per-column descriptive statistics. It is read-only
// over the dataset; nulls are excluded from every computed figure, and a
// column with zero non-null values yields absent statistics rather than
// misleading zeros.
type ColumnProfiler struct{}

// NewColumnProfiler creates a new column profiler
func NewColumnProfiler() *ColumnProfiler {
	return &ColumnProfiler{}
}

// ProfileAll profiles every column in header order using the inferred types
func (p *ColumnProfiler) ProfileAll(ds quality.Dataset, types map[string]quality.ColumnType) map[string]quality.ColumnStatistics {
	profiles := make(map[string]quality.ColumnStatistics, len(ds.Headers))
	for _, header := range ds.Headers {
		profiles[header] = p.Profile(ds.Column(header), types[header])
	}
	return profiles
}

// Profile computes statistics for one column given its inferred type
func (p *ColumnProfiler) Profile(values []interface{}, colType quality.ColumnType) quality.ColumnStatistics {
	result := quality.ColumnStatistics{}

	distinct := make(map[string]struct{})
	for _, v := range values {
		if quality.IsNull(v) {
			continue
		}
		result.Count++
		distinct[quality.ValueString(v)] = struct{}{}
	}
	result.Distinct = len(distinct)

	if result.Count == 0 {
		return result
	}

	if colType.IsNumeric() {
		p.profileNumeric(values, &result)
	}
	if colType.IsTextual() {
		p.profileText(values, &result)
	}
	return result
}

// NullCounts counts null cells per column in header order
func (p *ColumnProfiler) NullCounts(ds quality.Dataset) map[string]int {
	nulls := make(map[string]int, len(ds.Headers))
	for _, header := range ds.Headers {
		count := 0
		for _, row := range ds.Rows {
			if quality.IsNull(row[header]) {
				count++
			}
		}
		nulls[header] = count
	}
	return nulls
}

func (p *ColumnProfiler) profileNumeric(values []interface{}, result *quality.ColumnStatistics) {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		if quality.IsNull(v) {
			continue
		}
		if f, ok := asFloat(v); ok {
			numbers = append(numbers, f)
		}
	}
	if len(numbers) == 0 {
		return
	}

	min, _ := stats.Min(numbers)
	max, _ := stats.Max(numbers)
	mean, _ := stats.Mean(numbers)
	median, _ := stats.Median(numbers)

	result.Min = &min
	result.Max = &max
	result.Mean = &mean
	result.Median = &median
}

func (p *ColumnProfiler) profileText(values []interface{}, result *quality.ColumnStatistics) {
	counts := make(map[string]int)
	order := make([]string, 0)
	totalLength := 0
	total := 0

	for _, v := range values {
		if quality.IsNull(v) {
			continue
		}
		s := quality.ValueString(v)
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
		totalLength += len(s)
		total++
	}
	if total == 0 {
		return
	}

	// Ties break toward the first-encountered value
	mostCommon := order[0]
	best := counts[mostCommon]
	for _, s := range order[1:] {
		if counts[s] > best {
			mostCommon = s
			best = counts[s]
		}
	}

	avgLength := float64(totalLength) / float64(total)
	result.MostCommon = &mostCommon
	result.AvgLength = &avgLength
}
