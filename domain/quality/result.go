package quality

// AnalysisResult is the aggregate, immutable snapshot of one analysis run.
// A new run on changed inputs supersedes it; nothing updates it in place.
type AnalysisResult struct {
	TotalRows    int `json:"total_rows"`
	TotalColumns int `json:"total_columns"`

	NullValues map[string]int              `json:"null_values"`
	Duplicates int                         `json:"duplicates"`
	DataTypes  map[string]ColumnType       `json:"data_types"`
	Outliers   map[string][]OutlierRecord  `json:"outliers"`
	Statistics map[string]ColumnStatistics `json:"statistics"`

	ContextualIssues []ContextualIssue  `json:"contextual_issues"`
	CrossFieldIssues []CrossFieldIssue  `json:"cross_field_issues"`
	RuleResults      []ValidationResult `json:"rule_results"`

	QualityScore int       `json:"quality_score"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// TotalIssues counts contextual plus cross-field issues, the quantity the
// quality score penalizes
func (r *AnalysisResult) TotalIssues() int {
	return len(r.ContextualIssues) + len(r.CrossFieldIssues)
}

// TotalNulls sums the per-column null counts
func (r *AnalysisResult) TotalNulls() int {
	total := 0
	for _, n := range r.NullValues {
		total += n
	}
	return total
}

// NullRatio is the fraction of all cells that are null
func (r *AnalysisResult) NullRatio() float64 {
	cells := r.TotalRows * r.TotalColumns
	if cells == 0 {
		return 0
	}
	return float64(r.TotalNulls()) / float64(cells)
}

// OutlierCount sums outliers across all columns
func (r *AnalysisResult) OutlierCount() int {
	total := 0
	for _, records := range r.Outliers {
		total += len(records)
	}
	return total
}
