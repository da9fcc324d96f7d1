package quality

// ColumnType represents the dominant data type inferred for a column
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeString  ColumnType = "string"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
	TypeEmail   ColumnType = "email"
	TypePhone   ColumnType = "phone"
	TypeUnknown ColumnType = "unknown"
)

// IsNumeric returns true if values of this type carry numeric statistics
func (t ColumnType) IsNumeric() bool {
	return t == TypeNumber
}

// IsTextual returns true if values of this type carry text statistics
func (t ColumnType) IsTextual() bool {
	return t == TypeString || t == TypeEmail || t == TypePhone
}

// Severity grades how serious a detected data-quality problem is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering position of a severity, higher is worse
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// IsValid checks that the severity is one of the known grades
func (s Severity) IsValid() bool {
	return s.Rank() >= 0
}

// ColumnStatistics holds per-column descriptive statistics. Numeric fields are
// pointers so an empty column reads as absent rather than zero.
type ColumnStatistics struct {
	Count    int `json:"count"`
	Distinct int `json:"distinct"`

	// Populated for numeric columns
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`

	// Populated for textual columns
	MostCommon *string  `json:"most_common,omitempty"`
	AvgLength  *float64 `json:"avg_length,omitempty"`
}

// OutlierRecord flags one numeric value whose z-score exceeded the threshold.
// It references the row by position and does not own the row.
type OutlierRecord struct {
	RowIndex int     `json:"row_index"`
	Value    float64 `json:"value"`
	ZScore   float64 `json:"z_score"`
}

// ContextualIssue is a data-quality problem scoped to one field in one row
type ContextualIssue struct {
	Column     string      `json:"column"`
	RowIndex   int         `json:"row_index"`
	Value      interface{} `json:"value"`
	Issue      string      `json:"issue"`
	Suggestion string      `json:"suggestion"`
	Severity   Severity    `json:"severity"`
}

// CrossFieldIssue is a data-quality problem arising from the relationship
// between two or more fields in one row
type CrossFieldIssue struct {
	Columns    []string `json:"columns"`
	RowIndex   int      `json:"row_index"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Severity   Severity `json:"severity"`
}

// ValidationResult summarizes one rule's findings across the dataset
type ValidationResult struct {
	RuleID         string   `json:"rule_id,omitempty"`
	RuleName       string   `json:"rule_name"`
	Severity       Severity `json:"severity"`
	AffectedRows   []int    `json:"affected_rows"`
	Description    string   `json:"description"`
	Suggestion     string   `json:"suggestion,omitempty"`
	FixExpressions []string `json:"fix_expressions,omitempty"`
	CanAutoFix     bool     `json:"can_auto_fix"`
}

// Warning codes for non-fatal analysis conditions
const (
	WarnEmptyDataset      = "EMPTY_DATASET"
	WarnMalformedRule     = "MALFORMED_RULE"
	WarnUnsupportedColumn = "UNSUPPORTED_COLUMN_TYPE"
)

// Warning reports a non-fatal condition encountered during analysis
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
