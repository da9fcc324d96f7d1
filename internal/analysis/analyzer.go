package analysis

import (
	"fmt"

	"dataqc/domain/core"
	"dataqc/domain/quality"
	"dataqc/internal/errors"
)

// Config holds the engine's tuning knobs
type Config struct {
	// SampleSize bounds how many non-null values type inference examines
	SampleSize int
	// ZScoreThreshold is the |z| above which a numeric value is an outlier
	ZScoreThreshold float64
	// MinOutlierSamples is the smallest numeric sample outlier detection runs on
	MinOutlierSamples int
}

// DefaultConfig returns the documented engine defaults
func DefaultConfig() Config {
	return Config{
		SampleSize:        100,
		ZScoreThreshold:   2.5,
		MinOutlierSamples: 5,
	}
}

// Analyzer runs the full data-quality pipeline over a dataset: type
// inference, column profiling, duplicate/outlier detection, contextual and
// cross-field validation, custom rules, and scoring. It is stateless between
// calls and mutates nothing it is given; callers re-invoke it after any
// change to the dataset or the active rule set.
type Analyzer struct {
	inferencer *TypeInferencer
	profiler   *ColumnProfiler
	duplicates *DuplicateDetector
	outliers   *OutlierDetector
	contextual *ContextualValidator
	crossField *CrossFieldValidator
	rules      *RuleEvaluator
}

// New creates an analyzer with the given configuration
func New(cfg Config) *Analyzer {
	return &Analyzer{
		inferencer: NewTypeInferencer(cfg.SampleSize),
		profiler:   NewColumnProfiler(),
		duplicates: NewDuplicateDetector(),
		outliers:   NewOutlierDetector(cfg.ZScoreThreshold, cfg.MinOutlierSamples),
		contextual: NewContextualValidator(),
		crossField: NewCrossFieldValidator(),
		rules:      NewRuleEvaluator(),
	}
}

// Analyze runs the pipeline and assembles the immutable result. Only a
// structurally invalid call (nil rows or headers) is a hard failure; per-row
// and per-column irregularities surface as result warnings. Identical inputs
// always produce identical results.
func (a *Analyzer) Analyze(rows []quality.Row, headers []string, customRules []quality.CustomRule) (*quality.AnalysisResult, error) {
	if rows == nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, core.ErrNilRows)
	}
	if headers == nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, core.ErrNilHeaders)
	}
	if err := checkHeaders(headers); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	ds := quality.NewDataset(headers, rows)
	result := &quality.AnalysisResult{
		TotalRows:    len(rows),
		TotalColumns: len(headers),
		NullValues:   map[string]int{},
		DataTypes:    map[string]quality.ColumnType{},
		Outliers:     map[string][]quality.OutlierRecord{},
		Statistics:   map[string]quality.ColumnStatistics{},
	}

	if ds.IsEmpty() {
		result.Warnings = append(result.Warnings, quality.Warning{
			Code:    quality.WarnEmptyDataset,
			Message: "dataset has no rows or headers; nothing to analyze",
		})
		return result, nil
	}

	result.DataTypes = a.inferencer.InferTypes(ds)
	for _, header := range headers {
		if result.DataTypes[header] == quality.TypeUnknown {
			result.Warnings = append(result.Warnings, quality.Warning{
				Code:    quality.WarnUnsupportedColumn,
				Message: fmt.Sprintf("column %q could not be classified and falls back to unknown", header),
			})
		}
	}

	result.Statistics = a.profiler.ProfileAll(ds, result.DataTypes)
	result.NullValues = a.profiler.NullCounts(ds)
	result.Duplicates = a.duplicates.Count(ds)
	result.Outliers = a.outliers.DetectAll(ds, result.DataTypes)
	result.ContextualIssues = a.contextual.Validate(ds, result.DataTypes)
	result.CrossFieldIssues = a.crossField.Validate(ds)

	ruleResults, ruleWarnings := a.rules.Evaluate(customRules, ds)
	result.RuleResults = ruleResults
	result.Warnings = append(result.Warnings, ruleWarnings...)

	result.QualityScore = ComputeQualityScore(
		result.TotalIssues(),
		result.TotalRows,
		result.TotalColumns,
		result.TotalNulls(),
		result.Duplicates,
	)
	return result, nil
}

// checkHeaders rejects structurally invalid header lists: empty names and
// duplicates make column references ambiguous.
func checkHeaders(headers []string) error {
	seen := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		if h == "" {
			return fmt.Errorf("%w: position %d", core.ErrEmptyHeader, i)
		}
		if _, dup := seen[h]; dup {
			return fmt.Errorf("duplicate header %q", h)
		}
		seen[h] = struct{}{}
	}
	return nil
}
