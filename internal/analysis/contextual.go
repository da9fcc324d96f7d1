package analysis

import (
	"fmt"
	"regexp"

	"dataqc/domain/quality"
)

// ContextualValidator flags problems with a single field's value in
// isolation: type/format mismatches against the inferred column type, and
// plausibility heuristics keyed by column name. Checks live in a table so new
// heuristics land without touching the scan loop. Severity is a fixed mapping
// from problem category: structural and type mismatches are high or critical,
// plausibility heuristics medium or low.
type ContextualValidator struct {
	checks []contextualCheck
}

// columnContext carries per-column facts precomputed before the row scan
type columnContext struct {
	name           string
	colType        quality.ColumnType
	dominantLayout string
	nonNullRatio   float64
}

type contextualCheck struct {
	name    string
	applies func(ctx *columnContext) bool
	check   func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue
}

var (
	nonNegativePattern = regexp.MustCompile(`(?i)(^|[_\s-])(age|price|quantity|qty|amount|count|total|salary|cost|stock|weight|height|distance)($|[_\s-])`)
	agePattern         = regexp.MustCompile(`(?i)(^|[_\s-])age($|[_\s-])`)
)

// maxPlausibleAge bounds the age plausibility heuristic
const maxPlausibleAge = 150

// nonEmptyDominance is the non-null share above which an empty string in the
// column is treated as an anomaly rather than an expected gap.
const nonEmptyDominance = 0.9

// NewContextualValidator creates a validator with the built-in check table
func NewContextualValidator() *ContextualValidator {
	return &ContextualValidator{checks: builtinContextualChecks()}
}

// Validate scans every (row, column) pair in ascending row order, columns in
// header order, and returns one issue per detected problem.
func (v *ContextualValidator) Validate(ds quality.Dataset, types map[string]quality.ColumnType) []quality.ContextualIssue {
	contexts := make([]*columnContext, len(ds.Headers))
	for i, header := range ds.Headers {
		contexts[i] = v.buildContext(ds, header, types[header])
	}

	var issues []quality.ContextualIssue
	for rowIndex, row := range ds.Rows {
		for i, header := range ds.Headers {
			ctx := contexts[i]
			value := row[header]
			for _, chk := range v.checks {
				if !chk.applies(ctx) {
					continue
				}
				if issue := chk.check(ctx, rowIndex, value); issue != nil {
					issues = append(issues, *issue)
				}
			}
		}
	}
	return issues
}

func (v *ContextualValidator) buildContext(ds quality.Dataset, header string, colType quality.ColumnType) *columnContext {
	ctx := &columnContext{name: header, colType: colType}

	nonNull := 0
	layoutCounts := make(map[string]int)
	layoutOrder := make([]string, 0)
	for _, row := range ds.Rows {
		value := row[header]
		if quality.IsNull(value) {
			continue
		}
		nonNull++
		if colType == quality.TypeDate {
			if _, layout, ok := parseDate(quality.ValueString(value)); ok {
				if _, seen := layoutCounts[layout]; !seen {
					layoutOrder = append(layoutOrder, layout)
				}
				layoutCounts[layout]++
			}
		}
	}
	if len(ds.Rows) > 0 {
		ctx.nonNullRatio = float64(nonNull) / float64(len(ds.Rows))
	}

	// The dominant date layout is the most frequent one, first seen wins ties
	best := 0
	for _, layout := range layoutOrder {
		if layoutCounts[layout] > best {
			ctx.dominantLayout = layout
			best = layoutCounts[layout]
		}
	}
	return ctx
}

func builtinContextualChecks() []contextualCheck {
	return []contextualCheck{
		{
			// Structural mismatch: non-numeric value inside a numeric column
			name:    "numeric_mismatch",
			applies: func(ctx *columnContext) bool { return ctx.colType == quality.TypeNumber },
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				if quality.IsNull(value) {
					return nil
				}
				if _, ok := asFloat(value); ok {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("non-numeric value %q in a numeric column", quality.ValueString(value)),
					Suggestion: "provide a numeric value such as 42 or 3.14",
					Severity:   quality.SeverityCritical,
				}
			},
		},
		{
			// Plausibility: negative value where the name implies non-negativity
			name: "negative_value",
			applies: func(ctx *columnContext) bool {
				return ctx.colType == quality.TypeNumber && nonNegativePattern.MatchString(ctx.name)
			},
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				f, ok := asFloat(value)
				if !ok || f >= 0 {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("negative value %v in column %q, which is expected to be non-negative", value, ctx.name),
					Suggestion: "use a value greater than or equal to 0",
					Severity:   quality.SeverityMedium,
				}
			},
		},
		{
			// Plausibility: ages beyond any recorded human lifespan
			name: "implausible_age",
			applies: func(ctx *columnContext) bool {
				return ctx.colType == quality.TypeNumber && agePattern.MatchString(ctx.name)
			},
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				f, ok := asFloat(value)
				if !ok || f <= maxPlausibleAge {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("implausible age %v", value),
					Suggestion: fmt.Sprintf("ages are expected to be between 0 and %d", maxPlausibleAge),
					Severity:   quality.SeverityMedium,
				}
			},
		},
		{
			// Format mismatch against the inferred email type
			name:    "malformed_email",
			applies: func(ctx *columnContext) bool { return ctx.colType == quality.TypeEmail },
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				if quality.IsNull(value) || isEmail(quality.ValueString(value)) {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("malformed email address %q", quality.ValueString(value)),
					Suggestion: "use the format name@example.com",
					Severity:   quality.SeverityHigh,
				}
			},
		},
		{
			// Format mismatch against the inferred phone type
			name:    "malformed_phone",
			applies: func(ctx *columnContext) bool { return ctx.colType == quality.TypePhone },
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				if quality.IsNull(value) || isPhone(quality.ValueString(value)) {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("malformed phone number %q", quality.ValueString(value)),
					Suggestion: "use digits with an optional +country prefix, e.g. +1 555 123 4567",
					Severity:   quality.SeverityHigh,
				}
			},
		},
		{
			// Empty string in a column that is predominantly non-empty
			name: "unexpected_empty",
			applies: func(ctx *columnContext) bool {
				return ctx.nonNullRatio > nonEmptyDominance
			},
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				s, ok := value.(string)
				if !ok || !quality.IsNull(s) {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("empty value in column %q, which is populated in most rows", ctx.name),
					Suggestion: "fill in the missing value or remove the row",
					Severity:   quality.SeverityLow,
				}
			},
		},
		{
			// Date format deviating from the column's dominant pattern
			name: "inconsistent_date_format",
			applies: func(ctx *columnContext) bool {
				return ctx.colType == quality.TypeDate && ctx.dominantLayout != ""
			},
			check: func(ctx *columnContext, rowIndex int, value interface{}) *quality.ContextualIssue {
				if quality.IsNull(value) {
					return nil
				}
				_, layout, ok := parseDate(quality.ValueString(value))
				if !ok || layout == ctx.dominantLayout {
					return nil
				}
				return &quality.ContextualIssue{
					Column:     ctx.name,
					RowIndex:   rowIndex,
					Value:      value,
					Issue:      fmt.Sprintf("date %q deviates from the column's dominant format", quality.ValueString(value)),
					Suggestion: fmt.Sprintf("use the format %s", ctx.dominantLayout),
					Severity:   quality.SeverityMedium,
				}
			},
		},
	}
}
