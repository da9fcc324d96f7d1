package analysis

import (
	"dataqc/domain/quality"
)

// TypeInferencer classifies each column's dominant data type from a bounded
// sample of its non-null values. Classification tries boolean, number, date,
// email and phone in that order. Boolean, number and date require the entire
// sample to agree; email and phone classify by strict majority, so a column
// keeps its dominant type and the minority malformed values surface as
// contextual issues instead of silently demoting the column to string.
type TypeInferencer struct {
	sampleSize int
}

// NewTypeInferencer creates an inferencer sampling up to sampleSize values
// per column to bound cost on very large datasets.
func NewTypeInferencer(sampleSize int) *TypeInferencer {
	if sampleSize <= 0 {
		sampleSize = 100
	}
	return &TypeInferencer{sampleSize: sampleSize}
}

// InferTypes classifies every column in header order
func (ti *TypeInferencer) InferTypes(ds quality.Dataset) map[string]quality.ColumnType {
	types := make(map[string]quality.ColumnType, len(ds.Headers))
	for _, header := range ds.Headers {
		types[header] = ti.InferColumn(ds.Column(header))
	}
	return types
}

// InferColumn classifies one column's values. The result is independent of
// row order for any sample drawn from the first sampleSize non-null values.
func (ti *TypeInferencer) InferColumn(values []interface{}) quality.ColumnType {
	sample := sampleStrings(values, ti.sampleSize)
	if len(sample) == 0 {
		// Nothing to classify
		return quality.TypeUnknown
	}

	if allBoolean(sample) {
		return quality.TypeBoolean
	}
	if allMatch(sample, func(s string) bool { _, ok := parseNumber(s); return ok }) {
		return quality.TypeNumber
	}
	if allMatch(sample, func(s string) bool { _, _, ok := parseDate(s); return ok }) {
		return quality.TypeDate
	}
	if mostMatch(sample, isEmail) {
		return quality.TypeEmail
	}
	if mostMatch(sample, isPhone) {
		return quality.TypePhone
	}
	return quality.TypeString
}

// allBoolean requires every value to be a boolean token and the column to be
// restricted to at most a two-valued set.
func allBoolean(sample []string) bool {
	distinct := make(map[string]struct{}, 2)
	for _, s := range sample {
		if !isBooleanToken(s) {
			return false
		}
		distinct[normalizeToken(s)] = struct{}{}
		if len(distinct) > 2 {
			return false
		}
	}
	return true
}

func allMatch(sample []string, match func(string) bool) bool {
	for _, s := range sample {
		if !match(s) {
			return false
		}
	}
	return true
}

// mostMatch reports whether a strict majority of the sample matches
func mostMatch(sample []string, match func(string) bool) bool {
	matches := 0
	for _, s := range sample {
		if match(s) {
			matches++
		}
	}
	return matches*2 > len(sample)
}
