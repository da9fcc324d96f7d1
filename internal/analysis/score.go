package analysis

import (
	"math"
)

// Quality score weights. Fixed constants: changing them changes every score
// users have ever seen, so they are preserved exactly.
const (
	issueWeight     = 50.0
	nullWeight      = 30.0
	duplicateWeight = 20.0
)

// ComputeQualityScore combines issue density, null ratio and duplicate ratio
// into one 0-100 score:
//
//	score = 100 - issues/rows*50 - nullRatio*30 - duplicates/rows*20
//
// clamped to [0, 100] and rounded to the nearest integer. A dataset with zero
// rows scores 0. Each penalty term is a fixed percentage-point deduction, so
// scores stay interpretable.
func ComputeQualityScore(totalIssues, totalRows, totalColumns, totalNulls, duplicates int) int {
	if totalRows == 0 {
		return 0
	}

	nullRatio := 0.0
	if cells := totalRows * totalColumns; cells > 0 {
		nullRatio = float64(totalNulls) / float64(cells)
	}

	score := 100.0 -
		float64(totalIssues)/float64(totalRows)*issueWeight -
		nullRatio*nullWeight -
		float64(duplicates)/float64(totalRows)*duplicateWeight

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
