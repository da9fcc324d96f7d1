package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"dataqc/domain/quality"
)

// OutlierDetector flags numeric values whose z-score against the column's
// population mean and standard deviation exceeds the threshold. Columns with
// fewer numeric values than the minimum sample size cannot support a
// meaningful estimate and are skipped.
type OutlierDetector struct {
	threshold  float64
	minSamples int
}

// NewOutlierDetector creates a detector with the given |z| threshold and
// minimum numeric sample size.
func NewOutlierDetector(threshold float64, minSamples int) *OutlierDetector {
	if threshold <= 0 {
		threshold = 2.5
	}
	if minSamples < 2 {
		minSamples = 5
	}
	return &OutlierDetector{threshold: threshold, minSamples: minSamples}
}

// DetectAll scans every numeric column in header order
func (d *OutlierDetector) DetectAll(ds quality.Dataset, types map[string]quality.ColumnType) map[string][]quality.OutlierRecord {
	outliers := make(map[string][]quality.OutlierRecord, len(ds.Headers))
	for _, header := range ds.Headers {
		if !types[header].IsNumeric() {
			continue
		}
		if records := d.DetectColumn(ds.Column(header)); len(records) > 0 {
			outliers[header] = records
		}
	}
	return outliers
}

// DetectColumn flags outliers in one column, ordered by row index ascending
func (d *OutlierDetector) DetectColumn(values []interface{}) []quality.OutlierRecord {
	indices := make([]int, 0, len(values))
	numbers := make([]float64, 0, len(values))
	for i, v := range values {
		if quality.IsNull(v) {
			continue
		}
		if f, ok := asFloat(v); ok {
			indices = append(indices, i)
			numbers = append(numbers, f)
		}
	}
	if len(numbers) < d.minSamples {
		return nil
	}

	mean, stdDev := stat.PopMeanStdDev(numbers, nil)
	if stdDev == 0 || math.IsNaN(stdDev) {
		// Zero variance, every value is the mean
		return nil
	}

	var records []quality.OutlierRecord
	for i, value := range numbers {
		z := (value - mean) / stdDev
		if math.Abs(z) > d.threshold {
			records = append(records, quality.OutlierRecord{
				RowIndex: indices[i],
				Value:    value,
				ZScore:   z,
			})
		}
	}
	return records
}
