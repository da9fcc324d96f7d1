package analysis

import (
	"testing"

	"dataqc/domain/quality"
)

func TestOutlierDetector_FlagsExtremeValue(t *testing.T) {
	d := NewOutlierDetector(2.5, 5)

	values := []interface{}{"10", "10", "10", "10", "10", "10", "10", "10", "10", "1000"}
	records := d.DetectColumn(values)

	if len(records) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(records))
	}
	if records[0].RowIndex != 9 {
		t.Errorf("row index = %d, want 9", records[0].RowIndex)
	}
	if records[0].Value != 1000 {
		t.Errorf("value = %v, want 1000", records[0].Value)
	}
	if records[0].ZScore <= 2.5 {
		t.Errorf("z-score = %v, want > 2.5", records[0].ZScore)
	}
}

func TestOutlierDetector_ZeroVarianceFlagsNothing(t *testing.T) {
	d := NewOutlierDetector(2.5, 5)
	values := []interface{}{"10", "10", "10", "10", "10"}
	if records := d.DetectColumn(values); len(records) != 0 {
		t.Errorf("zero variance column flagged %d outliers", len(records))
	}
}

func TestOutlierDetector_SkipsSmallSamples(t *testing.T) {
	d := NewOutlierDetector(2.5, 5)
	values := []interface{}{"10", "10", "1000"}
	if records := d.DetectColumn(values); len(records) != 0 {
		t.Errorf("undersized column flagged %d outliers", len(records))
	}
}

func TestOutlierDetector_NullsAndTextSkipped(t *testing.T) {
	d := NewOutlierDetector(2.5, 5)
	values := []interface{}{"10", nil, "10", "junk", "10", "10", "10", "10", "10", "10", "10", "1000"}
	records := d.DetectColumn(values)
	if len(records) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(records))
	}
	// Row index refers to the original position, not the numeric subsequence
	if records[0].RowIndex != 11 {
		t.Errorf("row index = %d, want 11", records[0].RowIndex)
	}
}

func TestOutlierDetector_DetectAll_NumericColumnsOnly(t *testing.T) {
	d := NewOutlierDetector(2.5, 5)

	rows := make([]quality.Row, 0, 10)
	for i := 0; i < 9; i++ {
		rows = append(rows, quality.Row{"n": "10", "s": "same"})
	}
	rows = append(rows, quality.Row{"n": "1000", "s": "same"})
	ds := quality.NewDataset([]string{"n", "s"}, rows)

	types := map[string]quality.ColumnType{
		"n": quality.TypeNumber,
		"s": quality.TypeString,
	}
	outliers := d.DetectAll(ds, types)

	if len(outliers["n"]) != 1 {
		t.Errorf("expected outlier in numeric column, got %v", outliers["n"])
	}
	if _, ok := outliers["s"]; ok {
		t.Error("string column must not be scanned for outliers")
	}
}
