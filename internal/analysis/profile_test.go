package analysis

import (
	"testing"

	"dataqc/domain/quality"
)

func TestColumnProfiler_Numeric(t *testing.T) {
	p := NewColumnProfiler()
	stats := p.Profile([]interface{}{"4", "1", "3", "2"}, quality.TypeNumber)

	if stats.Count != 4 || stats.Distinct != 4 {
		t.Fatalf("count/distinct = %d/%d, want 4/4", stats.Count, stats.Distinct)
	}
	if stats.Min == nil || *stats.Min != 1 {
		t.Errorf("min = %v, want 1", stats.Min)
	}
	if stats.Max == nil || *stats.Max != 4 {
		t.Errorf("max = %v, want 4", stats.Max)
	}
	if stats.Mean == nil || *stats.Mean != 2.5 {
		t.Errorf("mean = %v, want 2.5", stats.Mean)
	}
	// Even count: median averages the two middle values
	if stats.Median == nil || *stats.Median != 2.5 {
		t.Errorf("median = %v, want 2.5", stats.Median)
	}
}

func TestColumnProfiler_OddMedian(t *testing.T) {
	p := NewColumnProfiler()
	stats := p.Profile([]interface{}{"9", "1", "5"}, quality.TypeNumber)
	if stats.Median == nil || *stats.Median != 5 {
		t.Errorf("median = %v, want 5", stats.Median)
	}
}

func TestColumnProfiler_NullsExcluded(t *testing.T) {
	p := NewColumnProfiler()
	stats := p.Profile([]interface{}{"10", nil, "", "20"}, quality.TypeNumber)
	if stats.Count != 2 {
		t.Errorf("count = %d, want 2", stats.Count)
	}
	if stats.Mean == nil || *stats.Mean != 15 {
		t.Errorf("mean = %v, want 15", stats.Mean)
	}
}

func TestColumnProfiler_EmptyColumnHasNoStats(t *testing.T) {
	p := NewColumnProfiler()
	stats := p.Profile([]interface{}{nil, "", nil}, quality.TypeUnknown)
	if stats.Count != 0 || stats.Distinct != 0 {
		t.Errorf("count/distinct = %d/%d, want 0/0", stats.Count, stats.Distinct)
	}
	// Absent, not zero
	if stats.Min != nil || stats.Max != nil || stats.Mean != nil || stats.Median != nil {
		t.Error("numeric stats must be absent for an empty column")
	}
	if stats.MostCommon != nil || stats.AvgLength != nil {
		t.Error("text stats must be absent for an empty column")
	}
}

func TestColumnProfiler_Text(t *testing.T) {
	p := NewColumnProfiler()
	stats := p.Profile([]interface{}{"bb", "aa", "bb", "cc"}, quality.TypeString)

	if stats.MostCommon == nil || *stats.MostCommon != "bb" {
		t.Errorf("most common = %v, want bb", stats.MostCommon)
	}
	if stats.AvgLength == nil || *stats.AvgLength != 2 {
		t.Errorf("avg length = %v, want 2", stats.AvgLength)
	}
}

func TestColumnProfiler_MostCommonTieBreaksFirstEncountered(t *testing.T) {
	p := NewColumnProfiler()
	stats := p.Profile([]interface{}{"x", "y", "y", "x"}, quality.TypeString)
	if stats.MostCommon == nil || *stats.MostCommon != "x" {
		t.Errorf("tie must break to first encountered, got %v", stats.MostCommon)
	}
}

func TestColumnProfiler_NullCounts(t *testing.T) {
	p := NewColumnProfiler()
	ds := quality.NewDataset(
		[]string{"a", "b"},
		[]quality.Row{
			{"a": "1", "b": nil},
			{"a": "2", "b": ""},
			{"a": "3"},
		},
	)
	nulls := p.NullCounts(ds)
	if nulls["a"] != 0 {
		t.Errorf("nulls[a] = %d, want 0", nulls["a"])
	}
	// nil, empty string and missing key all count as null
	if nulls["b"] != 3 {
		t.Errorf("nulls[b] = %d, want 3", nulls["b"])
	}
}
