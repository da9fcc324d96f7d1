package analysis

import (
	"testing"
)

func TestComputeQualityScore(t *testing.T) {
	tests := []struct {
		name       string
		issues     int
		rows       int
		columns    int
		nulls      int
		duplicates int
		want       int
	}{
		{"perfect dataset", 0, 100, 5, 0, 0, 100},
		{"empty dataset scores zero", 0, 0, 0, 0, 0, 0},
		{"half-null column costs 15 points", 0, 4, 2, 4, 0, 85},
		{"one issue per row costs 50 points", 10, 10, 2, 0, 0, 50},
		{"all duplicates cost 20 points", 0, 10, 2, 0, 10, 80},
		{"floor at zero", 100, 10, 1, 10, 10, 0},
		{"combined penalties", 2, 10, 2, 2, 1, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQualityScore(tt.issues, tt.rows, tt.columns, tt.nulls, tt.duplicates)
			if got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeQualityScore_AlwaysInRange(t *testing.T) {
	for issues := 0; issues <= 50; issues += 10 {
		for dupes := 0; dupes <= 20; dupes += 5 {
			score := ComputeQualityScore(issues, 20, 3, 30, dupes)
			if score < 0 || score > 100 {
				t.Fatalf("score %d out of range for issues=%d dupes=%d", score, issues, dupes)
			}
		}
	}
}
