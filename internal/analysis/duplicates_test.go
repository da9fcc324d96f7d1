package analysis

import (
	"testing"

	"dataqc/domain/quality"
)

func TestDuplicateDetector_Count(t *testing.T) {
	d := NewDuplicateDetector()

	tests := []struct {
		name string
		rows []quality.Row
		want int
	}{
		{
			name: "one duplicate pair",
			rows: []quality.Row{
				{"a": 1, "b": 2},
				{"a": 1, "b": 2},
				{"a": 1, "b": 3},
			},
			want: 1,
		},
		{
			name: "all occurrences after the first count",
			rows: []quality.Row{
				{"a": 1, "b": 2},
				{"a": 1, "b": 2},
				{"a": 1, "b": 2},
			},
			want: 2,
		},
		{
			name: "no duplicates",
			rows: []quality.Row{
				{"a": 1, "b": 2},
				{"a": 2, "b": 1},
			},
			want: 0,
		},
		{
			name: "trimmed strings and nulls normalize",
			rows: []quality.Row{
				{"a": " x ", "b": nil},
				{"a": "x", "b": ""},
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := quality.NewDataset([]string{"a", "b"}, tt.rows)
			if got := d.Count(ds); got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDuplicateDetector_AdjacentFieldsDoNotCollide(t *testing.T) {
	d := NewDuplicateDetector()
	ds := quality.NewDataset([]string{"a", "b"}, []quality.Row{
		{"a": "ab", "b": "c"},
		{"a": "a", "b": "bc"},
	})
	if got := d.Count(ds); got != 0 {
		t.Errorf("field boundary collision: Count = %d, want 0", got)
	}
}
