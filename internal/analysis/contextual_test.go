package analysis

import (
	"testing"

	"dataqc/domain/quality"
)

func findIssue(issues []quality.ContextualIssue, column string, rowIndex int) *quality.ContextualIssue {
	for i := range issues {
		if issues[i].Column == column && issues[i].RowIndex == rowIndex {
			return &issues[i]
		}
	}
	return nil
}

func TestContextualValidator_NegativeValue(t *testing.T) {
	v := NewContextualValidator()
	ds := quality.NewDataset([]string{"age"}, []quality.Row{
		{"age": "30"},
		{"age": "-1"},
	})
	types := map[string]quality.ColumnType{"age": quality.TypeNumber}

	issues := v.Validate(ds, types)
	issue := findIssue(issues, "age", 1)
	if issue == nil {
		t.Fatal("expected an issue for the negative age")
	}
	if issue.Severity != quality.SeverityMedium {
		t.Errorf("severity = %q, want medium", issue.Severity)
	}
	if findIssue(issues, "age", 0) != nil {
		t.Error("valid age must not be flagged")
	}
}

func TestContextualValidator_ImplausibleAge(t *testing.T) {
	v := NewContextualValidator()
	ds := quality.NewDataset([]string{"age"}, []quality.Row{{"age": "200"}})
	types := map[string]quality.ColumnType{"age": quality.TypeNumber}

	issues := v.Validate(ds, types)
	if findIssue(issues, "age", 0) == nil {
		t.Fatal("expected an issue for age 200")
	}
}

func TestContextualValidator_NameHeuristicNeedsWordMatch(t *testing.T) {
	v := NewContextualValidator()
	// "percentage" contains "age" but is not an age column
	ds := quality.NewDataset([]string{"percentage"}, []quality.Row{{"percentage": "500"}})
	types := map[string]quality.ColumnType{"percentage": quality.TypeNumber}

	issues := v.Validate(ds, types)
	if len(issues) != 0 {
		t.Errorf("percentage column wrongly matched the age heuristic: %v", issues)
	}
}

func TestContextualValidator_MalformedEmail(t *testing.T) {
	v := NewContextualValidator()
	ds := quality.NewDataset([]string{"email"}, []quality.Row{
		{"email": "ok@example.com"},
		{"email": "broken"},
	})
	types := map[string]quality.ColumnType{"email": quality.TypeEmail}

	issues := v.Validate(ds, types)
	issue := findIssue(issues, "email", 1)
	if issue == nil {
		t.Fatal("expected an issue for the malformed email")
	}
	if issue.Severity != quality.SeverityHigh {
		t.Errorf("severity = %q, want high", issue.Severity)
	}
}

func TestContextualValidator_NonNumericInNumberColumn(t *testing.T) {
	v := NewContextualValidator()
	ds := quality.NewDataset([]string{"score"}, []quality.Row{
		{"score": "10"},
		{"score": "n/a"},
	})
	types := map[string]quality.ColumnType{"score": quality.TypeNumber}

	issues := v.Validate(ds, types)
	issue := findIssue(issues, "score", 1)
	if issue == nil {
		t.Fatal("expected an issue for the non-numeric value")
	}
	if issue.Severity != quality.SeverityCritical {
		t.Errorf("severity = %q, want critical", issue.Severity)
	}
}

func TestContextualValidator_InconsistentDateFormat(t *testing.T) {
	v := NewContextualValidator()
	ds := quality.NewDataset([]string{"when"}, []quality.Row{
		{"when": "2024-01-01"},
		{"when": "2024-01-02"},
		{"when": "2024-01-03"},
		{"when": "01/04/2024"},
	})
	types := map[string]quality.ColumnType{"when": quality.TypeDate}

	issues := v.Validate(ds, types)
	if findIssue(issues, "when", 3) == nil {
		t.Fatal("expected an issue for the deviating date format")
	}
	if findIssue(issues, "when", 0) != nil {
		t.Error("dominant-format dates must not be flagged")
	}
}

func TestContextualValidator_EmptyStringInPopulatedColumn(t *testing.T) {
	v := NewContextualValidator()

	rows := make([]quality.Row, 0, 20)
	for i := 0; i < 19; i++ {
		rows = append(rows, quality.Row{"name": "filled"})
	}
	rows = append(rows, quality.Row{"name": ""})
	ds := quality.NewDataset([]string{"name"}, rows)
	types := map[string]quality.ColumnType{"name": quality.TypeString}

	issues := v.Validate(ds, types)
	issue := findIssue(issues, "name", 19)
	if issue == nil {
		t.Fatal("expected an issue for the empty value")
	}
	if issue.Severity != quality.SeverityLow {
		t.Errorf("severity = %q, want low", issue.Severity)
	}
}

func TestContextualValidator_SparseColumnToleratesEmpties(t *testing.T) {
	v := NewContextualValidator()
	ds := quality.NewDataset([]string{"note"}, []quality.Row{
		{"note": "x"},
		{"note": ""},
		{"note": ""},
	})
	types := map[string]quality.ColumnType{"note": quality.TypeString}

	if issues := v.Validate(ds, types); len(issues) != 0 {
		t.Errorf("sparse column must tolerate empties, got %v", issues)
	}
}
