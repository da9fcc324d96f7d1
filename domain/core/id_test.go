package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParseRuleID tests rule ID parsing
func TestParseRuleID(t *testing.T) {
	tests := []struct {
		input    string
		expected RuleID
		hasError bool
	}{
		{"rule-123", RuleID("rule-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRuleID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestRowSignature tests the duplicate detection fingerprint
func TestRowSignature(t *testing.T) {
	a := NewRowSignature([]string{"1", "alice", ""})
	b := NewRowSignature([]string{"1", "alice", ""})
	if a != b {
		t.Error("Expected identical field lists to produce identical signatures")
	}

	c := NewRowSignature([]string{"1", "bob", ""})
	if a == c {
		t.Error("Expected differing field lists to produce differing signatures")
	}

	// Adjacent fields must not merge into the same joined form
	d := NewRowSignature([]string{"ab", "c"})
	e := NewRowSignature([]string{"a", "bc"})
	if d == e {
		t.Error("Expected field boundaries to be preserved in the signature")
	}
}
