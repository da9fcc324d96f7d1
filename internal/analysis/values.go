package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"dataqc/domain/quality"
)

// Shared value parsing used by the inferencer, profiler and validators.
// Every component classifies cells the same way so downstream counts agree.

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Optional leading +, then 7-19 digits with common separators.
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{5,18}[0-9]$`)
)

// booleanTokens are the normalized spellings accepted as boolean values
var booleanTokens = map[string]bool{
	"true": true, "false": true,
	"yes": true, "no": true,
	"0": true, "1": true,
}

// dateLayouts are tried in order; the first match wins and names the
// value's format for consistency checks.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// asFloat extracts a numeric value from a cell, accepting native numbers and
// numeric strings with no residual non-numeric characters.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseNumber(v)
	default:
		return 0, false
	}
}

// parseNumber parses a trimmed string as a number, rejecting anything with
// residual non-numeric characters (ParseFloat already enforces that).
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizeToken lower-cases and trims a value for set membership checks
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isBooleanToken reports whether a normalized string is a recognized boolean
func isBooleanToken(s string) bool {
	return booleanTokens[normalizeToken(s)]
}

// parseDate tries the known layouts and returns the parsed time plus the
// layout that matched.
func parseDate(s string) (time.Time, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

// isEmail reports whether a string looks like an email address
func isEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// isPhone reports whether a string looks like a phone number
func isPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// cellDate extracts a calendar date from a cell value
func cellDate(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		t, _, ok := parseDate(v)
		return t, ok
	default:
		return time.Time{}, false
	}
}

// sampleStrings collects up to limit non-null values as canonical strings
func sampleStrings(values []interface{}, limit int) []string {
	sample := make([]string, 0, limit)
	for _, v := range values {
		if quality.IsNull(v) {
			continue
		}
		sample = append(sample, quality.ValueString(v))
		if len(sample) >= limit {
			break
		}
	}
	return sample
}
