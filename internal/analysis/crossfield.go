package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"dataqc/domain/quality"
)

// CrossFieldValidator evaluates relationships between two or more columns in
// the same row, keyed by column-name patterns. A relation only runs when all
// of its columns are present in the headers; absent columns silently skip the
// check. Like the contextual checks, relations live in a table so new domain
// heuristics can be added without touching the scan loop.
type CrossFieldValidator struct {
	relations []crossFieldRelation
}

type crossFieldRelation struct {
	name string
	// resolve maps the header list to the concrete columns involved,
	// returning false when the relation does not apply to this dataset
	resolve func(headers []string) ([]string, bool)
	check   func(columns []string, rowIndex int, row quality.Row) *quality.CrossFieldIssue
}

// moneyTolerance absorbs float formatting noise when comparing totals
const moneyTolerance = 0.01

var (
	startDatePattern = regexp.MustCompile(`(?i)^(start|begin)([_\s-]?(date|at|time))?$`)
	endDatePattern   = regexp.MustCompile(`(?i)^(end|finish)([_\s-]?(date|at|time))?$`)
)

// countryCurrencies maps normalized country spellings to their currency code
var countryCurrencies = map[string]string{
	"us": "USD", "usa": "USD", "united states": "USD",
	"uk": "GBP", "gb": "GBP", "united kingdom": "GBP",
	"germany": "EUR", "de": "EUR",
	"france": "EUR", "fr": "EUR",
	"spain": "EUR", "es": "EUR",
	"india": "INR", "in": "INR",
	"japan": "JPY", "jp": "JPY",
	"canada": "CAD", "ca": "CAD",
	"australia": "AUD", "au": "AUD",
	"brazil": "BRL", "br": "BRL",
}

// countryDialPrefixes maps normalized country spellings to phone prefixes
var countryDialPrefixes = map[string]string{
	"us": "+1", "usa": "+1", "united states": "+1",
	"uk": "+44", "gb": "+44", "united kingdom": "+44",
	"germany": "+49", "de": "+49",
	"france": "+33", "fr": "+33",
	"spain": "+34", "es": "+34",
	"india": "+91", "in": "+91",
	"japan": "+81", "jp": "+81",
	"canada": "+1", "ca": "+1",
	"australia": "+61", "au": "+61",
	"brazil": "+55", "br": "+55",
}

// NewCrossFieldValidator creates a validator with the built-in relation table
func NewCrossFieldValidator() *CrossFieldValidator {
	return &CrossFieldValidator{relations: builtinRelations()}
}

// Validate runs every applicable relation over every row in ascending order
func (v *CrossFieldValidator) Validate(ds quality.Dataset) []quality.CrossFieldIssue {
	type boundRelation struct {
		relation crossFieldRelation
		columns  []string
	}
	var bound []boundRelation
	for _, rel := range v.relations {
		if columns, ok := rel.resolve(ds.Headers); ok {
			bound = append(bound, boundRelation{relation: rel, columns: columns})
		}
	}

	var issues []quality.CrossFieldIssue
	for rowIndex, row := range ds.Rows {
		for _, b := range bound {
			if issue := b.relation.check(b.columns, rowIndex, row); issue != nil {
				issues = append(issues, *issue)
			}
		}
	}
	return issues
}

func builtinRelations() []crossFieldRelation {
	return []crossFieldRelation{
		{
			name: "start_before_end",
			resolve: func(headers []string) ([]string, bool) {
				start := findHeader(headers, startDatePattern)
				end := findHeader(headers, endDatePattern)
				if start == "" || end == "" {
					return nil, false
				}
				return []string{start, end}, true
			},
			check: func(columns []string, rowIndex int, row quality.Row) *quality.CrossFieldIssue {
				start, okStart := cellDate(row[columns[0]])
				end, okEnd := cellDate(row[columns[1]])
				if !okStart || !okEnd || !start.After(end) {
					return nil
				}
				return &quality.CrossFieldIssue{
					Columns:    columns,
					RowIndex:   rowIndex,
					Issue:      fmt.Sprintf("%s is after %s", columns[0], columns[1]),
					Suggestion: "swap the two dates or correct the later one",
					Severity:   quality.SeverityHigh,
				}
			},
		},
		{
			name: "total_equals_price_times_quantity",
			resolve: func(headers []string) ([]string, bool) {
				return findAll(headers, "price", "quantity", "total")
			},
			check: func(columns []string, rowIndex int, row quality.Row) *quality.CrossFieldIssue {
				price, ok1 := asFloat(row[columns[0]])
				qty, ok2 := asFloat(row[columns[1]])
				total, ok3 := asFloat(row[columns[2]])
				if !ok1 || !ok2 || !ok3 {
					return nil
				}
				if math.Abs(price*qty-total) <= moneyTolerance {
					return nil
				}
				return &quality.CrossFieldIssue{
					Columns:    columns,
					RowIndex:   rowIndex,
					Issue:      fmt.Sprintf("%s (%v) does not equal %s x %s (%v)", columns[2], total, columns[0], columns[1], price*qty),
					Suggestion: fmt.Sprintf("recompute %s as %s x %s", columns[2], columns[0], columns[1]),
					Severity:   quality.SeverityHigh,
				}
			},
		},
		{
			name: "total_equals_subtotal_plus_tax",
			resolve: func(headers []string) ([]string, bool) {
				return findAll(headers, "subtotal", "tax", "total")
			},
			check: func(columns []string, rowIndex int, row quality.Row) *quality.CrossFieldIssue {
				subtotal, ok1 := asFloat(row[columns[0]])
				tax, ok2 := asFloat(row[columns[1]])
				total, ok3 := asFloat(row[columns[2]])
				if !ok1 || !ok2 || !ok3 {
					return nil
				}
				if math.Abs(subtotal+tax-total) <= moneyTolerance {
					return nil
				}
				return &quality.CrossFieldIssue{
					Columns:    columns,
					RowIndex:   rowIndex,
					Issue:      fmt.Sprintf("%s (%v) does not equal %s + %s (%v)", columns[2], total, columns[0], columns[1], subtotal+tax),
					Suggestion: fmt.Sprintf("recompute %s as %s + %s", columns[2], columns[0], columns[1]),
					Severity:   quality.SeverityHigh,
				}
			},
		},
		{
			name: "country_matches_currency",
			resolve: func(headers []string) ([]string, bool) {
				return findAll(headers, "country", "currency")
			},
			check: func(columns []string, rowIndex int, row quality.Row) *quality.CrossFieldIssue {
				country := normalizeToken(quality.ValueString(row[columns[0]]))
				currency := strings.ToUpper(quality.ValueString(row[columns[1]]))
				expected, known := countryCurrencies[country]
				if !known || currency == "" || currency == expected {
					return nil
				}
				return &quality.CrossFieldIssue{
					Columns:    columns,
					RowIndex:   rowIndex,
					Issue:      fmt.Sprintf("currency %s is inconsistent with country %q", currency, quality.ValueString(row[columns[0]])),
					Suggestion: fmt.Sprintf("expected currency %s", expected),
					Severity:   quality.SeverityMedium,
				}
			},
		},
		{
			name: "country_matches_phone_prefix",
			resolve: func(headers []string) ([]string, bool) {
				return findAll(headers, "country", "phone")
			},
			check: func(columns []string, rowIndex int, row quality.Row) *quality.CrossFieldIssue {
				country := normalizeToken(quality.ValueString(row[columns[0]]))
				phone := quality.ValueString(row[columns[1]])
				prefix, known := countryDialPrefixes[country]
				if !known || phone == "" || !strings.HasPrefix(phone, "+") {
					return nil
				}
				if strings.HasPrefix(normalizePhone(phone), prefix) {
					return nil
				}
				return &quality.CrossFieldIssue{
					Columns:    columns,
					RowIndex:   rowIndex,
					Issue:      fmt.Sprintf("phone number %q does not carry the %s prefix of country %q", phone, prefix, quality.ValueString(row[columns[0]])),
					Suggestion: fmt.Sprintf("international numbers for this country start with %s", prefix),
					Severity:   quality.SeverityMedium,
				}
			},
		},
	}
}

// findHeader returns the first header matching the pattern
func findHeader(headers []string, pattern *regexp.Regexp) string {
	for _, h := range headers {
		if pattern.MatchString(h) {
			return h
		}
	}
	return ""
}

// findAll resolves one header per keyword (word match, case-insensitive) and
// only succeeds when every keyword is present.
func findAll(headers []string, keywords ...string) ([]string, bool) {
	columns := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		pattern := regexp.MustCompile(`(?i)(^|[_\s-])` + regexp.QuoteMeta(kw) + `($|[_\s-])`)
		found := ""
		for _, h := range headers {
			if pattern.MatchString(h) {
				found = h
				break
			}
		}
		if found == "" {
			return nil, false
		}
		columns = append(columns, found)
	}
	return columns, true
}

// normalizePhone strips separators so prefix comparison sees only + and digits
func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
