package analysis

import (
	"fmt"
	"strings"

	"dataqc/domain/quality"
)

// RuleEvaluator evaluates user-authored conditions against every row. The
// condition grammar is deliberately small: a column reference, a comparison
// operator, and a literal, optionally chained with AND/OR:
//
//	age >= 0
//	age >= 18 AND country == "US"
//
// AND and OR share one precedence level and evaluate left to right; there are
// no parentheses. Rows for which the condition evaluates false are affected.
// A rule whose condition fails to parse is skipped with a warning, never a
// fatal failure of the whole analysis.
type RuleEvaluator struct{}

// NewRuleEvaluator creates a new rule evaluator
func NewRuleEvaluator() *RuleEvaluator {
	return &RuleEvaluator{}
}

type comparisonOp string

const (
	opLT comparisonOp = "<"
	opLE comparisonOp = "<="
	opGT comparisonOp = ">"
	opGE comparisonOp = ">="
	opEQ comparisonOp = "=="
	opNE comparisonOp = "!="
)

type logicalOp string

const (
	logicAnd logicalOp = "AND"
	logicOr  logicalOp = "OR"
)

// clause is one "column op literal" comparison
type clause struct {
	column  string
	op      comparisonOp
	literal string
}

// condition is a parsed rule expression: clauses joined by logical operators
type condition struct {
	clauses []clause
	joins   []logicalOp // len(joins) == len(clauses)-1
}

// Evaluate runs every active rule over the dataset, producing one
// ValidationResult per rule. Custom rules never generate fixes.
func (e *RuleEvaluator) Evaluate(rules []quality.CustomRule, ds quality.Dataset) ([]quality.ValidationResult, []quality.Warning) {
	var results []quality.ValidationResult
	var warnings []quality.Warning

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		cond, err := parseCondition(rule.Condition)
		if err != nil {
			warnings = append(warnings, quality.Warning{
				Code:    quality.WarnMalformedRule,
				Message: fmt.Sprintf("rule %q skipped: %v", rule.Name, err),
			})
			continue
		}

		affected := make([]int, 0)
		for rowIndex, row := range ds.Rows {
			if !cond.eval(row) {
				affected = append(affected, rowIndex)
			}
		}

		description := rule.Description
		if description == "" {
			description = fmt.Sprintf("%d rows violate condition %q", len(affected), rule.Condition)
		}
		results = append(results, quality.ValidationResult{
			RuleID:       rule.ID.String(),
			RuleName:     rule.Name,
			Severity:     rule.Severity,
			AffectedRows: affected,
			Description:  description,
			Suggestion:   fmt.Sprintf("review rows where %q does not hold", rule.Condition),
			CanAutoFix:   false,
		})
	}
	return results, warnings
}

// parseCondition parses the rule grammar into a condition
func parseCondition(expr string) (*condition, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty condition")
	}

	cond := &condition{}
	i := 0
	for {
		if len(tokens)-i < 3 {
			return nil, fmt.Errorf("incomplete clause at %q", strings.Join(tokens[i:], " "))
		}
		op, ok := parseOperator(tokens[i+1])
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", tokens[i+1])
		}
		cond.clauses = append(cond.clauses, clause{
			column:  tokens[i],
			op:      op,
			literal: tokens[i+2],
		})
		i += 3

		if i == len(tokens) {
			return cond, nil
		}
		switch strings.ToUpper(tokens[i]) {
		case string(logicAnd):
			cond.joins = append(cond.joins, logicAnd)
		case string(logicOr):
			cond.joins = append(cond.joins, logicOr)
		default:
			return nil, fmt.Errorf("expected AND or OR, got %q", tokens[i])
		}
		i++
	}
}

// tokenize splits an expression on whitespace, keeping quoted literals whole
// and splitting operators glued to their operands (age>=0).
func tokenize(expr string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuote := false
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(expr)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote:
			if r == quote {
				inQuote = false
				flush()
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			flush()
			inQuote = true
			quote = r
			// An empty quoted literal still counts as a token
			if i+1 < len(runes) && runes[i+1] == quote {
				tokens = append(tokens, "")
				inQuote = false
				i++
			}
		case r == ' ' || r == '\t':
			flush()
		case r == '<' || r == '>' || r == '=' || r == '!':
			flush()
			op := string(r)
			if i+1 < len(runes) && runes[i+1] == '=' {
				op += "="
				i++
			}
			tokens = append(tokens, op)
		default:
			current.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated string literal")
	}
	flush()
	return tokens, nil
}

func parseOperator(s string) (comparisonOp, bool) {
	switch comparisonOp(s) {
	case opLT, opLE, opGT, opGE, opEQ, opNE:
		return comparisonOp(s), true
	default:
		return "", false
	}
}

// eval evaluates the condition against one row, left to right
func (c *condition) eval(row quality.Row) bool {
	result := c.clauses[0].eval(row)
	for i, join := range c.joins {
		next := c.clauses[i+1].eval(row)
		if join == logicAnd {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result
}

// eval compares the row's cell against the literal. Both sides are compared
// numerically when both parse as numbers, otherwise as trimmed strings. A
// null cell satisfies no comparison.
func (cl *clause) eval(row quality.Row) bool {
	value, present := row[cl.column]
	if !present || quality.IsNull(value) {
		return false
	}

	left := quality.ValueString(value)
	if lf, lok := asFloat(value); lok {
		if rf, rok := parseNumber(cl.literal); rok {
			return compareFloats(lf, cl.op, rf)
		}
	}
	return compareStrings(left, cl.op, strings.TrimSpace(cl.literal))
}

func compareFloats(left float64, op comparisonOp, right float64) bool {
	switch op {
	case opLT:
		return left < right
	case opLE:
		return left <= right
	case opGT:
		return left > right
	case opGE:
		return left >= right
	case opEQ:
		return left == right
	case opNE:
		return left != right
	}
	return false
}

func compareStrings(left string, op comparisonOp, right string) bool {
	switch op {
	case opLT:
		return left < right
	case opLE:
		return left <= right
	case opGT:
		return left > right
	case opGE:
		return left >= right
	case opEQ:
		return left == right
	case opNE:
		return left != right
	}
	return false
}
