package quality

import (
	"fmt"
	"strings"
	"time"

	"dataqc/domain/core"
)

// CustomRule is a user-authored condition evaluated per row to extend the
// built-in validators. Rules are persisted by an external store and evaluated
// fresh on every analysis run; the engine never mutates them.
type CustomRule struct {
	ID          core.RuleID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Condition   string      `json:"condition"`
	Severity    Severity    `json:"severity"`
	Columns     []string    `json:"columns"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewCustomRule creates an active rule with defaults filled in
func NewCustomRule(name, condition string, severity Severity) *CustomRule {
	if !severity.IsValid() {
		severity = SeverityMedium
	}
	return &CustomRule{
		ID:        core.RuleID(core.NewID()),
		Name:      name,
		Condition: condition,
		Severity:  severity,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Validate checks the rule is structurally usable before persistence
func (r *CustomRule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule name is required")
	}
	if strings.TrimSpace(r.Condition) == "" {
		return fmt.Errorf("rule condition is required")
	}
	if !r.Severity.IsValid() {
		return fmt.Errorf("invalid severity %q", r.Severity)
	}
	return nil
}

// Toggle flips the active flag
func (r *CustomRule) Toggle() {
	r.Active = !r.Active
	r.UpdatedAt = time.Now()
}

// ActiveRules filters a rule list down to the active entries, preserving order
func ActiveRules(rules []CustomRule) []CustomRule {
	var active []CustomRule
	for _, r := range rules {
		if r.Active {
			active = append(active, r)
		}
	}
	return active
}
