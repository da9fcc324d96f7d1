package testkit

import (
	"context"
	"sort"
	"sync"

	"dataqc/domain/core"
	"dataqc/domain/quality"
	"dataqc/ports"
)

// InMemoryRuleRepository is a RuleRepository backed by a map. It serves tests
// and the DB-less server mode.
type InMemoryRuleRepository struct {
	mu    sync.RWMutex
	rules map[core.RuleID]quality.CustomRule
}

// NewInMemoryRuleRepository creates an empty in-memory rule store
func NewInMemoryRuleRepository() *InMemoryRuleRepository {
	return &InMemoryRuleRepository{rules: make(map[core.RuleID]quality.CustomRule)}
}

var _ ports.RuleRepository = (*InMemoryRuleRepository)(nil)

// List returns every rule, newest first
func (r *InMemoryRuleRepository) List(ctx context.Context) ([]quality.CustomRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(quality.CustomRule) bool { return true }), nil
}

// ListActive returns only active rules, newest first
func (r *InMemoryRuleRepository) ListActive(ctx context.Context) ([]quality.CustomRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(rule quality.CustomRule) bool { return rule.Active }), nil
}

// Get retrieves one rule by ID
func (r *InMemoryRuleRepository) Get(ctx context.Context, id core.RuleID) (*quality.CustomRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil, core.NewNotFoundError("custom rule", id.String())
	}
	copied := rule
	return &copied, nil
}

// Create stores a new rule
func (r *InMemoryRuleRepository) Create(ctx context.Context, rule *quality.CustomRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = *rule
	return nil
}

// Update rewrites an existing rule
func (r *InMemoryRuleRepository) Update(ctx context.Context, rule *quality.CustomRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rule.ID]; !ok {
		return core.NewNotFoundError("custom rule", rule.ID.String())
	}
	r.rules[rule.ID] = *rule
	return nil
}

// Delete removes a rule
func (r *InMemoryRuleRepository) Delete(ctx context.Context, id core.RuleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[id]; !ok {
		return core.NewNotFoundError("custom rule", id.String())
	}
	delete(r.rules, id)
	return nil
}

// SetActive flips a rule's active flag
func (r *InMemoryRuleRepository) SetActive(ctx context.Context, id core.RuleID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[id]
	if !ok {
		return core.NewNotFoundError("custom rule", id.String())
	}
	rule.Active = active
	r.rules[id] = rule
	return nil
}

// collect snapshots matching rules sorted newest first, ID as tiebreak so
// listings stay deterministic
func (r *InMemoryRuleRepository) collect(match func(quality.CustomRule) bool) []quality.CustomRule {
	var rules []quality.CustomRule
	for _, rule := range r.rules {
		if match(rule) {
			rules = append(rules, rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.After(rules[j].CreatedAt)
		}
		return rules[i].ID < rules[j].ID
	})
	return rules
}
