package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"dataqc/domain/core"
	"dataqc/domain/quality"
	"dataqc/ports"
)

// ruleRepository implements the RuleRepository interface
type ruleRepository struct {
	db *sqlx.DB
}

// NewRuleRepository creates a new custom rule repository
func NewRuleRepository(db *sqlx.DB) ports.RuleRepository {
	return &ruleRepository{db: db}
}

// Migrate creates the custom_rules table if it does not exist
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS custom_rules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		condition TEXT NOT NULL,
		severity TEXT NOT NULL,
		columns TEXT[] NOT NULL DEFAULT '{}',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate custom_rules: %w", err)
	}
	return nil
}

const ruleColumns = `id, name, COALESCE(description, '') as description, condition,
	severity, columns, active, created_at, updated_at`

// List returns every rule, newest first
func (r *ruleRepository) List(ctx context.Context) ([]quality.CustomRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM custom_rules ORDER BY created_at DESC`, ruleColumns)
	return r.queryRules(ctx, query)
}

// ListActive returns only the rules the engine should evaluate
func (r *ruleRepository) ListActive(ctx context.Context) ([]quality.CustomRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM custom_rules WHERE active = TRUE ORDER BY created_at DESC`, ruleColumns)
	return r.queryRules(ctx, query)
}

// Get retrieves one rule by its ID
func (r *ruleRepository) Get(ctx context.Context, id core.RuleID) (*quality.CustomRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM custom_rules WHERE id = $1`, ruleColumns)

	row := r.db.QueryRowContext(ctx, query, id.String())
	rule, err := scanRule(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("custom rule", id.String())
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return rule, nil
}

// Create inserts a new rule
func (r *ruleRepository) Create(ctx context.Context, rule *quality.CustomRule) error {
	query := `INSERT INTO custom_rules (
		id, name, description, condition, severity, columns, active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		rule.ID.String(), rule.Name, rule.Description, rule.Condition,
		string(rule.Severity), pq.Array(rule.Columns), rule.Active,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

// Update rewrites an existing rule
func (r *ruleRepository) Update(ctx context.Context, rule *quality.CustomRule) error {
	query := `UPDATE custom_rules SET
		name = $2, description = $3, condition = $4, severity = $5,
		columns = $6, active = $7, updated_at = $8
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		rule.ID.String(), rule.Name, rule.Description, rule.Condition,
		string(rule.Severity), pq.Array(rule.Columns), rule.Active, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	return checkAffected(result, rule.ID)
}

// Delete removes a rule
func (r *ruleRepository) Delete(ctx context.Context, id core.RuleID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM custom_rules WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return checkAffected(result, id)
}

// SetActive flips a rule's active flag
func (r *ruleRepository) SetActive(ctx context.Context, id core.RuleID, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE custom_rules SET active = $2, updated_at = NOW() WHERE id = $1`,
		id.String(), active,
	)
	if err != nil {
		return fmt.Errorf("failed to toggle rule: %w", err)
	}
	return checkAffected(result, id)
}

func (r *ruleRepository) queryRules(ctx context.Context, query string, args ...interface{}) ([]quality.CustomRule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var rules []quality.CustomRule
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return rules, nil
}

func scanRule(scan func(dest ...interface{}) error) (*quality.CustomRule, error) {
	var rule quality.CustomRule
	var id, severity string
	var columns pq.StringArray

	err := scan(
		&id, &rule.Name, &rule.Description, &rule.Condition,
		&severity, &columns, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rule.ID = core.RuleID(id)
	rule.Severity = quality.Severity(severity)
	rule.Columns = []string(columns)
	return &rule, nil
}

func checkAffected(result sql.Result, id core.RuleID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("custom rule", id.String())
	}
	return nil
}
