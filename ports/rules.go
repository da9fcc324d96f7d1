package ports

import (
	"context"

	"dataqc/domain/core"
	"dataqc/domain/quality"
)

// RuleRepository persists user-defined custom rules. The engine itself never
// touches storage; it receives the active rules on every analysis call.
type RuleRepository interface {
	List(ctx context.Context) ([]quality.CustomRule, error)
	ListActive(ctx context.Context) ([]quality.CustomRule, error)
	Get(ctx context.Context, id core.RuleID) (*quality.CustomRule, error)
	Create(ctx context.Context, rule *quality.CustomRule) error
	Update(ctx context.Context, rule *quality.CustomRule) error
	Delete(ctx context.Context, id core.RuleID) error
	SetActive(ctx context.Context, id core.RuleID, active bool) error
}
