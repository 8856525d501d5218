package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	vo "github.com/procureflow/procureflow/internal/domain/ticket/valueobjects"
	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// Requests are (role, stage, decision).
const transitionModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// DefaultTransitionRules: non-manager reviewers screen submissions,
// managers give the final approval.
func DefaultTransitionRules() [][]string {
	review := string(vo.StatusForReviewOfSubmissions)
	approval := string(vo.StatusForApproval)

	var rules [][]string
	for _, role := range []user.Role{user.RolePurchaser, user.RoleReviewer, user.RoleAdmin} {
		rules = append(rules,
			[]string{role.String(), review, vo.ApprovalApproved.String()},
			[]string{role.String(), review, vo.ApprovalNeedsRevision.String()},
		)
	}
	rules = append(rules,
		[]string{user.RoleManager.String(), approval, vo.ApprovalApproved.String()},
		[]string{user.RoleManager.String(), approval, vo.ApprovalDeclined.String()},
	)
	return rules
}

// TransitionPolicy decides which role may record which decision at which
// ticket stage.
type TransitionPolicy struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewTransitionPolicy stores rules in casbin_rule when db is set, and keeps
// them in memory otherwise.
func NewTransitionPolicy(db *gorm.DB, log logger.Interface) (*TransitionPolicy, error) {
	m, err := model.NewModelFromString(transitionModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	return &TransitionPolicy{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// SeedDefaults adds any default rule that is missing. Existing rules,
// including custom ones, are left untouched.
func (p *TransitionPolicy) SeedDefaults() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	added := 0
	for _, rule := range DefaultTransitionRules() {
		ok, err := p.enforcer.AddPolicy(rule[0], rule[1], rule[2])
		if err != nil {
			p.logger.Errorw("failed to add transition rule",
				"error", err,
				"role", rule[0],
				"stage", rule[1],
				"decision", rule[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", rule[0], rule[1], rule[2], err)
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		p.logger.Infow("transition policy seeded", "rules_added", added)
	}
	return nil
}

func (p *TransitionPolicy) CanDecide(role user.Role, stage vo.TicketStatus, decision vo.ApprovalStatus) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	allowed, err := p.enforcer.Enforce(role.String(), stage.String(), decision.String())
	if err != nil {
		p.logger.Errorw("transition policy check failed",
			"error", err,
			"role", role,
			"stage", stage,
			"decision", decision)
		return false, fmt.Errorf("transition policy check failed: %w", err)
	}
	return allowed, nil
}

// Reload re-reads rules from the database after an out-of-band change.
func (p *TransitionPolicy) Reload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}
	p.logger.Info("transition policy reloaded")
	return nil
}
