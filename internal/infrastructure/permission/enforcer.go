// Package permission decides ticket capabilities with a casbin role policy
// stored in the application database.
package permission

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

// policyModel grants (role, object, action) triples; a user's role is the subject.
const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var _ usecases.CapabilityChecker = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// splitCapability turns "ticket:update" into ("ticket", "update").
func splitCapability(c usecases.Capability) (string, string) {
	obj, act, ok := strings.Cut(c.String(), ":")
	if !ok {
		return c.String(), ""
	}
	return obj, act
}

// Check returns a ForbiddenError when the actor's role lacks capability.
func (e *Enforcer) Check(_ context.Context, actor usecases.Actor, capability usecases.Capability) error {
	obj, act := splitCapability(capability)

	e.mu.RLock()
	allowed, err := e.enforcer.Enforce(actor.Role.String(), obj, act)
	e.mu.RUnlock()

	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "user_id", actor.ID, "capability", capability)
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		e.logger.Warnw("capability denied", "user_id", actor.ID, "role", actor.Role, "capability", capability)
		return errors.NewForbiddenError("You are not allowed to perform this action", capability.String())
	}
	return nil
}

func (e *Enforcer) AddPolicy(role string, capability usecases.Capability) error {
	obj, act := splitCapability(capability)

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, obj, act); err != nil {
		e.logger.Errorw("failed to add policy", "error", err, "role", role, "capability", capability)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}

func (e *Enforcer) RemovePolicy(role string, capability usecases.Capability) error {
	obj, act := splitCapability(capability)

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemovePolicy(role, obj, act); err != nil {
		e.logger.Errorw("failed to remove policy", "error", err, "role", role, "capability", capability)
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	return nil
}

// LoadPolicy re-reads the stored policy, picking up edits made by operators.
func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
