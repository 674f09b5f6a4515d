package permission

import (
	"tracker/internal/application/ticket/usecases"
	"tracker/internal/shared/authorization"
	"tracker/internal/shared/logger"
)

// SeedDefaultPolicies grants every role every ticket capability. Rows that
// already exist are kept. A removed row comes back on the next seed, so
// deployments that edit the policy turn permission.seed_defaults off.
func SeedDefaultPolicies(e *Enforcer, log logger.Interface) error {
	roles := []authorization.UserRole{authorization.RoleAdmin, authorization.RoleTechnician}

	for _, role := range roles {
		for _, capability := range usecases.AllCapabilities {
			if err := e.AddPolicy(role.String(), capability); err != nil {
				return err
			}
		}
	}

	log.Infow("default ticket permissions seeded", "roles", len(roles), "capabilities", len(usecases.AllCapabilities))
	return nil
}
