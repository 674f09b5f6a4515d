package usecases

import (
	"context"
	"fmt"
	"strings"

	"tracker/internal/domain/user"
	"tracker/internal/shared/authorization"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

// ProvisionUser is one directory entry. An empty Password keeps the stored
// hash of an existing user.
type ProvisionUser struct {
	Username string `yaml:"username"`
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

type ProvisionResult struct {
	Created int
	Updated int
}

// ProvisionUsersUseCase creates or updates users by username in one transaction.
type ProvisionUsersUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	txMgr    TxRunner
	clock    biztime.Clock
	logger   logger.Interface
}

func NewProvisionUsersUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	txMgr TxRunner,
	clock biztime.Clock,
	logger logger.Interface,
) *ProvisionUsersUseCase {
	return &ProvisionUsersUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		txMgr:    txMgr,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *ProvisionUsersUseCase) Execute(ctx context.Context, entries []ProvisionUser) (*ProvisionResult, error) {
	result := &ProvisionResult{}

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		for i, e := range entries {
			created, err := uc.provision(txCtx, e)
			if err != nil {
				return fmt.Errorf("user %d (%s): %w", i+1, e.Username, err)
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to provision users", "error", err)
		return nil, err
	}

	uc.logger.Infow("users provisioned", "created", result.Created, "updated", result.Updated)
	return result, nil
}

func (uc *ProvisionUsersUseCase) provision(ctx context.Context, e ProvisionUser) (bool, error) {
	now := uc.clock.Now()
	role := authorization.UserRole(strings.ToLower(strings.TrimSpace(e.Role)))
	if role == "" {
		role = authorization.RoleTechnician
	}

	existing, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(e.Username))
	if err != nil && !errors.IsNotFoundError(err) {
		return false, err
	}

	if existing == nil {
		if e.Password == "" {
			return false, errors.NewValidationError("Password is required for a new user")
		}
		hash, err := uc.hasher.Hash(e.Password)
		if err != nil {
			return false, err
		}
		u, err := user.NewUser(e.Username, e.FullName, e.Email, role, hash, now)
		if err != nil {
			return false, err
		}
		return true, uc.userRepo.Create(ctx, u)
	}

	if err := existing.UpdateProfile(e.FullName, e.Email, now); err != nil {
		return false, err
	}
	if err := existing.ChangeRole(role, now); err != nil {
		return false, err
	}
	if e.Password != "" {
		hash, err := uc.hasher.Hash(e.Password)
		if err != nil {
			return false, err
		}
		if err := existing.ChangePassword(hash, now); err != nil {
			return false, err
		}
	}
	return false, uc.userRepo.Update(ctx, existing)
}
