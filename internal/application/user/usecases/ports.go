package usecases

import (
	"context"

	"tracker/internal/shared/authorization"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer signs access tokens. The second return value is the lifetime in seconds.
type TokenIssuer interface {
	Issue(userID uint, name string, role authorization.UserRole) (string, int64, error)
}

type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
