package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByIDs returns the users found; missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	// List returns every user ordered by full name.
	List(ctx context.Context) ([]*User, error)
}
