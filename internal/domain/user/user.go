// Package user models the actors who create and work tickets.
package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tracker/internal/shared/authorization"
	"tracker/internal/shared/errors"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{2,64}$`)

type User struct {
	id           uint
	username     string
	fullName     string
	email        string
	role         authorization.UserRole
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, fullName, email string, role authorization.UserRole, passwordHash string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, errors.NewValidationError("Invalid username", username)
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, errors.NewValidationError("Full name is required")
	}
	if !role.IsValid() {
		return nil, errors.NewValidationError("Invalid role", role.String())
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	return &User{
		username:     username,
		fullName:     fullName,
		email:        strings.TrimSpace(email),
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(id uint, username, fullName, email string, role authorization.UserRole, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:           id,
		username:     username,
		fullName:     fullName,
		email:        email,
		role:         authorization.ParseUserRole(string(role)),
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Username() string             { return u.username }
func (u *User) FullName() string             { return u.fullName }
func (u *User) Email() string                { return u.email }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// DisplayName is the name written into audit entries.
func (u *User) DisplayName() string {
	if u.fullName != "" {
		return u.fullName
	}
	return u.username
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	u.id = id
	return nil
}

// ChangeRole is applied by re-provisioning; the role is informational only.
func (u *User) ChangeRole(role authorization.UserRole, now time.Time) error {
	if !role.IsValid() {
		return errors.NewValidationError("Invalid role", role.String())
	}
	u.role = role
	u.updatedAt = now
	return nil
}

func (u *User) ChangePassword(passwordHash string, now time.Time) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = now
	return nil
}

// UpdateProfile replaces the display details.
func (u *User) UpdateProfile(fullName, email string, now time.Time) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errors.NewValidationError("Full name is required")
	}
	u.fullName = fullName
	u.email = strings.TrimSpace(email)
	u.updatedAt = now
	return nil
}
