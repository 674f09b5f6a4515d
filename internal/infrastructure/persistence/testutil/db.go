// Package testutil opens throwaway SQLite databases for integration tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tracker/internal/domain/user"
	"tracker/internal/infrastructure/database"
	"tracker/internal/infrastructure/persistence/mappers"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/authorization"
	"tracker/internal/shared/config"
	"tracker/internal/shared/logger"
)

// NewTestDB opens a file-backed SQLite database under t.TempDir with the
// full schema. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "tracker.db"),
	}, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// SeedUser inserts a technician with password "secret" and returns it.
func SeedUser(t *testing.T, db *gorm.DB, username, fullName string) *user.User {
	t.Helper()
	return SeedUserWithRole(t, db, username, fullName, authorization.RoleTechnician)
}

func SeedUserWithRole(t *testing.T, db *gorm.DB, username, fullName string, role authorization.UserRole) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := user.NewUser(username, fullName, username+"@example.com", role, string(hash), time.Now().UTC())
	require.NoError(t, err)

	model := mappers.UserToModel(u)
	require.NoError(t, db.WithContext(context.Background()).Create(model).Error)
	require.NoError(t, u.SetID(model.ID))
	return u
}
