package mappers

import (
	"tracker/internal/domain/user"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/authorization"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		PasswordHash: u.PasswordHash(),
		FullName:     u.FullName(),
		Email:        u.Email(),
		Role:         u.Role().String(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func UserToDomain(m *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		m.ID,
		m.Username,
		m.FullName,
		m.Email,
		authorization.UserRole(m.Role),
		m.PasswordHash,
		MillisToTime(m.CreatedAt),
		MillisToTime(m.UpdatedAt),
	)
}
