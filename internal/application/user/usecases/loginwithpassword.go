package usecases

import (
	"context"
	"strings"

	"tracker/internal/application/user/dto"
	"tracker/internal/domain/user"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

const invalidCredentials = "Invalid username or password"

type LoginWithPasswordCommand struct {
	Username string
	Password string
}

type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("Username and password are required")
	}

	existingUser, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			// same answer as a wrong password
			return nil, errors.NewUnauthorizedError(invalidCredentials)
		}
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, err
	}

	if err := uc.passwordHasher.Verify(cmd.Password, existingUser.PasswordHash()); err != nil {
		uc.logger.Warnw("login failed", "username", username)
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}

	token, expiresIn, err := uc.tokens.Issue(existingUser.ID(), existingUser.DisplayName(), existingUser.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", existingUser.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user logged in successfully", "user_id", existingUser.ID())

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.ToUserDTO(existingUser),
	}, nil
}
