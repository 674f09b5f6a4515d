package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	userdto "tracker/internal/application/user/dto"
	"tracker/internal/application/user/usecases"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/utils"
)

type LoginExecutor interface {
	Execute(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*userdto.LoginResponse, error)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	loginUseCase LoginExecutor
	logger       logger.Interface
}

func NewAuthHandler(loginUseCase LoginExecutor, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUseCase,
		logger:       logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Username and password are required", err.Error()))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginWithPasswordCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnw("login failed", "username", req.Username, "client_ip", c.ClientIP(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged in successfully", result)
}
