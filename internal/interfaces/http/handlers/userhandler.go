package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	userdto "tracker/internal/application/user/dto"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/utils"
)

type ListUsersExecutor interface {
	Execute(ctx context.Context) ([]userdto.UserDTO, error)
}

type UserHandler struct {
	listUsersUC ListUsersExecutor
	logger      logger.Interface
}

func NewUserHandler(listUsersUC ListUsersExecutor, logger logger.Interface) *UserHandler {
	return &UserHandler{
		listUsersUC: listUsersUC,
		logger:      logger,
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUsersUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, users, len(users))
}
