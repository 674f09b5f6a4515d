// Package common holds helpers shared by the HTTP handlers.
package common

import (
	"github.com/gin-gonic/gin"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/shared/authorization"
	"tracker/internal/shared/constants"
	"tracker/internal/shared/errors"
)

// CurrentActor returns the identity the auth middleware stored on c.
func CurrentActor(c *gin.Context) (usecases.Actor, error) {
	id := c.GetUint(constants.ContextKeyUserID)
	if id == 0 {
		return usecases.Actor{}, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	role, _ := c.Get(constants.ContextKeyUserRole)
	actorRole, ok := role.(authorization.UserRole)
	if !ok {
		actorRole = authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	}

	return usecases.Actor{
		ID:   id,
		Name: c.GetString(constants.ContextKeyUserName),
		Role: actorRole,
	}, nil
}
