package routes

import (
	"github.com/gin-gonic/gin"

	"tracker/internal/interfaces/http/handlers"
	"tracker/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter // nil when Redis is disabled
}

func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	login := []gin.HandlerFunc{}
	if cfg.RateLimiter != nil {
		login = append(login, cfg.RateLimiter.Limit())
	}
	login = append(login, cfg.AuthHandler.Login)

	auth := engine.Group("/auth")
	{
		auth.POST("/login", login...)
	}
}
