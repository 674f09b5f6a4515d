package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tracker/internal/shared/utils"
	"tracker/internal/shared/version"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "ok",
		"version": version.Current(),
	})
}
