package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/interfaces/http/handlers/common"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/utils"
)

type DashboardHandler struct {
	getDashboardUC usecases.GetDashboardExecutor
	logger         logger.Interface
}

func NewDashboardHandler(getDashboardUC usecases.GetDashboardExecutor, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		getDashboardUC: getDashboardUC,
		logger:         logger,
	}
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getDashboardUC.Execute(c.Request.Context(), actor)
	if err != nil {
		h.logger.Errorw("failed to build dashboard", "user_id", actor.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
