package handlers

import (
	"github.com/gin-gonic/gin"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/utils"
)

// AuditRequest dates are YYYY-MM-DD; the end date includes the whole day.
type AuditRequest struct {
	TicketNumber string `form:"ticket_number"`
	StartDate    string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Limit        int    `form:"limit" validate:"omitempty,min=1,max=5000"`
}

type AuditHandler struct {
	listActivityUC usecases.ListActivityExecutor
	logger         logger.Interface
}

func NewAuditHandler(listActivityUC usecases.ListActivityExecutor, logger logger.Interface) *AuditHandler {
	return &AuditHandler{
		listActivityUC: listActivityUC,
		logger:         logger,
	}
}

// ListActivity handles GET /audit
func (h *AuditHandler) ListActivity(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid query parameters", err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	entries, err := h.listActivityUC.Execute(c.Request.Context(), usecases.ListActivityQuery{
		TicketNumber: req.TicketNumber,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Limit:        req.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, entries, len(entries))
}
