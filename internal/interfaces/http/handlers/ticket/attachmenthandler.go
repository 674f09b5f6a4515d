package ticket

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/interfaces/http/handlers/common"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/utils"
)

const uploadFormField = "file"

type AttachmentHandler struct {
	uploadUC usecases.UploadAttachmentExecutor
	getUC    usecases.GetAttachmentExecutor
	maxBytes int64
	logger   logger.Interface
}

// NewAttachmentHandler reads at most maxBytes+1 of an upload so the use case
// can still reject oversize files with its own message.
func NewAttachmentHandler(
	uploadUC usecases.UploadAttachmentExecutor,
	getUC usecases.GetAttachmentExecutor,
	maxBytes int64,
	logger logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC: uploadUC,
		getUC:    getUC,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Upload handles POST /tickets/:id/attachments (multipart field "file")
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	file, header, err := c.Request.FormFile(uploadFormField)
	if err != nil {
		h.logger.Warnw("failed to get uploaded file", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("No file selected"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		h.logger.Errorw("failed to read uploaded file", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Could not read uploaded file"))
		return
	}

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadAttachmentCommand{
		Actor:    actor,
		TicketID: ticketID,
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "File uploaded successfully")
}

// Download handles GET /attachments/:name
func (h *AttachmentHandler) Download(c *gin.Context) {
	content, err := h.getUC.Execute(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": content.OriginalName})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", content.StoredName)
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, mimetype.Detect(content.Data).String(), content.Data)
}
