package ticket

import (
	"fmt"
	"strings"
	"time"

	"tracker/internal/shared/errors"
)

// Attachment is the metadata of an uploaded file. The bytes live in a blob
// store under StoredName.
type Attachment struct {
	id           uint
	ticketID     uint
	storedName   string
	originalName string
	uploaderID   uint
	uploadedAt   time.Time
}

func NewAttachment(ticketID, uploaderID uint, storedName, originalName string, now time.Time) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, errors.NewValidationError("Uploader is required")
	}
	if strings.TrimSpace(storedName) == "" {
		return nil, errors.NewValidationError("Stored name is required")
	}
	if strings.TrimSpace(originalName) == "" {
		return nil, errors.NewValidationError("Original filename is required")
	}

	return &Attachment{
		ticketID:     ticketID,
		storedName:   storedName,
		originalName: originalName,
		uploaderID:   uploaderID,
		uploadedAt:   now,
	}, nil
}

func ReconstructAttachment(id, ticketID, uploaderID uint, storedName, originalName string, uploadedAt time.Time) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	return &Attachment{
		id:           id,
		ticketID:     ticketID,
		storedName:   storedName,
		originalName: originalName,
		uploaderID:   uploaderID,
		uploadedAt:   uploadedAt,
	}, nil
}

func (a *Attachment) ID() uint              { return a.id }
func (a *Attachment) TicketID() uint        { return a.ticketID }
func (a *Attachment) StoredName() string    { return a.storedName }
func (a *Attachment) OriginalName() string  { return a.originalName }
func (a *Attachment) UploaderID() uint      { return a.uploaderID }
func (a *Attachment) UploadedAt() time.Time { return a.uploadedAt }

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	a.id = id
	return nil
}
