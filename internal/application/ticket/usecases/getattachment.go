package usecases

import (
	"context"
	"fmt"

	"tracker/internal/domain/ticket"
	"tracker/internal/shared/logger"
)

// AttachmentContent is a stored blob together with the name it was uploaded as.
type AttachmentContent struct {
	StoredName   string
	OriginalName string
	Data         []byte
}

type GetAttachmentUseCase struct {
	attachmentRepo ticket.AttachmentRepository
	blobs          BlobStore
	logger         logger.Interface
}

func NewGetAttachmentUseCase(attachmentRepo ticket.AttachmentRepository, blobs BlobStore, logger logger.Interface) *GetAttachmentUseCase {
	return &GetAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		blobs:          blobs,
		logger:         logger,
	}
}

// Execute only serves names that have attachment metadata.
func (uc *GetAttachmentUseCase) Execute(ctx context.Context, storedName string) (*AttachmentContent, error) {
	a, err := uc.attachmentRepo.GetByStoredName(ctx, storedName)
	if err != nil {
		return nil, err
	}

	data, err := uc.blobs.Read(ctx, a.StoredName())
	if err != nil {
		uc.logger.Errorw("failed to read attachment blob", "stored_name", storedName, "error", err)
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return &AttachmentContent{
		StoredName:   a.StoredName(),
		OriginalName: a.OriginalName(),
		Data:         data,
	}, nil
}
