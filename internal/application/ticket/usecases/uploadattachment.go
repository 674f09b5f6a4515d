package usecases

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/ticket"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// UploadPolicy is the file check applied before anything is stored.
type UploadPolicy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

// Allows reports whether ext (without the dot, any case) is on the allow-list.
func (p UploadPolicy) Allows(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range p.AllowedExtensions {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}

type UploadAttachmentCommand struct {
	Actor    Actor
	TicketID uint
	Filename string
	Data     []byte
}

// UploadAttachmentUseCase validates an upload, writes the blob and then
// records the metadata. A failure after the blob write leaves an orphaned
// blob; metadata never points at a missing blob.
type UploadAttachmentUseCase struct {
	ticketRepo ticket.TicketRepository
	blobs      BlobStore
	attach     *AddAttachmentUseCase
	checker    CapabilityChecker
	policy     UploadPolicy
	logger     logger.Interface
}

func NewUploadAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	blobs BlobStore,
	attach *AddAttachmentUseCase,
	checker CapabilityChecker,
	policy UploadPolicy,
	logger logger.Interface,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		ticketRepo: ticketRepo,
		blobs:      blobs,
		attach:     attach,
		checker:    checker,
		policy:     policy,
		logger:     logger,
	}
}

func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error) {
	uc.logger.Infow("executing upload attachment use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.Actor.ID,
		"filename", cmd.Filename,
		"size", len(cmd.Data),
	)

	if err := uc.checker.Check(ctx, cmd.Actor, CapabilityAttach); err != nil {
		return nil, err
	}

	originalName, ext, err := uc.validate(cmd)
	if err != nil {
		uc.logger.Warnw("upload rejected", "ticket_id", cmd.TicketID, "filename", cmd.Filename, "error", err)
		return nil, err
	}

	// no blob for a ticket that does not exist
	if _, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID); err != nil {
		return nil, err
	}

	storedName, err := uc.blobs.Save(ctx, cmd.Data, ext)
	if err != nil {
		uc.logger.Errorw("failed to store attachment blob", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	out, err := uc.attach.Execute(ctx, AddAttachmentCommand{
		Actor:        cmd.Actor,
		TicketID:     cmd.TicketID,
		StoredName:   storedName,
		OriginalName: originalName,
	})
	if err != nil {
		uc.logger.Warnw("attachment metadata not recorded, blob orphaned",
			"ticket_id", cmd.TicketID,
			"stored_name", storedName,
			"error", err,
		)
		return nil, err
	}
	return out, nil
}

func (uc *UploadAttachmentUseCase) validate(cmd UploadAttachmentCommand) (string, string, error) {
	// a zero-byte file is still a file
	if strings.TrimSpace(cmd.Filename) == "" {
		return "", "", errors.NewValidationError("No file selected")
	}
	if uc.policy.MaxBytes > 0 && int64(len(cmd.Data)) > uc.policy.MaxBytes {
		return "", "", errors.NewValidationError(fmt.Sprintf("File exceeds maximum size of %d bytes", uc.policy.MaxBytes))
	}

	name := SanitizeFilename(cmd.Filename)
	dot := strings.LastIndex(name, ".")
	if dot < 0 || dot == len(name)-1 {
		return "", "", errors.NewValidationError("File type not allowed", cmd.Filename)
	}
	ext := strings.ToLower(name[dot+1:])
	if !uc.policy.Allows(ext) {
		return "", "", errors.NewValidationError("File type not allowed", ext)
	}
	return name, ext, nil
}

// SanitizeFilename reduces a client-supplied name to a safe ASCII base name:
// directories are dropped, accents are folded, whitespace becomes '_', and
// anything outside [A-Za-z0-9_.-] is removed.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	folded := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range folded {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}

	name = strings.Join(strings.Fields(b.String()), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}
