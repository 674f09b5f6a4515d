// Package storage keeps attachment bytes on local disk or in an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/shared/config"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

var (
	extPattern        = regexp.MustCompile(`^[a-z0-9]{1,16}$`)
	storedNamePattern = regexp.MustCompile(`^[0-9a-f]{32}\.[a-z0-9]{1,16}$`)
)

// newStoredName returns 32 hex characters of a random UUID plus "."+ext.
func newStoredName(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if !extPattern.MatchString(ext) {
		return "", fmt.Errorf("invalid extension %q", ext)
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate blob name: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", "") + "." + ext, nil
}

// checkStoredName rejects anything that could not have come from newStoredName,
// path separators included.
func checkStoredName(name string) error {
	if !storedNamePattern.MatchString(name) {
		return errors.NewNotFoundError("Attachment not found")
	}
	return nil
}

// New builds the blob store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, log logger.Interface) (usecases.BlobStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", config.StorageBackendLocal:
		return NewLocalStore(cfg.LocalDir, log)
	case config.StorageBackendS3:
		return NewS3Store(ctx, cfg.S3, log)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
