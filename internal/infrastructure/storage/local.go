package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

// LocalStore writes blobs as flat files in one directory.
type LocalStore struct {
	dir    string
	logger logger.Interface
}

func NewLocalStore(dir string, log logger.Interface) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, logger: log}, nil
}

func (s *LocalStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := newStoredName(ext)
	if err != nil {
		return "", err
	}

	// O_EXCL so a name collision fails instead of overwriting
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Debugw("blob stored", "stored_name", name, "size", len(data))
	return name, nil
}

func (s *LocalStore) Read(ctx context.Context, storedName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkStoredName(storedName); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, storedName))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("Attachment not found")
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}
