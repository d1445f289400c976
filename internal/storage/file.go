package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/spice-ledger/internal/codec"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/google/uuid"
)

// FileStore keeps the ledger in a text file, one encoded record per line.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the file at path. The file need not exist.
func NewFileStore(path string) (*FileStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the store file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads every record from the store file. A missing file is an empty ledger.
func (s *FileStore) Load(ctx context.Context) (*codec.ReadResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &codec.ReadResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", common.ErrStoreUnavailable, s.path, err)
	}
	defer func() { _ = f.Close() }()

	result, err := codec.DecodeAll(f)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", common.ErrStoreUnavailable, s.path, err)
	}

	slog.Debug("Loaded store file",
		"path", s.path,
		"transactions", len(result.Transactions),
		"skipped", len(result.Skipped))

	return result, nil
}

// Save replaces the store file with txns. The records are written to a
// temporary file in the same directory which is then renamed over the store,
// so an interrupted save leaves the previous contents in place.
func (s *FileStore) Save(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create store directory: %w", common.ErrStoreUnavailable, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.New().String()))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", common.ErrStoreUnavailable, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	// Keep the permissions of an existing store file.
	if info, statErr := os.Stat(s.path); statErr == nil {
		if chmodErr := f.Chmod(info.Mode().Perm()); chmodErr != nil {
			slog.Debug("Could not copy store permissions", "path", s.path, "error", chmodErr)
		}
	}

	if err := codec.EncodeAll(f, txns); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: failed to sync temp file: %w", common.ErrStoreUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %w", common.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		committed = true
		return fmt.Errorf("%w: failed to replace %s: %w", common.ErrStoreUnavailable, s.path, err)
	}
	committed = true

	slog.Debug("Saved store file", "path", s.path, "transactions", len(txns))
	return nil
}
