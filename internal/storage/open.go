package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/config"
	"github.com/Veraticus/spice-ledger/internal/service"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store selected by cfg along with a closer for its resources.
func Open(ctx context.Context, cfg config.StoreConfig) (service.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		store, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil

	case config.BackendSQLite:
		store, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("%w: failed to migrate database: %w", common.ErrStoreUnavailable, err)
		}
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store backend %q", common.ErrInvalidConfig, cfg.Backend)
	}
}
