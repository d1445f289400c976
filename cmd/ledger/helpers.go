package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/ledger"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/storage"
)

// openLedger opens the configured store and loads it. A load failure is logged
// and the ledger continues with whatever could be read. The returned cleanup
// releases the store and is safe to call on every path.
func (a *app) openLedger(ctx context.Context) (*ledger.Ledger, func(), error) {
	store, closer, err := storage.Open(ctx, a.cfg.Store)
	if err != nil {
		return nil, func() {}, common.NewUserError("Could not open the transaction store", err)
	}

	cleanup := func() {
		if err := closer.Close(); err != nil {
			common.LogError(err, "Failed to close store", common.Fields{"path": a.cfg.Store.Path})
		}
	}

	l, report, err := ledger.Open(ctx, store, ledger.WithClock(a.clock))
	if err != nil {
		common.LogError(err, "Failed to load transactions, continuing with what was read", common.Fields{
			"path":   a.cfg.Store.Path,
			"loaded": l.Len(),
		})
	}
	if report != nil && len(report.Skipped) > 0 {
		common.LogInfo("Some stored records could not be read and were skipped", common.Fields{
			"path":    a.cfg.Store.Path,
			"skipped": len(report.Skipped),
		})
	}

	common.LogDebug("Ledger loaded", common.Fields{
		"backend":      a.cfg.Store.Backend,
		"path":         a.cfg.Store.Path,
		"transactions": l.Len(),
	})

	return l, cleanup, nil
}

// saveLedger writes l back to its store.
func saveLedger(ctx context.Context, l *ledger.Ledger) error {
	if err := l.Save(ctx); err != nil {
		return common.NewUserError("Could not save transactions", err)
	}
	return nil
}

// parseKindFilter turns a --kind flag into a filter value. Blank means no
// filter; an unknown kind is reported on w and ignored.
func parseKindFilter(w io.Writer, value string) *model.Kind {
	if value == "" {
		return nil
	}
	kind, err := model.ParseKind(value)
	if err != nil {
		writeLine(w, cli.FormatWarning("Invalid type filter. Ignoring."))
		return nil
	}
	return &kind
}

// expandFiles resolves glob patterns into file paths. Patterns that match
// nothing are used as literal paths when the file exists.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", nil)
	}
	return files, nil
}

func writeLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
