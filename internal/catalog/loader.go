// Package catalog loads the reference product catalog and serves immutable
// snapshots of it. The snapshot is the only long-lived state in the
// process: it is fetched once, cached for a TTL, and replaced wholesale on
// refresh — validation never observes a partially updated catalog.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gfmartins/trcheck/internal/common"
	"github.com/gfmartins/trcheck/internal/entity"
)

// Config holds loader behavior.
type Config struct {
	TTL       time.Duration // snapshot validity window; default 1h
	Delimiter rune          // catalog file delimiter; default ';'
}

// Loader fetches, parses and caches catalog snapshots.
type Loader struct {
	cfg    Config
	source Source
	store  *Store // optional durable cache
	logger *slog.Logger

	mu       sync.Mutex
	snapshot *entity.Catalog
}

func NewLoader(cfg Config, source Source, store *Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ';'
	}
	return &Loader{cfg: cfg, source: source, store: store, logger: logger}
}

// Get returns the current snapshot, fetching or refreshing as needed.
// Concurrent callers inside the validity window observe the same pointer.
func (l *Loader) Get(ctx context.Context) (*entity.Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snapshot != nil && time.Since(l.snapshot.FetchedAt) < l.cfg.TTL {
		return l.snapshot, nil
	}

	// a durable snapshot inside the window beats a refetch
	if l.snapshot == nil && l.store != nil {
		if entries, at, err := l.store.Load(ctx); err == nil && time.Since(at) < l.cfg.TTL {
			cat, dupes := entity.NewCatalog(entries, at)
			l.logDupes(dupes)
			l.logger.Info("catalog.load.from_store", "entries", cat.Len(), "fetched_at", at)
			l.snapshot = cat
			return cat, nil
		}
	}

	cat, err := l.refresh(ctx)
	if err != nil {
		// serve the stale snapshot rather than nothing, but say so
		if l.snapshot != nil {
			l.logger.Warn("catalog.refresh.failed_serving_stale",
				"error", err, "fetched_at", l.snapshot.FetchedAt)
			return l.snapshot, nil
		}
		return nil, err
	}
	l.snapshot = cat
	return cat, nil
}

// Refresh forces a fetch regardless of the window.
func (l *Loader) Refresh(ctx context.Context) (*entity.Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cat, err := l.refresh(ctx)
	if err != nil {
		return nil, err
	}
	l.snapshot = cat
	return cat, nil
}

func (l *Loader) refresh(ctx context.Context) (*entity.Catalog, error) {
	start := time.Now()
	rc, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, common.NewAppError("CATALOG_FETCH", "fetching catalog source", common.ErrCatalogUnavailable)
	}
	defer rc.Close()

	entries, err := ParseTable(rc, l.cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	fetchedAt := time.Now().UTC()
	cat, dupes := entity.NewCatalog(entries, fetchedAt)
	l.logDupes(dupes)

	if l.store != nil {
		if err := l.store.Save(ctx, entries, fetchedAt); err != nil {
			l.logger.Warn("catalog.store.save_failed", "error", err)
		}
	}
	l.logger.Info("catalog.refresh.ok",
		"entries", cat.Len(),
		"duplicates", len(dupes),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return cat, nil
}

func (l *Loader) logDupes(dupes []string) {
	for _, code := range dupes {
		l.logger.Warn("catalog.load.duplicate_code", "code", code, "kept", "first occurrence")
	}
}
