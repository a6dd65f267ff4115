package catalog

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/entity"
)

// Store persists catalog snapshots in a local sqlite database so a process
// restart inside the cache window reloads from disk instead of refetching.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS catalog_entry (
	snapshot_at  TEXT    NOT NULL,
	position     INTEGER NOT NULL,
	code         TEXT    NOT NULL,
	unit         TEXT    NOT NULL,
	status       TEXT    NOT NULL,
	description  TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (snapshot_at, position)
);
CREATE INDEX IF NOT EXISTS catalog_entry_snapshot ON catalog_entry (snapshot_at);
`

// OpenStore opens (and migrates) the snapshot database.
func OpenStore(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("catalog.store.open", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database gracefully.
func (s *Store) Close() {
	if s == nil || s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("catalog.store.close_failed", "error", err)
	}
}

// Save replaces the stored snapshot with the given entries, keyed by the
// fetch instant. Older snapshots are pruned.
func (s *Store) Save(ctx context.Context, entries []entity.CatalogEntry, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_entry`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO catalog_entry (snapshot_at, position, code, unit, status, description)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	at := fetchedAt.UTC().Format(time.RFC3339Nano)
	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, at, i, e.Code, e.OfficialUnit, string(e.Status), e.Description); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("catalog.store.saved", "entries", len(entries), "snapshot_at", at)
	return nil
}

// ErrNoSnapshot is returned by Load when the store holds no snapshot.
var ErrNoSnapshot = errors.New("no catalog snapshot stored")

// Load returns the stored snapshot entries in source order plus the fetch
// instant.
func (s *Store) Load(ctx context.Context) ([]entity.CatalogEntry, time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot_at, code, unit, status, description
		 FROM catalog_entry ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var entries []entity.CatalogEntry
	var at time.Time
	for rows.Next() {
		var stamp, code, unit, status, desc string
		if err := rows.Scan(&stamp, &code, &unit, &status, &desc); err != nil {
			return nil, time.Time{}, err
		}
		if at.IsZero() {
			if ts, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
				at = ts
			}
		}
		entries = append(entries, entity.CatalogEntry{
			Code:         code,
			OfficialUnit: unit,
			Status:       constants.EntryStatus(status),
			Description:  desc,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	if len(entries) == 0 {
		return nil, time.Time{}, ErrNoSnapshot
	}
	return entries, at, nil
}
