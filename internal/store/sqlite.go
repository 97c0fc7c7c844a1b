// Package store persists scan history to a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/finsync/reality-lens/internal/model"
)

// Store records completed scans and serves the history endpoint.
type Store interface {
	SaveRun(ctx context.Context, userID string, result model.AnalysisResult, failed bool) (*model.ScanRun, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]model.ScanRun, error)
	Migrate(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scan_runs (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	item       TEXT NOT NULL,
	price      REAL NOT NULL,
	hours      REAL NOT NULL,
	impact     TEXT NOT NULL,
	emi        REAL NOT NULL,
	failed     INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scan_runs_user_id ON scan_runs(user_id);
CREATE INDEX IF NOT EXISTS idx_scan_runs_created_at ON scan_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, userID string, result model.AnalysisResult, failed bool) (*model.ScanRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_runs (id, user_id, item, price, hours, impact, emi, failed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, result.Item, result.Price, result.Hours, string(result.Impact), result.EMI, failed, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert scan run")
	}

	return &model.ScanRun{
		ID:        id,
		UserID:    userID,
		Result:    result,
		Failed:    failed,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) ListRecent(ctx context.Context, userID string, limit int) ([]model.ScanRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, item, price, hours, impact, emi, failed, created_at
		 FROM scan_runs WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scan runs")
	}
	defer rows.Close()

	var runs []model.ScanRun
	for rows.Next() {
		var r model.ScanRun
		var impact string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Result.Item, &r.Result.Price, &r.Result.Hours, &impact, &r.Result.EMI, &r.Failed, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		r.Result.Impact = model.Impact(impact)
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list scan runs iterate")
}
