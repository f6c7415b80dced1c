package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/dublin-research/property-cli/internal/model"
)

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
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	command    TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	rows       INTEGER NOT NULL DEFAULT 0,
	geocoded   INTEGER NOT NULL DEFAULT 0,
	error      TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS planning_cases (
	reference   TEXT PRIMARY KEY,
	case_type   TEXT,
	title       TEXT,
	status      TEXT,
	description TEXT,
	date_lodged TEXT,
	date_signed TEXT,
	eiar        TEXT,
	nis         TEXT,
	parties     TEXT,
	scraped_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_planning_cases_status ON planning_cases(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, command string) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, command, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, command, string(model.RunStatusRunning), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		Command:   command,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, rows, geocoded int, runErr error) error {
	var errMsg sql.NullString
	if runErr != nil {
		errMsg = sql.NullString{String: runErr.Error(), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, rows = ?, geocoded = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), rows, geocoded, errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, status, rows, geocoded, COALESCE(error, ''), created_at, updated_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		var status string
		if err := rows.Scan(&r.ID, &r.Command, &status, &r.Rows, &r.Geocoded, &r.Error, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		r.Status = model.RunStatus(status)
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) UpsertCases(ctx context.Context, cases []model.PlanningCase) (int, error) {
	if len(cases) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO planning_cases (reference, case_type, title, status, description, date_lodged, date_signed, eiar, nis, parties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (reference) DO UPDATE SET
			case_type = excluded.case_type,
			title = excluded.title,
			status = excluded.status,
			description = excluded.description,
			date_lodged = excluded.date_lodged,
			date_signed = excluded.date_signed,
			eiar = excluded.eiar,
			nis = excluded.nis,
			parties = excluded.parties,
			scraped_at = datetime('now')`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close() //nolint:errcheck

	count := 0
	for _, c := range cases {
		if c.Reference == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, c.Reference, c.Type, c.Title, c.Status, c.Description,
			c.DateLodged, c.DateSigned, c.EIAR, c.NIS, c.Parties); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert case %s", c.Reference)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return count, nil
}
