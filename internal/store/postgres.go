package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/dublin-research/property-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, satisfied by pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (used by tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	command    TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	rows       INTEGER NOT NULL DEFAULT 0,
	geocoded   INTEGER NOT NULL DEFAULT 0,
	error      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
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
	scraped_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_planning_cases_status ON planning_cases(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, command string) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, command, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, command, string(model.RunStatusRunning), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.Run{
		ID:        id,
		Command:   command,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, rows, geocoded int, runErr error) error {
	var errMsg *string
	if runErr != nil {
		msg := runErr.Error()
		errMsg = &msg
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, rows = $2, geocoded = $3, error = $4, updated_at = $5 WHERE id = $6`,
		string(status), rows, geocoded, errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, command, status, rows, geocoded, COALESCE(error, ''), created_at, updated_at
		 FROM runs ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		var status string
		if err := rows.Scan(&r.ID, &r.Command, &status, &r.Rows, &r.Geocoded, &r.Error, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		r.Status = model.RunStatus(status)
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) UpsertCases(ctx context.Context, cases []model.PlanningCase) (int, error) {
	count := 0
	for _, c := range cases {
		if c.Reference == "" {
			continue
		}
		_, err := s.pool.Exec(ctx, `
			INSERT INTO planning_cases (reference, case_type, title, status, description, date_lodged, date_signed, eiar, nis, parties, scraped_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
			ON CONFLICT (reference) DO UPDATE SET
				case_type = EXCLUDED.case_type,
				title = EXCLUDED.title,
				status = EXCLUDED.status,
				description = EXCLUDED.description,
				date_lodged = EXCLUDED.date_lodged,
				date_signed = EXCLUDED.date_signed,
				eiar = EXCLUDED.eiar,
				nis = EXCLUDED.nis,
				parties = EXCLUDED.parties,
				scraped_at = now()`,
			c.Reference, c.Type, c.Title, c.Status, c.Description,
			c.DateLodged, c.DateSigned, c.EIAR, c.NIS, c.Parties,
		)
		if err != nil {
			return count, eris.Wrapf(err, "postgres: upsert case %s", c.Reference)
		}
		count++
	}
	return count, nil
}
