// Package store persists pipeline runs and scraped planning cases.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/dublin-research/property-cli/internal/config"
	"github.com/dublin-research/property-cli/internal/model"
)

// Store defines the persistence interface for the pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, command string) (*model.Run, error)
	FinishRun(ctx context.Context, runID string, status model.RunStatus, rows, geocoded int, runErr error) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Planning cases, keyed by reference.
	UpsertCases(ctx context.Context, cases []model.PlanningCase) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New creates a Store for the configured driver.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
