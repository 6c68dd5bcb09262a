package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
	"github.com/MikeSquared-Agency/Regen/internal/scoring"
)

type RunSource string

const (
	SourceAPI    RunSource = "api"
	SourceHermes RunSource = "hermes"
	SourceCLI    RunSource = "cli"
)

// Run is one recorded simulation.
type Run struct {
	ID           uuid.UUID                `json:"run_id"`
	DamageType   catalog.DamageType       `json:"damage_type"`
	Technologies []catalog.Technology     `json:"technologies"`
	Constants    map[string]float64       `json:"constants"`
	Iterations   int                      `json:"iterations"`
	Source       RunSource                `json:"source"`
	Result       scoring.SimulationResult `json:"result"`
	DurationMs   int64                    `json:"duration_ms"`
	CreatedAt    time.Time                `json:"created_at"`
}

type RunFilter struct {
	DamageTypeID string
	Limit        int
}

type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
	DeleteRun(ctx context.Context, id uuid.UUID) (bool, error)
	Close() error
}
