package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
	"github.com/MikeSquared-Agency/Regen/internal/hermes"
	"github.com/MikeSquared-Agency/Regen/internal/metrics"
	"github.com/MikeSquared-Agency/Regen/internal/scoring"
	"github.com/MikeSquared-Agency/Regen/internal/store"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Request selects catalog entries by id. Missing constants take their
// catalog defaults; Iterations <= 0 takes the service default.
type Request struct {
	DamageTypeID  string             `json:"damage_type_id"`
	TechnologyIDs []string           `json:"technology_ids"`
	Constants     map[string]float64 `json:"constants,omitempty"`
	Iterations    int                `json:"iterations,omitempty"`
}

// Service validates requests against the catalog, runs the optimizer and
// records the outcome.
type Service struct {
	catalog           *catalog.Catalog
	optimizer         *scoring.Optimizer
	store             store.Store
	hermes            hermes.Client
	metrics           *metrics.Metrics
	defaultIterations int
	logger            *slog.Logger
	now               func() time.Time
}

// New creates a Service. h may be nil when no event bus is configured.
func New(cat *catalog.Catalog, opt *scoring.Optimizer, s store.Store, h hermes.Client, m *metrics.Metrics, defaultIterations int, logger *slog.Logger) *Service {
	return &Service{
		catalog:           cat,
		optimizer:         opt,
		store:             s,
		hermes:            h,
		metrics:           m,
		defaultIterations: defaultIterations,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Run resolves, validates and executes one simulation.
func (s *Service) Run(ctx context.Context, req Request, source store.RunSource) (*store.Run, error) {
	damage, techs, constants, err := s.resolve(req)
	if err != nil {
		s.metrics.Simulations.WithLabelValues(string(source), "rejected").Inc()
		return nil, err
	}

	iterations := req.Iterations
	if iterations <= 0 {
		iterations = s.defaultIterations
	}

	start := s.now()
	result := s.optimizer.Optimize(damage, techs, constants, iterations)
	elapsed := s.now().Sub(start)

	run := &store.Run{
		ID:           uuid.New(),
		DamageType:   damage,
		Technologies: techs,
		Constants:    constants,
		Iterations:   iterations,
		Source:       source,
		Result:       result,
		DurationMs:   elapsed.Milliseconds(),
		CreatedAt:    start.UTC(),
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		s.metrics.Simulations.WithLabelValues(string(source), "error").Inc()
		return nil, fmt.Errorf("store run: %w", err)
	}

	s.metrics.Simulations.WithLabelValues(string(source), "ok").Inc()
	s.metrics.Combinations.Add(float64(len(result.AllCombinations)))
	s.metrics.Duration.Observe(elapsed.Seconds())
	s.metrics.OptimalProbability.Observe(result.TotalProbability)
	s.refreshStoredRuns(ctx)

	s.logger.Info("simulation complete",
		"run_id", run.ID,
		"damage_type", damage.ID,
		"technologies", len(techs),
		"combinations", len(result.AllCombinations),
		"total_probability", result.TotalProbability,
		"source", source,
		"duration_ms", run.DurationMs,
	)

	s.publish(hermes.SubjectSimulationCompleted(run.ID.String()), hermes.SimulationCompletedEvent{
		RunID:              run.ID.String(),
		DamageTypeID:       damage.ID,
		OptimalCombination: technologyIDs(result.OptimalCombination),
		TotalProbability:   result.TotalProbability,
		ConfidenceInterval: result.ConfidenceInterval,
		Combinations:       len(result.AllCombinations),
		DurationMs:         run.DurationMs,
		Timestamp:          s.now().UTC(),
	})
	return run, nil
}

func (s *Service) resolve(req Request) (catalog.DamageType, []catalog.Technology, map[string]float64, error) {
	if req.DamageTypeID == "" {
		return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: damage_type_id required", ErrInvalidRequest)
	}
	damage, ok := s.catalog.DamageType(req.DamageTypeID)
	if !ok {
		return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: damage type %q", ErrNotFound, req.DamageTypeID)
	}

	if len(req.TechnologyIDs) == 0 {
		return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: at least one technology required", ErrInvalidRequest)
	}
	if len(req.TechnologyIDs) > scoring.MaxTechnologies {
		return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: %d technologies exceeds limit of %d", ErrInvalidRequest, len(req.TechnologyIDs), scoring.MaxTechnologies)
	}
	seen := make(map[string]bool, len(req.TechnologyIDs))
	techs := make([]catalog.Technology, 0, len(req.TechnologyIDs))
	for _, id := range req.TechnologyIDs {
		if seen[id] {
			return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: duplicate technology %q", ErrInvalidRequest, id)
		}
		seen[id] = true
		t, ok := s.catalog.Technology(id)
		if !ok {
			return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: technology %q", ErrNotFound, id)
		}
		techs = append(techs, t)
	}

	constants := s.catalog.DefaultConstants()
	for id, v := range req.Constants {
		c, ok := s.catalog.Constant(id)
		if !ok {
			s.logger.Debug("ignoring unknown constant", "constant", id)
			continue
		}
		if !c.InRange(v) {
			return catalog.DamageType{}, nil, nil, fmt.Errorf("%w: constant %q value %v outside [%v, %v]", ErrInvalidRequest, id, v, c.Min, c.Max)
		}
		constants[id] = v
	}
	return damage, techs, constants, nil
}

// Get returns ErrNotFound for unknown or evicted runs.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*store.Run, error) {
	run, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	return run, nil
}

func (s *Service) List(ctx context.Context, filter store.RunFilter) ([]*store.Run, error) {
	runs, err := s.store.ListRuns(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Explain rescores a run's optimal combination with its full factor trace.
func (s *Service) Explain(ctx context.Context, id uuid.UUID) (*scoring.Breakdown, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b := scoring.Explain(run.Result.OptimalCombination, run.DamageType.BaseProbability, run.Constants)
	return &b, nil
}

// Delete discards a run; this is the reset operation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.DeleteRun(ctx, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	s.refreshStoredRuns(ctx)
	s.logger.Info("run deleted", "run_id", id)
	s.publish(hermes.SubjectSimulationDeleted(id.String()), hermes.SimulationDeletedEvent{
		RunID:     id.String(),
		Timestamp: s.now().UTC(),
	})
	return nil
}

// SetupSubscriptions runs simulations requested over the event bus.
func (s *Service) SetupSubscriptions() {
	if s.hermes == nil {
		return
	}

	err := s.hermes.Subscribe(hermes.SubjectSimulationRequest, func(_ string, data []byte) {
		var evt hermes.SimulationRequestEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			s.logger.Warn("invalid simulation request event", "error", err)
			return
		}
		s.handleRequest(context.Background(), evt)
	})
	if err != nil {
		s.logger.Warn("failed to subscribe to simulation requests", "error", err)
	}
}

func (s *Service) handleRequest(ctx context.Context, evt hermes.SimulationRequestEvent) {
	run, err := s.Run(ctx, Request{
		DamageTypeID:  evt.DamageTypeID,
		TechnologyIDs: evt.TechnologyIDs,
		Constants:     evt.Constants,
		Iterations:    evt.Iterations,
	}, store.SourceHermes)
	if err != nil {
		s.logger.Warn("simulation request rejected", "request_id", evt.RequestID, "error", err)
		id := evt.RequestID
		if id == "" {
			id = uuid.NewString()
		}
		s.publish(hermes.SubjectSimulationFailed(id), hermes.SimulationFailedEvent{
			RequestID:    evt.RequestID,
			DamageTypeID: evt.DamageTypeID,
			Error:        err.Error(),
			Timestamp:    s.now().UTC(),
		})
		return
	}
	s.logger.Info("simulation created from event", "run_id", run.ID, "request_id", evt.RequestID)
}

func (s *Service) publish(subject string, data interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func (s *Service) refreshStoredRuns(ctx context.Context) {
	runs, err := s.store.ListRuns(ctx, store.RunFilter{})
	if err != nil {
		return
	}
	s.metrics.StoredRuns.Set(float64(len(runs)))
}

func technologyIDs(techs []catalog.Technology) []string {
	ids := make([]string, len(techs))
	for i, t := range techs {
		ids[i] = t.ID
	}
	return ids
}
