package simulator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
	"github.com/MikeSquared-Agency/Regen/internal/store"
)

// Export is the downloadable summary of a run. Technologies and damage types
// appear by display name.
type Export struct {
	RunID      uuid.UUID        `json:"run_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Parameters ExportParameters `json:"parameters"`
	Results    ExportResults    `json:"results"`
}

type ExportParameters struct {
	DamageType   string             `json:"damage_type"`
	Technologies []string           `json:"technologies"`
	Constants    map[string]float64 `json:"constants"`
	Iterations   int                `json:"iterations"`
}

type ExportResults struct {
	OptimalProbability float64    `json:"optimal_probability"`
	OptimalCombination []string   `json:"optimal_combination"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	Recommendations    []string   `json:"recommendations"`
}

// Export builds the export document for a stored run.
func (s *Service) Export(ctx context.Context, id uuid.UUID) (*Export, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewExport(run, s.now().UTC()), nil
}

func NewExport(run *store.Run, at time.Time) *Export {
	return &Export{
		RunID:     run.ID,
		Timestamp: at,
		Parameters: ExportParameters{
			DamageType:   run.DamageType.Name,
			Technologies: technologyNames(run.Technologies),
			Constants:    run.Constants,
			Iterations:   run.Iterations,
		},
		Results: ExportResults{
			OptimalProbability: run.Result.TotalProbability,
			OptimalCombination: technologyNames(run.Result.OptimalCombination),
			ConfidenceInterval: run.Result.ConfidenceInterval,
			Recommendations:    run.Result.Recommendations,
		},
	}
}

func technologyNames(techs []catalog.Technology) []string {
	names := make([]string, len(techs))
	for i, t := range techs {
		names[i] = t.Name
	}
	return names
}
