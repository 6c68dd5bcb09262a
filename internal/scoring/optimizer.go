package scoring

import (
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

// frontierLimit skips the quadratic Pareto pass on large rankings (n > 12).
const frontierLimit = 4095

// CombinationResult is one scored subset.
type CombinationResult struct {
	Technologies []catalog.Technology `json:"technologies"`
	Probability  float64              `json:"probability"`
	Efficiency   float64              `json:"efficiency"`
}

// SimulationResult is the complete output of one optimization.
type SimulationResult struct {
	TotalProbability   float64              `json:"total_probability"`
	OptimalCombination []catalog.Technology `json:"optimal_combination"`
	AllCombinations    []CombinationResult  `json:"all_combinations"`
	ConfidenceInterval [2]float64           `json:"confidence_interval"`
	Recommendations    []string             `json:"recommendations"`
	ParetoFrontier     []CombinationResult  `json:"pareto_frontier,omitempty"`
}

// Optimizer searches every non-empty subset of a technology list for the one
// with the highest success probability.
type Optimizer struct {
	mu          sync.Mutex
	rng         RandSource
	parallelism int
	logger      *slog.Logger
}

// NewOptimizer creates an Optimizer. rng is the only source of randomness and
// is used solely for confidence intervals. parallelism > 1 scores subsets on
// that many goroutines; the ranking is identical either way.
func NewOptimizer(rng RandSource, parallelism int, logger *slog.Logger) *Optimizer {
	return &Optimizer{
		rng:         rng,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Optimize ranks all non-empty subsets of technologies for the damage type.
// An empty technology list yields an empty ranking, zero probability and a
// [0, 1] interval without drawing samples; that is a valid result, not an error.
func (o *Optimizer) Optimize(damage catalog.DamageType, technologies []catalog.Technology, constants map[string]float64, iterations int) SimulationResult {
	subsets := AllNonEmptySubsets(technologies)
	results := o.scoreAll(subsets, damage.BaseProbability, constants)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Probability > results[j].Probability
	})

	res := SimulationResult{
		OptimalCombination: []catalog.Technology{},
		AllCombinations:    results,
		ConfidenceInterval: [2]float64{0, 1},
	}
	if len(results) > 0 {
		res.OptimalCombination = results[0].Technologies
		res.TotalProbability = results[0].Probability

		// Sampling advances the shared source; serialize it.
		o.mu.Lock()
		res.ConfidenceInterval = ConfidenceInterval(o.rng, res.OptimalCombination, damage.BaseProbability, constants, iterations)
		o.mu.Unlock()
	}

	res.Recommendations = Recommendations(results, damage)
	if len(results) <= frontierLimit {
		res.ParetoFrontier = ComputeFrontier(results)
	}

	o.logger.Debug("optimization complete",
		"damage_type", damage.ID,
		"technologies", len(technologies),
		"combinations", len(results),
		"total_probability", res.TotalProbability,
	)
	return res
}

func (o *Optimizer) scoreAll(subsets [][]catalog.Technology, base float64, constants map[string]float64) []CombinationResult {
	results := make([]CombinationResult, len(subsets))
	if o.parallelism <= 1 || len(subsets) < 2 {
		for i, s := range subsets {
			results[i] = score(s, base, constants)
		}
		return results
	}

	// Each goroutine owns its slot, so enumeration order survives.
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for i, s := range subsets {
		g.Go(func() error {
			results[i] = score(s, base, constants)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func score(subset []catalog.Technology, base float64, constants map[string]float64) CombinationResult {
	p := ComputeProbability(subset, base, constants)
	var eff float64
	if len(subset) > 0 {
		eff = p / float64(len(subset))
	}
	return CombinationResult{Technologies: subset, Probability: p, Efficiency: eff}
}
