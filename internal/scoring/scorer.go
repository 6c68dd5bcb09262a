package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

// MaxProbability caps every score; success is never modeled as certain.
const MaxProbability = 0.99

// Breakdown is the full scoring trace for one combination.
type Breakdown struct {
	Base        float64        `json:"base"`
	Combined    float64        `json:"combined"`
	Total       float64        `json:"total"`
	Factors     []FactorResult `json:"factors"`
	Raw         float64        `json:"raw"`
	Probability float64        `json:"probability"`
}

// ComputeProbability scores a set of technologies against a base probability.
func ComputeProbability(technologies []catalog.Technology, baseProbability float64, constants map[string]float64) float64 {
	return Explain(technologies, baseProbability, constants).Probability
}

// Explain computes the score and keeps every intermediate value.
//
//	total = max(base, 1 - prod(1 - p_i))
//	score = min(total * telomere * entropy * energy * immune * dna * physics, 0.99)
func Explain(technologies []catalog.Technology, baseProbability float64, constants map[string]float64) Breakdown {
	b := Breakdown{Base: clamp(baseProbability, 0, 1)}
	b.Total = b.Base

	if len(technologies) > 0 {
		miss := 1.0
		for _, t := range technologies {
			miss *= 1 - clamp(t.Probability, 0, 1)
		}
		b.Combined = 1 - miss
		b.Total = math.Max(b.Total, b.Combined)
	}

	b.Factors = []FactorResult{
		TelomereFactor(constants),
		EntropyFactor(constants),
		CellularEnergyFactor(constants),
		ImmuneResponseFactor(constants),
		DNARepairFactor(constants),
		PhysicsMultiplier(technologies),
	}

	b.Raw = b.Total
	for _, f := range b.Factors {
		b.Raw *= f.Value
	}

	// NaN from non-finite constants scores as zero.
	if math.IsNaN(b.Raw) {
		b.Probability = 0
	} else {
		b.Probability = clamp(b.Raw, 0, MaxProbability)
	}
	return b
}
