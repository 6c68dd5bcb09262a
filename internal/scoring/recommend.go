package scoring

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

// HighEfficiencyThreshold is the per-technology probability above which a
// combination counts as a high-efficiency alternative.
const HighEfficiencyThreshold = 0.15

// Recommendations turns a ranking into advice. ranked must already be sorted
// best-first; an empty ranking yields no advice.
func Recommendations(ranked []CombinationResult, damage catalog.DamageType) []string {
	recs := []string{}
	if len(ranked) == 0 {
		return recs
	}

	top := ranked[0]
	recs = append(recs, fmt.Sprintf("Optimal combination achieves %.1f%% success probability", top.Probability*100))

	names := make([]string, len(top.Technologies))
	for i, t := range top.Technologies {
		names[i] = t.Name
	}
	recs = append(recs, "Recommended technologies: "+strings.Join(names, ", "))

	for _, r := range ranked {
		if r.Efficiency > HighEfficiencyThreshold {
			recs = append(recs, "Consider high-efficiency alternatives for resource optimization")
			break
		}
	}

	if damage.Severity == catalog.SeverityCritical {
		recs = append(recs, "Critical damage requires immediate intervention with highest probability technologies")
	}

	var hasQuantum, hasNano bool
	for _, t := range top.Technologies {
		switch t.Category {
		case catalog.CategoryQuantum:
			hasQuantum = true
		case catalog.CategoryNanotechnology:
			hasNano = true
		}
	}
	if hasQuantum {
		recs = append(recs, "Quantum technologies provide significant probability enhancement")
	}
	if hasNano {
		recs = append(recs, "Nanotechnology integration shows promising results")
	}

	return recs
}
