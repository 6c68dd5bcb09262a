package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

// Recognized constant identifiers. Any other key in a constants map is ignored.
const (
	ConstTelomereLength = "telomere-length"
	ConstEntropy        = "entropy"
	ConstCellularEnergy = "cellular-energy"
	ConstImmuneResponse = "immune-response"
	ConstDNARepair      = "dna-repair"
)

// Fallbacks for constants absent from the caller's map.
const (
	DefaultTelomereLength = 80.0
	DefaultEntropy        = 0.3
	DefaultCellularEnergy = 0.7
	DefaultImmuneResponse = 0.6
	DefaultDNARepair      = 0.8
)

// VariableLightSpeedID is the one technology that earns its own multiplier.
const VariableLightSpeedID = "variable-light-speed"

// FactorResult captures one modifier's contribution to the final score.
type FactorResult struct {
	Name   string  `json:"name"`
	Input  float64 `json:"input"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

func constantOr(constants map[string]float64, id string, def float64) (float64, string) {
	if v, ok := constants[id]; ok {
		return v, "from constants"
	}
	return def, "default"
}

// TelomereFactor is min(length/100, 1), never negative.
func TelomereFactor(constants map[string]float64) FactorResult {
	v, reason := constantOr(constants, ConstTelomereLength, DefaultTelomereLength)
	return FactorResult{Name: "telomere", Input: v, Value: clamp(v/100, 0, 1), Reason: reason}
}

// EntropyFactor penalizes disorder but never drops below 0.1.
func EntropyFactor(constants map[string]float64) FactorResult {
	v, reason := constantOr(constants, ConstEntropy, DefaultEntropy)
	return FactorResult{Name: "entropy", Input: v, Value: math.Max(1-v*0.5, 0.1), Reason: reason}
}

func CellularEnergyFactor(constants map[string]float64) FactorResult {
	v, reason := constantOr(constants, ConstCellularEnergy, DefaultCellularEnergy)
	return FactorResult{Name: "cellular_energy", Input: v, Value: math.Max(1+v*0.3, 0), Reason: reason}
}

func ImmuneResponseFactor(constants map[string]float64) FactorResult {
	v, reason := constantOr(constants, ConstImmuneResponse, DefaultImmuneResponse)
	return FactorResult{Name: "immune_response", Input: v, Value: math.Max(1+v*0.2, 0), Reason: reason}
}

func DNARepairFactor(constants map[string]float64) FactorResult {
	v, reason := constantOr(constants, ConstDNARepair, DefaultDNARepair)
	return FactorResult{Name: "dna_repair", Input: v, Value: math.Max(1+v*0.25, 0), Reason: reason}
}

// PhysicsMultiplier stacks ×1.2 for variable light speed, ×1.15 for any
// quantum technology and ×1.1 for any physics technology.
func PhysicsMultiplier(technologies []catalog.Technology) FactorResult {
	var hasVariableC, hasQuantum, hasPhysics bool
	for _, t := range technologies {
		if t.ID == VariableLightSpeedID {
			hasVariableC = true
		}
		switch t.Category {
		case catalog.CategoryQuantum:
			hasQuantum = true
		case catalog.CategoryPhysics:
			hasPhysics = true
		}
	}

	m := 1.0
	reason := "none"
	if hasVariableC {
		m *= 1.2
		reason = "variable light speed"
	}
	if hasQuantum {
		m *= 1.15
		reason = appendReason(reason, "quantum")
	}
	if hasPhysics {
		m *= 1.1
		reason = appendReason(reason, "physics")
	}
	return FactorResult{Name: "physics", Input: float64(len(technologies)), Value: m, Reason: reason}
}

func appendReason(reason, s string) string {
	if reason == "none" {
		return s
	}
	return reason + ", " + s
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
