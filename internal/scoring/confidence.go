package scoring

import (
	"math"
	"sort"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

// MaxSamples caps the resampling cost of a confidence interval.
const MaxSamples = 1000

// noiseWidth is the width of the uniform perturbation, i.e. U[-0.05, +0.05].
const noiseWidth = 0.1

// RandSource yields uniform floats in [0, 1). *math/rand/v2.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// ConfidenceInterval estimates an empirical 95% interval for a combination's
// score. It draws min(iterations, MaxSamples) perturbed samples and returns the
// values at indices floor(0.025N) and floor(0.975N) of the sorted samples.
// With no samples the interval is [0, 1].
func ConfidenceInterval(rng RandSource, technologies []catalog.Technology, baseProbability float64, constants map[string]float64, iterations int) [2]float64 {
	n := iterations
	if n > MaxSamples {
		n = MaxSamples
	}
	if n <= 0 {
		return [2]float64{0, 1}
	}

	// Sorted so a seeded source reproduces the same draws.
	keys := make([]string, 0, len(constants))
	for k := range constants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	samples := make([]float64, n)
	noisyTechs := make([]catalog.Technology, len(technologies))
	noisyConstants := make(map[string]float64, len(constants))
	for i := 0; i < n; i++ {
		for j, t := range technologies {
			t.Probability = clamp(t.Probability+noise(rng), 0, 1)
			noisyTechs[j] = t
		}
		for _, k := range keys {
			noisyConstants[k] = constants[k] + noise(rng)
		}
		samples[i] = ComputeProbability(noisyTechs, baseProbability, noisyConstants)
	}

	sort.Float64s(samples)
	lower := samples[int(math.Floor(float64(n)*0.025))]
	upper := samples[int(math.Floor(float64(n)*0.975))]
	return [2]float64{lower, upper}
}

func noise(rng RandSource) float64 {
	return (rng.Float64() - 0.5) * noiseWidth
}
