package scoring

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

func TestConfidenceIntervalNoNoise(t *testing.T) {
	techs := []catalog.Technology{telomerase, stemCells}
	want := ComputeProbability(techs, 0.3, defaultConstants())

	ci := ConfidenceInterval(constSource(0.5), techs, 0.3, defaultConstants(), 100)
	if math.Abs(ci[0]-want) > 1e-12 || math.Abs(ci[1]-want) > 1e-12 {
		t.Errorf("zero noise should collapse interval to %f, got %v", want, ci)
	}
}

func TestConfidenceIntervalFallback(t *testing.T) {
	for _, n := range []int{0, -1, -1000} {
		src := &countingSource{src: constSource(0.5)}
		ci := ConfidenceInterval(src, []catalog.Technology{nanobots}, 0.3, defaultConstants(), n)
		if ci != [2]float64{0, 1} {
			t.Errorf("iterations=%d: expected [0 1], got %v", n, ci)
		}
		if src.calls != 0 {
			t.Errorf("iterations=%d: expected no draws, got %d", n, src.calls)
		}
	}
}

func TestConfidenceIntervalCap(t *testing.T) {
	techs := []catalog.Technology{telomerase, quantum}
	constants := defaultConstants()

	capped := &countingSource{src: rand.New(rand.NewPCG(5, 5))}
	atCap := &countingSource{src: rand.New(rand.NewPCG(5, 5))}

	over := ConfidenceInterval(capped, techs, 0.2, constants, 5000)
	exact := ConfidenceInterval(atCap, techs, 0.2, constants, MaxSamples)

	if over != exact {
		t.Errorf("5000 iterations gave %v, %d gave %v", over, MaxSamples, exact)
	}
	// one draw per technology and per constant, per sample
	wantDraws := MaxSamples * (len(techs) + len(constants))
	if capped.calls != wantDraws {
		t.Errorf("expected %d draws, got %d", wantDraws, capped.calls)
	}
}

func TestConfidenceIntervalBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 13))
	for i := 0; i < 50; i++ {
		techs := makeTechs(1 + rng.IntN(5))
		ci := ConfidenceInterval(rng, techs, rng.Float64(), defaultConstants(), 1+rng.IntN(300))
		if ci[0] > ci[1] {
			t.Fatalf("lower %f > upper %f", ci[0], ci[1])
		}
		if ci[0] < 0 || ci[1] > MaxProbability {
			t.Fatalf("interval %v outside [0, %.2f]", ci, MaxProbability)
		}
	}
}

func TestConfidenceIntervalNoiseRange(t *testing.T) {
	// extremes of the source give the extremes of the noise band
	if got := noise(constSource(0)); math.Abs(got+0.05) > 1e-12 {
		t.Errorf("noise(0) = %f, want -0.05", got)
	}
	if got := noise(constSource(1)); math.Abs(got-0.05) > 1e-12 {
		t.Errorf("noise(1) = %f, want 0.05", got)
	}
}

func TestConfidenceIntervalDoesNotMutateInputs(t *testing.T) {
	techs := []catalog.Technology{telomerase, stemCells}
	constants := defaultConstants()
	ConfidenceInterval(rand.New(rand.NewPCG(1, 1)), techs, 0.3, constants, 200)

	if techs[0].Probability != 0.20 || techs[1].Probability != 0.35 {
		t.Errorf("technology probabilities mutated: %v", techs)
	}
	if constants[ConstEntropy] != 0.3 {
		t.Errorf("constants mutated: %v", constants)
	}
}
