package scoring

import (
	"reflect"
	"testing"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
)

func TestRecommendations(t *testing.T) {
	critical := catalog.DamageType{ID: "cancer", Severity: catalog.SeverityCritical}
	medium := catalog.DamageType{ID: "aging", Severity: catalog.SeverityMedium}

	tests := []struct {
		name   string
		ranked []CombinationResult
		damage catalog.DamageType
		want   []string
	}{
		{
			name:   "empty ranking",
			ranked: nil,
			damage: critical,
			want:   []string{},
		},
		{
			name: "minimal",
			ranked: []CombinationResult{
				{Technologies: []catalog.Technology{telomerase, stemCells}, Probability: 0.2, Efficiency: 0.1},
			},
			damage: medium,
			want: []string{
				"Optimal combination achieves 20.0% success probability",
				"Recommended technologies: Telomerase Activation, Stem Cell Regeneration",
			},
		},
		{
			name: "everything",
			ranked: []CombinationResult{
				{Technologies: []catalog.Technology{quantum, nanobots}, Probability: 0.8123, Efficiency: 0.406},
				{Technologies: []catalog.Technology{quantum}, Probability: 0.5, Efficiency: 0.5},
			},
			damage: critical,
			want: []string{
				"Optimal combination achieves 81.2% success probability",
				"Recommended technologies: Quantum Consciousness Transfer, Tissue Repair Nanobots",
				"Consider high-efficiency alternatives for resource optimization",
				"Critical damage requires immediate intervention with highest probability technologies",
				"Quantum technologies provide significant probability enhancement",
				"Nanotechnology integration shows promising results",
			},
		},
		{
			name: "efficiency found below the top",
			ranked: []CombinationResult{
				{Technologies: []catalog.Technology{telomerase, stemCells, topology}, Probability: 0.3, Efficiency: 0.1},
				{Technologies: []catalog.Technology{stemCells}, Probability: 0.29, Efficiency: 0.29},
			},
			damage: medium,
			want: []string{
				"Optimal combination achieves 30.0% success probability",
				"Recommended technologies: Telomerase Activation, Stem Cell Regeneration, Space Topology Modification",
				"Consider high-efficiency alternatives for resource optimization",
			},
		},
		{
			name: "nanotechnology outside the top is ignored",
			ranked: []CombinationResult{
				{Technologies: []catalog.Technology{stemCells}, Probability: 0.1, Efficiency: 0.1},
				{Technologies: []catalog.Technology{nanobots}, Probability: 0.09, Efficiency: 0.09},
			},
			damage: medium,
			want: []string{
				"Optimal combination achieves 10.0% success probability",
				"Recommended technologies: Stem Cell Regeneration",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommendations(tt.ranked, tt.damage)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestRecommendationsLength(t *testing.T) {
	o := NewOptimizer(constSource(0.5), 1, discardLogger())
	for n := 1; n <= 6; n++ {
		res := o.Optimize(catalog.DamageType{BaseProbability: 0.1, Severity: catalog.SeverityCritical}, makeTechs(n), defaultConstants(), 0)
		if l := len(res.Recommendations); l < 2 || l > 6 {
			t.Errorf("n=%d: %d recommendations, want 2..6", n, l)
		}
	}
}
