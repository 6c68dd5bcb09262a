package scoring

import "github.com/MikeSquared-Agency/Regen/internal/catalog"

// MaxTechnologies bounds the enumeration; 2^20 - 1 subsets is already a lot.
const MaxTechnologies = 20

// SubsetCount returns 2^n - 1, the number of non-empty subsets of n items.
func SubsetCount(n int) int {
	if n <= 0 {
		return 0
	}
	return 1<<uint(n) - 1
}

// AllNonEmptySubsets enumerates every non-empty subset of technologies.
// Subset k (k = 1 .. 2^n-1) holds the items whose list index j has bit j set
// in k, so singletons come first in list order and the full set comes last.
// Membership is positional; duplicate entries in the input are treated as
// distinct items. Callers are expected to keep n at or below MaxTechnologies.
func AllNonEmptySubsets(technologies []catalog.Technology) [][]catalog.Technology {
	n := len(technologies)
	total := SubsetCount(n)
	out := make([][]catalog.Technology, 0, total)
	for mask := 1; mask <= total; mask++ {
		subset := make([]catalog.Technology, 0, n)
		for j := 0; j < n; j++ {
			if mask&(1<<uint(j)) != 0 {
				subset = append(subset, technologies[j])
			}
		}
		out = append(out, subset)
	}
	return out
}
