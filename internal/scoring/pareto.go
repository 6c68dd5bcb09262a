package scoring

// ComputeFrontier returns the Pareto-optimal combinations from the input set,
// preserving input order. Dimensions: probability (higher is better),
// efficiency (higher is better) and size (smaller is better).
// A combination is dominated if another is at least as good on all three and
// strictly better on one. O(n^2); fine for the subset counts we enumerate
// in practice, but callers should skip it for very large rankings.
func ComputeFrontier(results []CombinationResult) []CombinationResult {
	if len(results) <= 1 {
		return results
	}

	frontier := []CombinationResult{}
	for i := range results {
		dominated := false
		for j := range results {
			if i == j {
				continue
			}
			if dominates(results[j], results[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, results[i])
		}
	}
	return frontier
}

// dominates returns true if a dominates b.
func dominates(a, b CombinationResult) bool {
	sa, sb := len(a.Technologies), len(b.Technologies)
	if a.Probability < b.Probability || a.Efficiency < b.Efficiency || sa > sb {
		return false
	}
	return a.Probability > b.Probability || a.Efficiency > b.Efficiency || sa < sb
}
