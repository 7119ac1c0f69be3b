package linkage

// Candidate is one scored reference entry.
type Candidate struct {
	Index int
	Score float64
}

// SelectBest scans candidates in order and returns the highest scoring one.
// On equal scores the earliest candidate wins. It reports false when query
// is empty or no non-empty candidate exists.
func SelectBest(query string, candidates []string, s Strategy) (Candidate, bool) {
	if query == "" {
		return Candidate{}, false
	}
	best := Candidate{Index: -1}
	for i, c := range candidates {
		if c == "" {
			continue
		}
		var score float64
		if c == query {
			score = 100
		} else {
			score = Score(query, c, s)
		}
		if best.Index < 0 || score > best.Score {
			best = Candidate{Index: i, Score: score}
			if score >= 100 {
				break
			}
		}
	}
	return best, best.Index >= 0
}
