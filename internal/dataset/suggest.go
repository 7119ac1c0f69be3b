package dataset

import (
	"math"
	"sort"

	"fuzzyjoin/internal/linkage"
)

// ColumnPairScore rates how well Left and Right would serve as match fields
// for each other.
type ColumnPairScore struct {
	Score float64       `json:"score"`
	Left  ColumnProfile `json:"left"`
	Right ColumnProfile `json:"right"`
}

type columnProfilePair struct {
	Left, Right ColumnProfileID
}

// overlapThreshold is the token-sort score two sample values need to count
// as the same entity.
const overlapThreshold = 80

// Suggest scores every left/right column pair, best first. Pairs with
// identical profiles on both sides are scored once.
func Suggest(left, right []ColumnProfile) []ColumnPairScore {
	seen := make(map[columnProfilePair]bool)
	var results []ColumnPairScore
	for _, l := range left {
		lid := NewColumnProfileID(l)
		for _, r := range right {
			rid := NewColumnProfileID(r)
			if seen[columnProfilePair{lid, rid}] || seen[columnProfilePair{rid, lid}] {
				continue
			}
			seen[columnProfilePair{lid, rid}] = true
			results = append(results, score(l, r))
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Left.Name != b.Left.Name {
			return a.Left.Name < b.Left.Name
		}
		return a.Right.Name < b.Right.Name
	})
	return results
}

func score(left, right ColumnProfile) ColumnPairScore {
	nameScore := columnNameScore(left.Name, right.Name)
	typeScore := baseTypeScore(left.DType, right.DType)
	overlap := overlapScore(left.Samples, right.Samples)
	unique := uniqueScore(left.UniquePct, right.UniquePct)
	null := nullSimilarityScore(left.NullPct, right.NullPct)

	s := 0.25*nameScore + 0.35*overlap + 0.2*typeScore + 0.1*unique + 0.1*null
	// Match fields are text; a numeric id column is a poor fuzzy key.
	if !left.DType.IsText() || !right.DType.IsText() {
		s *= 0.5
	}
	return ColumnPairScore{Score: s, Left: left, Right: right}
}

// overlapScore is the share of distinct sample values that have a fuzzy
// counterpart on the other side.
func overlapScore(left, right []string) float64 {
	set1 := distinctNormalized(left)
	set2 := distinctNormalized(right)
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	matched := 0
	for _, v := range set1 {
		if best, ok := linkage.SelectBest(v, set2, linkage.TokenSort); ok && best.Score >= overlapThreshold {
			matched++
		}
	}
	return float64(matched) / float64(len(set1))
}

func distinctNormalized(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		n := linkage.Normalize(v)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func uniqueScore(left, right float64) float64 {
	denom := math.Max(math.Max(left, right), 1e-6)
	return 1.0 - math.Abs(left-right)/denom
}

func nullSimilarityScore(left, right float64) float64 {
	return 1 - (math.Abs(left-right) / 100)
}
