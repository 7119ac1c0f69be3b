package dataset

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	lev "github.com/texttheater/golang-levenshtein/levenshtein"
)

// tokenize splits a column name on separators and camelCase boundaries.
func tokenize(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var tokens []string
	for _, p := range parts {
		var cur strings.Builder
		for i, r := range p {
			if i > 0 && unicode.IsUpper(r) {
				tokens = append(tokens, strings.ToLower(cur.String()))
				cur.Reset()
			}
			cur.WriteRune(r)
		}
		if cur.Len() > 0 {
			tokens = append(tokens, strings.ToLower(cur.String()))
		}
	}
	return tokens
}

func jaccard(tokens1, tokens2 []string) float64 {
	set1 := make(map[string]struct{})
	for _, t := range tokens1 {
		set1[t] = struct{}{}
	}
	set2 := make(map[string]struct{})
	for _, t := range tokens2 {
		set2[t] = struct{}{}
	}

	intersect := 0
	union := make(map[string]struct{})
	for t := range set1 {
		union[t] = struct{}{}
		if _, ok := set2[t]; ok {
			intersect++
		}
	}
	for t := range set2 {
		union[t] = struct{}{}
	}

	if len(union) == 0 {
		return 0.0
	}
	return float64(intersect) / float64(len(union))
}

// columnNameScore is in [0,1]; 1 means the names are equal ignoring case.
func columnNameScore(name1, name2 string) float64 {
	n1 := strings.ToLower(name1)
	n2 := strings.ToLower(name2)

	if n1 == n2 {
		return 1.0
	}
	if n1 == "" || n2 == "" {
		return 0.0
	}
	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return 0.8
	}

	best := jaccard(tokenize(name1), tokenize(name2))

	r1, r2 := []rune(n1), []rune(n2)
	dist := lev.DistanceForStrings(r1, r2, lev.DefaultOptions)
	maxLen := float64(max(len(r1), len(r2)))
	if editScore := 1.0 - float64(dist)/maxLen; editScore > best {
		best = editScore
	}

	// Jaro-Winkler favours shared prefixes such as "company" / "company_name".
	if jw := float64(edlib.JaroWinklerSimilarity(n1, n2)) * 0.9; jw > best {
		best = jw
	}
	return best
}
