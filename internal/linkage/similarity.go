package linkage

import (
	"fmt"
	"sort"
	"strings"

	lev "github.com/texttheater/golang-levenshtein/levenshtein"
)

// Strategy selects how two normalized strings are compared.
type Strategy int

const (
	// TokenSort ignores word order: "acme corp" scores 100 against "corp acme".
	TokenSort Strategy = iota
	// Partial scores the best aligned substring of the longer string, so a
	// short name scores high against a longer compound label.
	Partial
)

func (s Strategy) String() string {
	switch s {
	case TokenSort:
		return "token_sort"
	case Partial:
		return "partial"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) valid() bool {
	return s == TokenSort || s == Partial
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "token_sort", "tokensort", "token-sort":
		return TokenSort, nil
	case "partial":
		return Partial, nil
	}
	return TokenSort, fmt.Errorf("unknown strategy %q", name)
}

// Score returns the similarity of a and b in [0,100]. Inputs are expected
// to be normalized already. An empty input always scores 0.
func Score(a, b string, s Strategy) float64 {
	if a == "" || b == "" {
		return 0
	}
	switch s {
	case Partial:
		return partialRatio([]rune(a), []rune(b))
	default:
		return ratio([]rune(sortTokens(a)), []rune(sortTokens(b)))
	}
}

// ratio is the Indel similarity: substitutions cost 2, so a substitution is
// never cheaper than a delete plus an insert.
func ratio(a, b []rune) float64 {
	return 100 * lev.RatioForStrings(a, b, lev.DefaultOptions)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func partialRatio(a, b []rune) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	best := alignedRatio(a, b)
	if len(a) == len(b) && best < 100 {
		if r := alignedRatio(b, a); r > best {
			best = r
		}
	}
	return best
}

// alignedRatio slides short across long, including windows that hang off
// either end, and keeps the best ratio.
func alignedRatio(short, long []rune) float64 {
	m, n := len(short), len(long)
	best := 0.0
	consider := func(window []rune) bool {
		if r := ratio(short, window); r > best {
			best = r
		}
		return best >= 100
	}
	for i := 0; i <= n-m; i++ {
		if consider(long[i : i+m]) {
			return best
		}
	}
	for i := 1; i < m; i++ {
		if consider(long[:i]) || consider(long[n-i:]) {
			return best
		}
	}
	return best
}
