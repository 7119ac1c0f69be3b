package linkage

import (
	"fmt"
	"math"
	"strings"
)

// Normalize folds a raw field value into the form used for comparison.
// Nil and NaN become the empty string, which never matches anything.
func Normalize(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case []byte:
		s = string(t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		s = fmt.Sprint(t)
	case float32:
		if math.IsNaN(float64(t)) {
			return ""
		}
		s = fmt.Sprint(t)
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// Preprocess is an optional rewrite applied to normalized text of one side.
type Preprocess int

const (
	PreprocessNone Preprocess = iota
	// PreprocessCompact drops every space: "acme corp" -> "acmecorp".
	PreprocessCompact
	// PreprocessDomainLabel keeps the first dot-separated label: "foobar.com" -> "foobar".
	PreprocessDomainLabel
)

var preprocessNames = map[Preprocess]string{
	PreprocessNone:        "none",
	PreprocessCompact:     "compact",
	PreprocessDomainLabel: "domain_label",
}

func (p Preprocess) String() string {
	if name, ok := preprocessNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Preprocess(%d)", int(p))
}

// ParsePreprocess accepts the names printed by String; "" means none.
func ParsePreprocess(s string) (Preprocess, error) {
	if s == "" {
		return PreprocessNone, nil
	}
	for p, name := range preprocessNames {
		if name == s {
			return p, nil
		}
	}
	return PreprocessNone, fmt.Errorf("unknown preprocess %q", s)
}

func (p Preprocess) apply(s string) string {
	switch p {
	case PreprocessCompact:
		return strings.ReplaceAll(s, " ", "")
	case PreprocessDomainLabel:
		label, _, _ := strings.Cut(s, ".")
		return label
	default:
		return s
	}
}

// prepare is Normalize followed by the side's preprocess.
func prepare(v any, p Preprocess) string {
	return p.apply(Normalize(v))
}
