package linkage

// Band is a coarse confidence label for a score.
type Band int

const (
	BandLow Band = iota
	BandPossible
	BandStrong
	// BandMissing marks a comparison where one side was empty.
	BandMissing
)

func (b Band) String() string {
	switch b {
	case BandStrong:
		return "strong"
	case BandPossible:
		return "possible"
	case BandMissing:
		return "missing"
	default:
		return "low"
	}
}

// BandFor labels a score: above 90 is strong, above 70 possible.
func BandFor(score float64) Band {
	switch {
	case score > 90:
		return BandStrong
	case score > 70:
		return BandPossible
	default:
		return BandLow
	}
}

// PairResult compares two fields of the same record.
type PairResult struct {
	Left  any
	Right any
	Band  Band
	Score float64
}

// PairOptions configures ComparePairs. DefaultPairOptions matches the
// company-against-domain check.
type PairOptions struct {
	Strategy        Strategy
	LeftPreprocess  Preprocess
	RightPreprocess Preprocess
}

func DefaultPairOptions() PairOptions {
	return PairOptions{
		Strategy:        Partial,
		LeftPreprocess:  PreprocessCompact,
		RightPreprocess: PreprocessDomainLabel,
	}
}

// ComparePairs scores left against right within each record of ds, without
// searching other rows. One result is returned per record.
func ComparePairs(ds Dataset, left, right string, opts PairOptions) ([]PairResult, error) {
	if !opts.Strategy.valid() {
		return nil, &Error{Kind: KindInvalidStrategy, Strategy: opts.Strategy}
	}
	lc := ds.Column(left)
	if lc < 0 {
		return nil, &Error{Kind: KindSchema, Side: SideSource, Field: left}
	}
	rc := ds.Column(right)
	if rc < 0 {
		return nil, &Error{Kind: KindSchema, Side: SideSource, Field: right}
	}

	out := make([]PairResult, len(ds.Records))
	for i, rec := range ds.Records {
		res := PairResult{Left: rec.field(lc), Right: rec.field(rc)}
		if missing(res.Left) || missing(res.Right) {
			res.Band = BandMissing
		} else {
			a := prepare(res.Left, opts.LeftPreprocess)
			b := prepare(res.Right, opts.RightPreprocess)
			res.Score = Score(a, b, opts.Strategy)
			res.Band = BandFor(res.Score)
		}
		out[i] = res
	}
	return out, nil
}

// missing reports an absent cell: null, NaN or the empty string. Blank text
// is present and simply scores 0.
func missing(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case []byte:
		return len(t) == 0
	}
	return Normalize(v) == ""
}
