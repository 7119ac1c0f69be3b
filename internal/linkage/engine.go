package linkage

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configures a single Link call.
type Options struct {
	SourceField    string
	ReferenceField string

	// Threshold is inclusive: a candidate matches iff score >= Threshold.
	Threshold int
	Strategy  Strategy

	SourcePreprocess    Preprocess
	ReferencePreprocess Preprocess

	// Workers bounds parallel row evaluation; 0 uses GOMAXPROCS.
	Workers int

	Logger *zerolog.Logger
}

// Decision is the outcome for one source row.
type Decision struct {
	Matched bool
	// Reference is the first reference row carrying the matched text.
	Reference int
	// Duplicates lists every reference row with the same matched text,
	// Reference included, in reference order.
	Duplicates []int
	Score      float64
}

// Linkage holds one decision per source row, in source order.
type Linkage struct {
	Decisions []Decision

	referenceCol int

	// Warning is set, with kind KindEmptyReference, when the reference side
	// had nothing to match against. Every decision is then unmatched.
	Warning error
}

type Stats struct {
	Rows      int
	Matched   int
	Unmatched int
}

func (l *Linkage) Stats() Stats {
	st := Stats{Rows: len(l.Decisions)}
	for _, d := range l.Decisions {
		if d.Matched {
			st.Matched++
		}
	}
	st.Unmatched = st.Rows - st.Matched
	return st
}

// referenceIndex is the de-duplicated, read-only view of the reference
// match field.
type referenceIndex struct {
	texts []string
	rows  [][]int
}

func buildReferenceIndex(ref Dataset, col int, p Preprocess) referenceIndex {
	var idx referenceIndex
	seen := make(map[string]int)
	for i, rec := range ref.Records {
		text := prepare(rec.field(col), p)
		if text == "" {
			continue
		}
		if pos, ok := seen[text]; ok {
			idx.rows[pos] = append(idx.rows[pos], i)
			continue
		}
		seen[text] = len(idx.texts)
		idx.texts = append(idx.texts, text)
		idx.rows = append(idx.rows, []int{i})
	}
	return idx
}

func validate(source, reference Dataset, opts Options) (int, int, error) {
	if opts.Threshold < 0 || opts.Threshold > 100 {
		return 0, 0, &Error{Kind: KindInvalidThreshold, Threshold: opts.Threshold}
	}
	if !opts.Strategy.valid() {
		return 0, 0, &Error{Kind: KindInvalidStrategy, Strategy: opts.Strategy}
	}
	sc := source.Column(opts.SourceField)
	if sc < 0 {
		return 0, 0, &Error{Kind: KindSchema, Side: SideSource, Field: opts.SourceField}
	}
	rc := reference.Column(opts.ReferenceField)
	if rc < 0 {
		return 0, 0, &Error{Kind: KindSchema, Side: SideReference, Field: opts.ReferenceField}
	}
	return sc, rc, nil
}

// Link decides, for every source record, which reference record it matches.
// Structural problems are reported before any row is scored, and no partial
// result accompanies an error.
func Link(source, reference Dataset, opts Options) (*Linkage, error) {
	sc, rc, err := validate(source, reference, opts)
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	start := time.Now()

	idx := buildReferenceIndex(reference, rc, opts.ReferencePreprocess)
	l := &Linkage{
		Decisions:    make([]Decision, len(source.Records)),
		referenceCol: rc,
	}
	if len(idx.texts) == 0 {
		l.Warning = &Error{Kind: KindEmptyReference, Side: SideReference}
		for i := range l.Decisions {
			l.Decisions[i] = Decision{Reference: -1}
		}
		log.Warn().Str("reference", reference.Name).Msg("no usable reference values")
		return l, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	threshold := float64(opts.Threshold)

	var g errgroup.Group
	g.SetLimit(workers)
	for i, rec := range source.Records {
		g.Go(func() error {
			query := prepare(rec.field(sc), opts.SourcePreprocess)
			best, ok := SelectBest(query, idx.texts, opts.Strategy)
			if !ok || best.Score < threshold {
				l.Decisions[i] = Decision{Reference: -1, Score: best.Score}
				return nil
			}
			rows := idx.rows[best.Index]
			l.Decisions[i] = Decision{
				Matched:    true,
				Reference:  rows[0],
				Duplicates: rows,
				Score:      best.Score,
			}
			return nil
		})
	}
	// Row evaluation cannot fail; the group only bounds concurrency.
	g.Wait()

	st := l.Stats()
	log.Debug().
		Int("rows", st.Rows).
		Int("matched", st.Matched).
		Int("candidates", len(idx.texts)).
		Str("strategy", opts.Strategy.String()).
		Int("threshold", opts.Threshold).
		Dur("elapsed", time.Since(start)).
		Msg("linkage complete")
	return l, nil
}
