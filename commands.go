package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"fuzzyjoin/internal/config"
	"fuzzyjoin/internal/dataset"
	"fuzzyjoin/internal/linkage"
)

type LinkCmd struct {
	Config    string `help:"YAML job file. Flags override its values." short:"c" type:"existingfile"`
	Source    string `arg:"" optional:"" help:"Source CSV or XLSX file" type:"path"`
	Reference string `arg:"" optional:"" help:"Reference CSV or XLSX file" type:"path"`

	SourceField         string `help:"Match column in the source file" env:"FUZZYJOIN_SOURCE_FIELD"`
	ReferenceField      string `help:"Match column in the reference file" env:"FUZZYJOIN_REFERENCE_FIELD"`
	Threshold           *int   `help:"Minimum score, 0-100, for a match (default 85)" env:"FUZZYJOIN_THRESHOLD"`
	Strategy            string `help:"token_sort or partial (default token_sort)" env:"FUZZYJOIN_STRATEGY"`
	SourcePreprocess    string `help:"none, compact or domain_label"`
	ReferencePreprocess string `help:"none, compact or domain_label"`
	Workers             *int   `help:"Parallel row workers; 0 uses all CPUs" env:"FUZZYJOIN_WORKERS"`
	Format              string `help:"json or csv (default json)"`
	Output              string `help:"Output file; stdout when empty" short:"o" type:"path"`
	Preview             *int   `help:"Print only the first N rows"`
}

// job merges the config file, if any, with flags set on the command line.
func (l *LinkCmd) job() (config.Job, error) {
	job := config.Default()
	if l.Config != "" {
		var err error
		if job, err = config.Load(l.Config); err != nil {
			return job, err
		}
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&job.Source, l.Source)
	override(&job.Reference, l.Reference)
	override(&job.SourceField, l.SourceField)
	override(&job.ReferenceField, l.ReferenceField)
	override(&job.Strategy, l.Strategy)
	override(&job.SourcePreprocess, l.SourcePreprocess)
	override(&job.ReferencePreprocess, l.ReferencePreprocess)
	override(&job.Format, l.Format)
	override(&job.Output, l.Output)
	if l.Threshold != nil {
		job.Threshold = *l.Threshold
	}
	if l.Workers != nil {
		job.Workers = *l.Workers
	}
	if l.Preview != nil {
		job.Preview = *l.Preview
	}
	return job, job.Validate()
}

func (l *LinkCmd) Run(log *zerolog.Logger) error {
	job, err := l.job()
	if err != nil {
		return err
	}
	opts, err := job.Options()
	if err != nil {
		return err
	}
	opts.Logger = log

	ctx := context.Background()
	db, err := dataset.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	source, err := dataset.Load(ctx, db, job.Source, "source")
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	reference, err := dataset.Load(ctx, db, job.Reference, "reference")
	if err != nil {
		return fmt.Errorf("load reference: %w", err)
	}
	log.Info().
		Int("source_rows", source.Len()).
		Int("reference_rows", reference.Len()).
		Msg("datasets loaded")

	result, err := linkage.Link(source, reference, opts)
	if err != nil {
		return err
	}
	if result.Warning != nil {
		log.Warn().Msg(describe(result.Warning).Error())
	}
	st := result.Stats()
	log.Info().Int("matched", st.Matched).Int("unmatched", st.Unmatched).Msg("linkage done")

	table := linkage.Compose(source, reference, result, linkage.ComposeOptions{
		ScoreColumn: "match_score",
		BandColumn:  "match_band",
	})
	return writeOutput(job.Output, job.Format, preview(table, job.Preview))
}

type PairCmd struct {
	Path            string `arg:"" name:"path" help:"CSV or XLSX file with both columns" type:"path"`
	Left            string `help:"Left column" default:"Company"`
	Right           string `help:"Right column" default:"Domain"`
	Strategy        string `help:"token_sort or partial" enum:"token_sort,partial" default:"partial"`
	LeftPreprocess  string `help:"none, compact or domain_label" enum:"none,compact,domain_label" default:"compact"`
	RightPreprocess string `help:"none, compact or domain_label" enum:"none,compact,domain_label" default:"domain_label"`
	Format          string `help:"Output format" enum:"json,csv" default:"json"`
	Output          string `help:"Output file; stdout when empty" short:"o" type:"path"`
}

func (p *PairCmd) Run(log *zerolog.Logger) error {
	var opts linkage.PairOptions
	var err error
	if opts.Strategy, err = linkage.ParseStrategy(p.Strategy); err != nil {
		return err
	}
	if opts.LeftPreprocess, err = linkage.ParsePreprocess(p.LeftPreprocess); err != nil {
		return err
	}
	if opts.RightPreprocess, err = linkage.ParsePreprocess(p.RightPreprocess); err != nil {
		return err
	}

	db, err := dataset.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	ds, err := dataset.Load(context.Background(), db, p.Path, "pairs")
	if err != nil {
		return err
	}
	results, err := linkage.ComparePairs(ds, p.Left, p.Right, opts)
	if err != nil {
		return err
	}
	log.Debug().Int("rows", len(results)).Msg("pairs compared")

	table := &linkage.Table{Columns: []string{p.Left, p.Right, "Result", "Score"}}
	for _, r := range results {
		table.Rows = append(table.Rows, []any{r.Left, r.Right, bandLabel(r.Band), r.Score})
	}
	return writeOutput(p.Output, p.Format, table)
}

type ProfileCmd struct {
	Path       string `arg:"" required:"" name:"path" help:"Path to CSV profile" type:"path"`
	SampleSize int    `arg:"" optional:"" help:"Rows to sample" default:"5"`
}

func (p *ProfileCmd) Run() error {
	db, err := dataset.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	cps, err := dataset.ProfileFile(context.Background(), db, p.Path, p.SampleSize)
	if err != nil {
		return err
	}
	return printJSON(cps)
}

type SuggestCmd struct {
	LeftPath   string `arg:"" name:"left" help:"Left CSV or XLSX file" type:"path"`
	RightPath  string `arg:"" name:"right" help:"Right CSV or XLSX file" type:"path"`
	SampleSize int    `arg:"" optional:"" help:"Rows to sample" default:"100"`
	Top        int    `help:"Show only the best N pairs; 0 shows all" default:"5"`
}

func (s *SuggestCmd) Run(log *zerolog.Logger) error {
	ctx := context.Background()
	db, err := dataset.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	left, err := profileAs(ctx, db, s.LeftPath, "left", s.SampleSize)
	if err != nil {
		return err
	}
	right, err := profileAs(ctx, db, s.RightPath, "right", s.SampleSize)
	if err != nil {
		return err
	}

	scores := dataset.Suggest(left, right)
	log.Debug().Int("pairs", len(scores)).Msg("column pairs scored")
	if s.Top > 0 && len(scores) > s.Top {
		scores = scores[:s.Top]
	}
	return printJSON(scores)
}

func profileAs(ctx context.Context, db *sql.DB, path, table string, sampleSize int) ([]dataset.ColumnProfile, error) {
	if err := dataset.Register(ctx, db, path, table, true); err != nil {
		return nil, err
	}
	return dataset.Profile(ctx, db, table, sampleSize)
}

func bandLabel(b linkage.Band) string {
	switch b {
	case linkage.BandStrong:
		return "Strong Match"
	case linkage.BandPossible:
		return "Possible Match"
	case linkage.BandMissing:
		return "Missing input"
	default:
		return "Low Match"
	}
}

// describe turns engine errors into messages for the terminal.
func describe(err error) error {
	if err == nil {
		return nil
	}
	var e *linkage.Error
	if !errors.As(err, &e) {
		return err
	}
	switch e.Kind {
	case linkage.KindSchema:
		return fmt.Errorf("the %s file has no column %q", e.Side, e.Field)
	case linkage.KindInvalidThreshold:
		return fmt.Errorf("threshold %d is outside 0-100", e.Threshold)
	case linkage.KindInvalidStrategy:
		return fmt.Errorf("unknown strategy %s", e.Strategy)
	case linkage.KindEmptyReference:
		return fmt.Errorf("the %s file has no usable values in its match column; every row is unmatched", e.Side)
	}
	return fmt.Errorf("%s", strings.TrimPrefix(err.Error(), "linkage: "))
}
