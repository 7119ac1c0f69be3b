package linkage

const (
	sourceSuffix    = "_source"
	referenceSuffix = "_reference"
)

// Table is the joined output: one row per source record.
type Table struct {
	Columns []string
	Rows    [][]any
}

// ComposeOptions adds optional derived columns. Empty names omit them.
type ComposeOptions struct {
	ScoreColumn string
	BandColumn  string
}

// Compose left-joins reference fields onto every source record according to
// l. The reference match field itself is not repeated. Unmatched rows carry
// nil in every reference cell.
func Compose(source, reference Dataset, l *Linkage, opts ComposeOptions) *Table {
	refCols := make([]int, 0, len(reference.Columns))
	for i := range reference.Columns {
		if i != l.referenceCol {
			refCols = append(refCols, i)
		}
	}

	inSource := make(map[string]bool, len(source.Columns))
	for _, c := range source.Columns {
		inSource[c] = true
	}
	collide := make(map[string]bool)
	for _, i := range refCols {
		if name := reference.Columns[i]; inSource[name] {
			collide[name] = true
		}
	}

	t := &Table{}
	var suffixed []int
	add := func(name string) {
		if collide[name] {
			suffixed = append(suffixed, len(t.Columns))
		}
		t.Columns = append(t.Columns, name)
	}
	for _, c := range source.Columns {
		add(c)
	}
	for _, i := range refCols {
		add(reference.Columns[i])
	}
	// Suffixed names must not clash with any other output column.
	taken := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !collide[c] {
			taken = append(taken, c)
		}
	}
	for _, pos := range suffixed {
		suffix := referenceSuffix
		if pos < len(source.Columns) {
			suffix = sourceSuffix
		}
		name := uniqueName(taken, t.Columns[pos]+suffix)
		taken = append(taken, name)
		t.Columns[pos] = name
	}
	scoreCol, bandCol := -1, -1
	if opts.ScoreColumn != "" {
		scoreCol = len(t.Columns)
		t.Columns = append(t.Columns, uniqueName(t.Columns, opts.ScoreColumn))
	}
	if opts.BandColumn != "" {
		bandCol = len(t.Columns)
		t.Columns = append(t.Columns, uniqueName(t.Columns, opts.BandColumn))
	}

	width := len(t.Columns)
	t.Rows = make([][]any, len(source.Records))
	for r, rec := range source.Records {
		row := make([]any, width)
		for c := range source.Columns {
			row[c] = rec.field(c)
		}
		d := l.Decisions[r]
		if d.Matched {
			ref := reference.Records[d.Reference]
			for j, i := range refCols {
				row[len(source.Columns)+j] = ref.field(i)
			}
			if scoreCol >= 0 {
				row[scoreCol] = d.Score
			}
			if bandCol >= 0 {
				row[bandCol] = BandFor(d.Score).String()
			}
		}
		t.Rows[r] = row
	}
	return t
}

func uniqueName(taken []string, name string) string {
	for {
		clash := false
		for _, c := range taken {
			if c == name {
				clash = true
				break
			}
		}
		if !clash {
			return name
		}
		name += "_"
	}
}
