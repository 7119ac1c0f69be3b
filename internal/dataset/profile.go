package dataset

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

type ColumnProfile struct {
	Name      string   `json:"name"`
	DType     Dtype    `json:"dtype"`
	NullPct   float64  `json:"null_pct"`
	UniquePct float64  `json:"unique_pct"`
	Samples   []string `json:"sample_values"`
}

type ColumnProfileID string

func NewColumnProfileID(cp ColumnProfile) ColumnProfileID {
	b, err := json.Marshal(cp)
	if err != nil {
		panic(err)
	}
	h := sha256.Sum256(b)
	return ColumnProfileID(hex.EncodeToString(h[:]))
}

func (cp ColumnProfile) populateTableInfo(name, dtype string) ColumnProfile {
	cp.Name = name
	cp.DType = ParseDtype(dtype)
	return cp
}

func (cp ColumnProfile) populatePcts(nullPct, uniquePct float64) ColumnProfile {
	cp.NullPct = nullPct
	cp.UniquePct = uniquePct
	return cp
}

func (cp ColumnProfile) populateSamples(samples []any) ColumnProfile {
	cp.Samples = make([]string, 0, len(samples))
	for _, s := range samples {
		if s == nil {
			continue
		}
		cp.Samples = append(cp.Samples, fmt.Sprintf("%v", s))
	}
	return cp
}

// ProfileFile registers path with inferred types and profiles it.
func ProfileFile(ctx context.Context, db *sql.DB, path string, sampleSize int) ([]ColumnProfile, error) {
	table := TableName(path)
	if err := Register(ctx, db, path, table, true); err != nil {
		return nil, err
	}
	return Profile(ctx, db, table, sampleSize)
}

// Profile describes every column of a registered table.
func Profile(ctx context.Context, db *sql.DB, table string, sampleSize int) ([]ColumnProfile, error) {
	cps, err := tableInfo(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(cps) == 0 {
		return cps, nil
	}

	cps, err = pcts(ctx, db, table, cps)
	if err != nil {
		return nil, err
	}

	if sampleSize <= 0 {
		return cps, nil
	}
	return samples(ctx, db, table, sampleSize, cps)
}

func tableInfo(ctx context.Context, db *sql.DB, table string) ([]ColumnProfile, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteString(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cps := []ColumnProfile{}
	for rows.Next() {
		var name, dtype string
		var dummy any
		if err = rows.Scan(&dummy, &name, &dtype, &dummy, &dummy, &dummy); err != nil {
			return nil, err
		}
		cps = append(cps, ColumnProfile{}.populateTableInfo(name, dtype))
	}
	return cps, rows.Err()
}

func pcts(ctx context.Context, db *sql.DB, table string, cps []ColumnProfile) ([]ColumnProfile, error) {
	var parts []string
	for _, cp := range cps {
		col := quoteIdent(cp.Name)
		parts = append(parts,
			fmt.Sprintf("COALESCE(100.0 * COUNT(DISTINCT %s) / NULLIF(COUNT(%s), 0), 0)", col, col),
			fmt.Sprintf("COALESCE(100.0 * SUM(CASE WHEN %s IS NULL THEN 1 ELSE 0 END) / NULLIF(COUNT(*), 0), 0)", col),
		)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(parts, ", "), quoteIdent(table))

	vals := make([]float64, len(parts))
	ptrs := make([]any, len(parts))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := db.QueryRowContext(ctx, query).Scan(ptrs...); err != nil {
		return nil, err
	}

	for j, cp := range cps {
		cps[j] = cp.populatePcts(vals[2*j+1], vals[2*j])
	}
	return cps, nil
}

// samples takes a repeatable reservoir sample so profiles are stable
// across runs.
func samples(ctx context.Context, db *sql.DB, table string, sampleSize int, cps []ColumnProfile) ([]ColumnProfile, error) {
	query := fmt.Sprintf("SELECT * FROM %s USING SAMPLE reservoir(%d ROWS) REPEATABLE (42)", quoteIdent(table), sampleSize)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cum := make([][]any, len(cps))
	for rows.Next() {
		vals := make([]any, len(cps))
		ptrs := make([]any, len(cps))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, val := range vals {
			cum[i] = append(cum[i], val)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, s := range cum {
		cps[i] = cps[i].populateSamples(s)
	}
	return cps, nil
}
