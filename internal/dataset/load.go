// Package dataset loads tabular files through duckdb and profiles their
// columns to help choose match fields.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"

	"fuzzyjoin/internal/linkage"
)

// Open returns an in-memory duckdb handle. Tables registered on it are
// temporary and vanish on Close.
func Open() (*sql.DB, error) {
	return sql.Open("duckdb", "")
}

// ResolvePath returns the absolute path of a supported file.
func ResolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".csv", ".xlsx":
		return abs, nil
	}
	return "", fmt.Errorf("not a CSV or XLSX file: %s", abs)
}

// TableName derives a table name from the file's base name.
func TableName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Register creates a temp table named table from path. With typed unset
// every column is read as VARCHAR so identifiers like "00123" survive.
func Register(ctx context.Context, db *sql.DB, path, table string, typed bool) error {
	abs, err := ResolvePath(path)
	if err != nil {
		return err
	}

	var reader string
	if strings.EqualFold(filepath.Ext(abs), ".xlsx") {
		if _, err := db.ExecContext(ctx, "INSTALL excel; LOAD excel;"); err != nil {
			return fmt.Errorf("load excel extension: %w", err)
		}
		reader = fmt.Sprintf("read_xlsx(%s, all_varchar = %t)", quoteString(abs), !typed)
	} else {
		reader = fmt.Sprintf("read_csv(%s, nullstr = ['null', ''], null_padding = true, all_varchar = %t)", quoteString(abs), !typed)
	}

	query := fmt.Sprintf("CREATE OR REPLACE TEMP TABLE %s AS SELECT * FROM %s", quoteIdent(table), reader)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("register %s: %w", abs, err)
	}
	return nil
}

// Read returns every row of table in file order.
func Read(ctx context.Context, db *sql.DB, table string) (linkage.Dataset, error) {
	ds := linkage.Dataset{Name: table}
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", quoteIdent(table)))
	if err != nil {
		return ds, err
	}
	defer rows.Close()

	ds.Columns, err = rows.Columns()
	if err != nil {
		return ds, err
	}
	for rows.Next() {
		vals := make([]any, len(ds.Columns))
		ptrs := make([]any, len(ds.Columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return ds, err
		}
		ds.Records = append(ds.Records, linkage.Record(vals))
	}
	return ds, rows.Err()
}

// Load registers path as table, text only, and reads it back.
func Load(ctx context.Context, db *sql.DB, path, table string) (linkage.Dataset, error) {
	if err := Register(ctx, db, path, table, false); err != nil {
		return linkage.Dataset{}, err
	}
	return Read(ctx, db, table)
}
