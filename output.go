package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"fuzzyjoin/internal/linkage"
)

// preview caps the rows shown to the user; the table itself is complete.
func preview(t *linkage.Table, n int) *linkage.Table {
	if n <= 0 || len(t.Rows) <= n {
		return t
	}
	return &linkage.Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

func writeOutput(path, format string, t *linkage.Table) (err error) {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if format == "csv" {
		return writeCSV(w, t)
	}
	return writeJSON(w, t)
}

type jsonTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func writeJSON(w io.Writer, t *linkage.Table) error {
	rows := t.Rows
	if rows == nil {
		rows = [][]any{}
	}
	return json.NewEncoder(w).Encode(jsonTable{Columns: t.Columns, Rows: rows})
}

func writeCSV(w io.Writer, t *linkage.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = cell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func printJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
