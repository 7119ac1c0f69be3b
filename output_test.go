package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzyjoin/internal/config"
	"fuzzyjoin/internal/linkage"
)

func sampleTable() *linkage.Table {
	return &linkage.Table{
		Columns: []string{"name", "domain", "match_score"},
		Rows: [][]any{
			{"Acme Corp", "acme.com", 100.0},
			{"Nobody", nil, nil},
			{"Globex", "globex.io", 87.5},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, sampleTable()))
	assert.Equal(t, "name,domain,match_score\nAcme Corp,acme.com,100\nNobody,,\nGlobex,globex.io,87.5\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, preview(sampleTable(), 1)))
	assert.JSONEq(t, `{"columns":["name","domain","match_score"],"rows":[["Acme Corp","acme.com",100]]}`, buf.String())
}

func TestPreviewDoesNotTouchTable(t *testing.T) {
	table := sampleTable()
	assert.Len(t, preview(table, 2).Rows, 2)
	assert.Len(t, preview(table, 0).Rows, 3)
	assert.Len(t, preview(table, 10).Rows, 3)
	assert.Len(t, table.Rows, 3)
}

func TestDescribe(t *testing.T) {
	assert.Nil(t, describe(nil))

	plain := errors.New("boom")
	assert.Equal(t, plain, describe(plain))

	err := fmt.Errorf("run: %w", &linkage.Error{Kind: linkage.KindSchema, Side: linkage.SideReference, Field: "Domain"})
	assert.EqualError(t, describe(err), `the reference file has no column "Domain"`)

	err = &linkage.Error{Kind: linkage.KindInvalidThreshold, Threshold: 101}
	assert.EqualError(t, describe(err), "threshold 101 is outside 0-100")
}

func TestLinkCmdJobMergesFlags(t *testing.T) {
	threshold := 70
	cmd := LinkCmd{
		Source:         "a.csv",
		Reference:      "b.csv",
		SourceField:    "name",
		ReferenceField: "company",
		Threshold:      &threshold,
		Strategy:       "partial",
	}
	job, err := cmd.job()
	require.NoError(t, err)
	assert.Equal(t, 70, job.Threshold)
	assert.Equal(t, "partial", job.Strategy)
	assert.Equal(t, config.DefaultFormat, job.Format)

	cmd = LinkCmd{Source: "a.csv"}
	_, err = cmd.job()
	var verr *config.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBandLabel(t *testing.T) {
	assert.Equal(t, "Strong Match", bandLabel(linkage.BandStrong))
	assert.Equal(t, "Possible Match", bandLabel(linkage.BandPossible))
	assert.Equal(t, "Low Match", bandLabel(linkage.BandLow))
	assert.Equal(t, "Missing input", bandLabel(linkage.BandMissing))
}

func TestWriteOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeOutput(path, "csv", sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,domain,match_score\nAcme Corp,acme.com,100\nNobody,,\nGlobex,globex.io,87.5\n", string(data))

	err = writeOutput(filepath.Join(t.TempDir(), "missing", "out.csv"), "json", sampleTable())
	assert.Error(t, err)
}
