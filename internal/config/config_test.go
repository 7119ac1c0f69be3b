package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzyjoin/internal/linkage"
)

const jobYAML = `
source: companies.csv
reference: domains.xlsx
source_field: Company
reference_field: Domain
threshold: 90
strategy: partial
source_preprocess: compact
reference_preprocess: domain_label
workers: 4
format: csv
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(jobYAML), 0o644))

	job, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "companies.csv", job.Source)
	assert.Equal(t, 90, job.Threshold)
	assert.Equal(t, "csv", job.Format)

	opts, err := job.Options()
	require.NoError(t, err)
	assert.Equal(t, linkage.Options{
		SourceField:         "Company",
		ReferenceField:      "Domain",
		Threshold:           90,
		Strategy:            linkage.Partial,
		SourcePreprocess:    linkage.PreprocessCompact,
		ReferencePreprocess: linkage.PreprocessDomainLabel,
		Workers:             4,
	}, opts)
}

func TestParseDefaults(t *testing.T) {
	job, err := Parse([]byte("source: a.csv\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultThreshold, job.Threshold)
	assert.Equal(t, DefaultStrategy, job.Strategy)
	assert.Equal(t, DefaultFormat, job.Format)

	job, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), job)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("treshold: 80\n"))
	assert.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	job := Default()
	job.Threshold = 101
	job.Strategy = "soundex"
	job.Format = "xml"

	err := job.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, len(verr.Errors))
	for i, fe := range verr.Errors {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{
		"source", "reference", "source_field", "reference_field",
		"threshold", "strategy", "format",
	}, fields)

	_, err = job.Options()
	assert.ErrorAs(t, err, &verr)
}
