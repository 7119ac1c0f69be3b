// Package config reads linkage job files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fuzzyjoin/internal/linkage"
)

const (
	DefaultThreshold = 85
	DefaultStrategy  = "token_sort"
	DefaultFormat    = "json"
)

// Job describes one source/reference linkage run.
type Job struct {
	Source              string `yaml:"source"`
	Reference           string `yaml:"reference"`
	SourceField         string `yaml:"source_field"`
	ReferenceField      string `yaml:"reference_field"`
	Threshold           int    `yaml:"threshold"`
	Strategy            string `yaml:"strategy"`
	SourcePreprocess    string `yaml:"source_preprocess"`
	ReferencePreprocess string `yaml:"reference_preprocess"`
	Workers             int    `yaml:"workers"`
	Output              string `yaml:"output"`  // file path; empty = stdout
	Format              string `yaml:"format"`  // "json" or "csv"
	Preview             int    `yaml:"preview"` // rows to print; 0 = all
}

// Default returns a job with every optional field set.
func Default() Job {
	return Job{
		Threshold: DefaultThreshold,
		Strategy:  DefaultStrategy,
		Format:    DefaultFormat,
	}
}

// Load reads a YAML job file over Default. Unknown keys are rejected.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Job, error) {
	job := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil && !errors.Is(err, io.EOF) {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

// FieldError is one invalid job field.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field '%s' with value '%s': %s", e.Field, e.Value, e.Message)
}

// ValidationError collects every FieldError found by Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid job: " + strings.Join(msgs, "; ")
}

type validator struct {
	errors []FieldError
}

func (v *validator) add(field, value, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Value: value, Message: message})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, value, "is required")
	}
}

// Validate checks the whole job and reports every problem at once.
func (j Job) Validate() error {
	v := &validator{}
	v.required("source", j.Source)
	v.required("reference", j.Reference)
	v.required("source_field", j.SourceField)
	v.required("reference_field", j.ReferenceField)

	if j.Threshold < 0 || j.Threshold > 100 {
		v.add("threshold", fmt.Sprint(j.Threshold), "must be between 0 and 100")
	}
	if _, err := linkage.ParseStrategy(j.Strategy); err != nil {
		v.add("strategy", j.Strategy, "must be token_sort or partial")
	}
	if _, err := linkage.ParsePreprocess(j.SourcePreprocess); err != nil {
		v.add("source_preprocess", j.SourcePreprocess, "must be none, compact or domain_label")
	}
	if _, err := linkage.ParsePreprocess(j.ReferencePreprocess); err != nil {
		v.add("reference_preprocess", j.ReferencePreprocess, "must be none, compact or domain_label")
	}
	if j.Workers < 0 {
		v.add("workers", fmt.Sprint(j.Workers), "must not be negative")
	}
	if j.Format != "json" && j.Format != "csv" {
		v.add("format", j.Format, "must be json or csv")
	}
	if j.Preview < 0 {
		v.add("preview", fmt.Sprint(j.Preview), "must not be negative")
	}

	if len(v.errors) > 0 {
		return &ValidationError{Errors: v.errors}
	}
	return nil
}

// Options converts a validated job into engine options.
func (j Job) Options() (linkage.Options, error) {
	if err := j.Validate(); err != nil {
		return linkage.Options{}, err
	}
	strategy, _ := linkage.ParseStrategy(j.Strategy)
	sp, _ := linkage.ParsePreprocess(j.SourcePreprocess)
	rp, _ := linkage.ParsePreprocess(j.ReferencePreprocess)
	return linkage.Options{
		SourceField:         j.SourceField,
		ReferenceField:      j.ReferenceField,
		Threshold:           j.Threshold,
		Strategy:            strategy,
		SourcePreprocess:    sp,
		ReferencePreprocess: rp,
		Workers:             j.Workers,
	}, nil
}
