package linkage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"nan", math.NaN(), ""},
		{"trim and fold", "  ACME CORP  ", "acme corp"},
		{"inner whitespace kept", "Acme   Corp", "acme   corp"},
		{"punctuation kept", "Acme, Inc.", "acme, inc."},
		{"bytes", []byte(" Foo "), "foo"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"blank", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeInvariance(t *testing.T) {
	assert.Equal(t, Normalize("Acme Corp"), Normalize("  ACME CORP  "))
}

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "acmecorp", prepare(" Acme Corp ", PreprocessCompact))
	assert.Equal(t, "foobar", prepare("FooBar.com", PreprocessDomainLabel))
	assert.Equal(t, "foobar", prepare("foobar", PreprocessDomainLabel))
	assert.Equal(t, "acme corp", prepare("Acme Corp", PreprocessNone))
	assert.Equal(t, "", prepare(nil, PreprocessDomainLabel))
}

func TestParsePreprocess(t *testing.T) {
	for _, p := range []Preprocess{PreprocessNone, PreprocessCompact, PreprocessDomainLabel} {
		got, err := ParsePreprocess(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePreprocess("")
	assert.NoError(t, err)
	assert.Equal(t, PreprocessNone, got)

	_, err = ParsePreprocess("soundex")
	assert.Error(t, err)
}
