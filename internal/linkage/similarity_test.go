package linkage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTokenSort(t *testing.T) {
	assert.Equal(t, 100.0, Score("acme corp", "corp acme", TokenSort))
	assert.Equal(t, 100.0, Score("acme", "acme", TokenSort))
	assert.InDelta(t, 66.667, Score("foo", "foobar", TokenSort), 0.01)
	assert.Equal(t, 0.0, Score("abc", "xyz", TokenSort))
}

func TestScorePartial(t *testing.T) {
	assert.Equal(t, 100.0, Score("foo", "foobar", Partial))
	assert.Equal(t, 100.0, Score("foobar", "foo", Partial))
	assert.Equal(t, 100.0, Score("bar", "foobar", Partial))
	assert.Equal(t, 0.0, Score("zzz", "bar", Partial))
}

func TestScoreEmptyInput(t *testing.T) {
	for _, s := range []Strategy{TokenSort, Partial} {
		assert.Equal(t, 0.0, Score("", "", s))
		assert.Equal(t, 0.0, Score("", "acme", s))
		assert.Equal(t, 0.0, Score("acme", "", s))
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"acme corp", "acme corporation"},
		{"abcd", "xbcdy"},
		{"abcd", "dcba"},
		{"globex", "initech"},
		{"hooli", "hooli xyz"},
	}
	for _, p := range pairs {
		for _, s := range []Strategy{TokenSort, Partial} {
			assert.Equal(t, Score(p[0], p[1], s), Score(p[1], p[0], s), "%s %q %q", s, p[0], p[1])
		}
	}
}

func TestScoreBounds(t *testing.T) {
	words := []string{"a", "acme", "acme corp", "corp", "xyz ltd", "the acme company"}
	for _, a := range words {
		for _, b := range words {
			for _, s := range []Strategy{TokenSort, Partial} {
				got := Score(a, b, s)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
			}
		}
	}
}

func TestStrategyNames(t *testing.T) {
	for _, s := range []Strategy{TokenSort, Partial} {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStrategy("phonetic")
	assert.Error(t, err)
}

func TestSelectBest(t *testing.T) {
	got, ok := SelectBest("acme corp", []string{"other llc", "corp acme"}, TokenSort)
	require.True(t, ok)
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, 100.0, got.Score)
}

func TestSelectBestTieBreak(t *testing.T) {
	// "abc x" and "abc y" score the same against "abc".
	for range 20 {
		got, ok := SelectBest("abc", []string{"zzz", "abc x", "abc y"}, TokenSort)
		require.True(t, ok)
		assert.Equal(t, 1, got.Index)
		assert.Equal(t, 75.0, got.Score)
	}
}

func TestSelectBestNone(t *testing.T) {
	_, ok := SelectBest("", []string{"acme"}, TokenSort)
	assert.False(t, ok)

	_, ok = SelectBest("acme", nil, TokenSort)
	assert.False(t, ok)

	_, ok = SelectBest("acme", []string{"", ""}, Partial)
	assert.False(t, ok)
}

func TestSelectBestZeroScoreStillCandidate(t *testing.T) {
	got, ok := SelectBest("abc", []string{"xyz"}, TokenSort)
	require.True(t, ok)
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, 0.0, got.Score)
}
