package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titles = []string{
	"Game of Thrones",
	"The Wire",
	"Breaking Bad",
	"Thrones",
	"Better Call Saul",
}

func indexes(matches []Match) []int {
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}

func TestFilterEmptyQuery(t *testing.T) {
	assert.Nil(t, Filter("", titles))
	assert.Nil(t, Filter("   ", titles))
	assert.Nil(t, Filter("wire", nil))
}

func TestFilterRanking(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"exact beats substring", "thrones", []int{3, 0}},
		{"prefix", "break", []int{2}},
		{"case insensitive", "THE WIRE", []int{1}},
		{"typo tolerance", "braeking bad", []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(Filter(tt.query, titles)))
		})
	}
}

func TestFilterSubsequenceHighlights(t *testing.T) {
	matches := Filter("bcs", titles)
	require.NotEmpty(t, matches)
	assert.Equal(t, 4, matches[0].Index)
	assert.NotEmpty(t, matches[0].MatchedIndexes)
	assert.GreaterOrEqual(t, matches[0].Score, 100)
}

func TestFilterTypoScoresAfterSubsequence(t *testing.T) {
	matches := Filter("thornes", titles)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 200)
	}
	// shorter title wins the tie
	assert.Equal(t, 3, matches[0].Index)
}

func TestFilterNoMatch(t *testing.T) {
	assert.Empty(t, Filter("zzzz", titles))
}

func TestAllowedTypos(t *testing.T) {
	assert.Equal(t, 0, allowedTypos(3))
	assert.Equal(t, 1, allowedTypos(5))
	assert.Equal(t, 2, allowedTypos(9))
}
