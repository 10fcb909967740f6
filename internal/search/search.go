// Package search ranks cached titles against a free-text query without
// touching the network.
package search

import (
	"sort"
	"strings"
	"unicode"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Match is one ranked hit
type Match struct {
	Index          int   // Index in source slice
	Score          int   // Match score (lower = better)
	MatchedIndexes []int // Character positions that matched (for highlighting)
}

// titleSource implements sahilm/fuzzy.Source over pre-lowered titles
type titleSource []string

func (s titleSource) String(i int) string { return s[i] }
func (s titleSource) Len() int            { return len(s) }

// Filter returns every title matching query, best first.
//
// Scoring tiers:
//  1. exact, prefix and substring hits
//  2. in-order subsequence hits ("gme thr" matches "Game of Thrones")
//  3. per-word typo tolerance ("thornes" matches "Game of Thrones")
func Filter(query string, titles []string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(titles) == 0 {
		return nil
	}

	lower := make(titleSource, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}

	var matches []Match
	seen := make(map[int]bool)

	for _, m := range fuzzy.FindFrom(query, lower) {
		matches = append(matches, Match{
			Index:          m.Index,
			Score:          rank(query, lower[m.Index], m.Score),
			MatchedIndexes: m.MatchedIndexes,
		})
		seen[m.Index] = true
	}

	queryWords := words(query)
	for i, title := range lower {
		if seen[i] {
			continue
		}
		if dist, ok := typoDistance(queryWords, words(title)); ok {
			matches = append(matches, Match{Index: i, Score: 200 + dist*20})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return len(titles[matches[i].Index]) < len(titles[matches[j].Index])
	})
	return matches
}

// rank maps a subsequence hit onto the score scale. fuzzyScore is sahilm's
// score where higher is better.
func rank(query, title string, fuzzyScore int) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	}
	if idx := strings.Index(title, query); idx >= 0 {
		return 50 + min(idx, 49)
	}
	return 100 + max(0, min(99, 50-fuzzyScore))
}

// typoDistance reports whether every query word is within the allowed
// number of edits of some distinct title word, and the summed distance.
func typoDistance(queryWords, titleWords []string) (int, bool) {
	if len(queryWords) == 0 {
		return 0, false
	}
	used := make([]bool, len(titleWords))
	total := 0
	for _, q := range queryWords {
		best, bestIdx := -1, -1
		limit := allowedTypos(len([]rune(q)))
		for i, t := range titleWords {
			if used[i] {
				continue
			}
			d := fuzzysearch.LevenshteinDistance(q, t)
			if d <= limit && (best < 0 || d < best) {
				best, bestIdx = d, i
			}
		}
		if bestIdx < 0 {
			return 0, false
		}
		used[bestIdx] = true
		total += best
	}
	return total, true
}

// allowedTypos returns the number of typos allowed based on word length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
