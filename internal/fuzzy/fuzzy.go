// Package fuzzy provides edit-distance based lexical similarity scores
// in the 0-100 range, plus top-N candidate extraction.
package fuzzy

import (
	"sort"
	"strings"
)

// Ratio scores the lexical similarity of two strings from 0 (completely
// different) to 100 (identical). Comparison is case-insensitive.
func Ratio(s1, s2 string) int {
	s1 = strings.ToLower(strings.TrimSpace(s1))
	s2 = strings.ToLower(strings.TrimSpace(s2))

	if s1 == s2 {
		return 100
	}

	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 100
	}

	distance := levenshteinDistance(s1, s2)
	return int(100 * (1.0 - float64(distance)/float64(maxLen)))
}

// TokenSortRatio is Ratio computed after sorting each string's whitespace
// and hyphen separated tokens, so word order does not affect the score.
func TokenSortRatio(s1, s2 string) int {
	return Ratio(sortTokens(s1), sortTokens(s2))
}

func sortTokens(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_'
	})
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Match pairs a candidate string with its similarity score.
type Match struct {
	Target string
	Score  int
}

// Extract returns up to limit choices ranked by descending Ratio against the
// query. Ties keep the choices' original order, so results are deterministic
// for a fixed query and candidate set.
func Extract(query string, choices []string, limit int) []string {
	matches := make([]Match, len(choices))
	for i, choice := range choices {
		matches[i] = Match{Target: choice, Score: Ratio(query, choice)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > len(matches) {
		limit = len(matches)
	}
	results := make([]string, limit)
	for i := 0; i < limit; i++ {
		results[i] = matches[i].Target
	}
	return results
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Create matrix
	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	// Fill matrix
	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = minOf(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func minOf(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
