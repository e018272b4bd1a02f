package util

import "github.com/hbollon/go-edlib"

// Levenshtein returns the rune-level edit distance between two strings.
func Levenshtein(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}
