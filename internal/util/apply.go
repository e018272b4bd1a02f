package util

import (
	"sort"

	"github.com/Alfex4936/gramcheck/internal/model"
)

// ApplyCorrections replaces each error span with its first suggestion.
// Applies right-to-left so earlier rune offsets stay valid. Items without a
// suggestion or with offsets outside input are skipped.
func ApplyCorrections(input string, items []model.Correction) string {
	if len(items) == 0 {
		return input
	}
	sorted := make([]model.Correction, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	runes := []rune(input)
	limit := len(runes)
	for _, c := range sorted {
		if len(c.Suggest) == 0 || c.Start < 0 || c.Start > c.End || c.End > limit {
			continue
		}
		repl := []rune(c.Suggest[0])
		runes = append(runes[:c.Start], append(repl, runes[c.End:]...)...)
		limit = c.Start // overlapping spans to the left are dropped
	}
	return string(runes)
}
