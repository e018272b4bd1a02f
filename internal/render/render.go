// Package render turns comparison and grammar results into text for people:
// styled terminal output and HTML markup.
package render

import (
	"fmt"
	"strings"

	"github.com/Alfex4936/gramcheck/internal/model"
)

// segments cuts text into alternating plain/flagged runs. Overlapping
// windows are merged into one run.
func segments(text string, flagged []model.FlaggedWindow) (parts []string, marked []bool) {
	runes := []rune(text)
	mask := make([]bool, len(runes))
	for _, f := range flagged {
		for i := max(f.Start, 0); i < min(f.End, len(runes)); i++ {
			mask[i] = true
		}
	}
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || mask[i] != mask[start] {
			parts = append(parts, string(runes[start:i]))
			marked = append(marked, mask[start])
			start = i
		}
	}
	return parts, marked
}

// Summary is a one-line tally of a comparison.
func Summary(res *model.Result) string {
	c := res.Counts
	return fmt.Sprintf("%d unchanged, %d substituted, %d removed, %d added; edit distance %d",
		c.Unchanged, c.Substituted, c.Removed, c.Added, res.EditDistance)
}

func windowList(gr *model.GrammarResult) string {
	if len(gr.Flagged) == 0 {
		return fmt.Sprintf("all %d windows of size %d are plausible", gr.WindowCount, gr.N)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d windows of size %d never occur in the corpus:", len(gr.Flagged), gr.WindowCount, gr.N)
	for _, f := range gr.Flagged {
		fmt.Fprintf(&b, "\n  (%s)", strings.Join(f.Window, ", "))
	}
	return b.String()
}
