package render

import (
	"html"
	"strings"

	"github.com/Alfex4936/gramcheck/internal/model"
)

// HTML renders spans as escaped text with <del>/<ins> markup.
func HTML(spans []model.EditSpan) string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		switch s.Kind {
		case model.Unchanged:
			out = append(out, html.EscapeString(s.Corrected))
		case model.Removed:
			out = append(out, "<del>"+html.EscapeString(s.Original)+"</del>")
		case model.Added:
			out = append(out, "<ins>"+html.EscapeString(s.Corrected)+"</ins>")
		case model.Substituted:
			out = append(out, `<del class="sub">`+html.EscapeString(s.Original)+`</del>`+
				`<ins class="sub">`+html.EscapeString(s.Corrected)+`</ins>`)
		}
	}
	return strings.Join(out, " ")
}

// GrammarHTML wraps flagged windows of the checked text in <mark>.
func GrammarHTML(gr *model.GrammarResult) string {
	parts, marked := segments(gr.Text, gr.Flagged)
	var b strings.Builder
	for i, p := range parts {
		if marked[i] {
			b.WriteString("<mark>" + html.EscapeString(p) + "</mark>")
		} else {
			b.WriteString(html.EscapeString(p))
		}
	}
	return b.String()
}
