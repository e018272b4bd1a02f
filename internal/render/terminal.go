package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Alfex4936/gramcheck/internal/model"
)

var (
	destructive = lipgloss.Color("#e53935")
	success     = lipgloss.Color("#8BC34A")
	warning     = lipgloss.Color("#FFC107")
	muted       = lipgloss.Color("#8a94a6")
)

// Terminal renders results for a console. Without color it falls back to
// wdiff-style markers: [-removed-] {+added+}.
type Terminal struct {
	color   bool
	removed lipgloss.Style
	added   lipgloss.Style
	flagged lipgloss.Style
	dim     lipgloss.Style
}

// NewTerminal returns a renderer; color selects ANSI styling.
func NewTerminal(color bool) *Terminal {
	t := &Terminal{
		color:   color,
		removed: lipgloss.NewStyle(),
		added:   lipgloss.NewStyle(),
		flagged: lipgloss.NewStyle(),
		dim:     lipgloss.NewStyle(),
	}
	if color {
		t.removed = t.removed.Foreground(destructive).Strikethrough(true)
		t.added = t.added.Foreground(success).Underline(true)
		t.flagged = t.flagged.Foreground(warning).Bold(true)
		t.dim = t.dim.Foreground(muted)
	}
	return t
}

func (t *Terminal) faint(s string) string {
	if !t.color {
		return s
	}
	return t.dim.Render(s)
}

func (t *Terminal) del(s string) string {
	if !t.color {
		return "[-" + s + "-]"
	}
	return t.removed.Render(s)
}

func (t *Terminal) ins(s string) string {
	if !t.color {
		return "{+" + s + "+}"
	}
	return t.added.Render(s)
}

// Spans renders the aligned tokens on one line. Substituted words show
// their character-level detail when present.
func (t *Terminal) Spans(spans []model.EditSpan) string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		switch s.Kind {
		case model.Unchanged:
			out = append(out, s.Corrected)
		case model.Removed:
			out = append(out, t.del(s.Original))
		case model.Added:
			out = append(out, t.ins(s.Corrected))
		case model.Substituted:
			out = append(out, t.substitution(s))
		}
	}
	return strings.Join(out, " ")
}

func (t *Terminal) substitution(s model.EditSpan) string {
	if len(s.Detail) == 0 || !t.color {
		return t.del(s.Original) + t.faint("→") + t.ins(s.Corrected)
	}
	var b strings.Builder
	for _, op := range s.Detail {
		switch op.Kind {
		case model.Removed:
			b.WriteString(t.removed.Render(op.Text))
		case model.Added:
			b.WriteString(t.added.Render(op.Text))
		default:
			b.WriteString(op.Text)
		}
	}
	return b.String()
}

// Result renders the spans followed by a summary line.
func (t *Terminal) Result(res *model.Result) string {
	return t.Spans(res.Spans) + "\n" + t.faint(Summary(res))
}

// Grammar prints the text with flagged windows highlighted, then lists them.
func (t *Terminal) Grammar(gr *model.GrammarResult) string {
	parts, marked := segments(gr.Text, gr.Flagged)
	var b strings.Builder
	for i, p := range parts {
		switch {
		case !marked[i]:
			b.WriteString(p)
		case t.color:
			b.WriteString(t.flagged.Render(p))
		default:
			b.WriteString(">>" + p + "<<")
		}
	}
	b.WriteString("\n")
	b.WriteString(t.faint(windowList(gr)))
	return b.String()
}
