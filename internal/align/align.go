// Package align compares an original token sequence against a corrected one
// and classifies every token-level change for display.
package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/token"
)

// Policy selects how two token sequences are aligned.
type Policy string

const (
	// PolicyPositional compares tokens index by index. An inserted or
	// deleted word shifts everything after it.
	PolicyPositional Policy = "positional"
	// PolicyDiff aligns by longest common subsequence and merges paired
	// removals/additions into substitutions.
	PolicyDiff Policy = "diff"
)

// DefaultPolicy is used when no policy is requested.
const DefaultPolicy = PolicyDiff

var ErrUnknownPolicy = errors.New("align: unknown policy")

// ParsePolicy maps a user-facing name to a Policy. "" yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultPolicy, nil
	case "positional", "zip":
		return PolicyPositional, nil
	case "diff", "lcs":
		return PolicyDiff, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Align tokenizes both strings on whitespace and aligns them with p.
func Align(p Policy, original, corrected string) []model.EditSpan {
	a, b := token.Fields(original), token.Fields(corrected)
	if p == PolicyPositional {
		return Positional(a, b)
	}
	return MergeSubstitutions(LCS(a, b))
}

// Positional walks a and b by index up to the shorter length, comparing
// tokens case-insensitively. Leftover tokens of the longer sequence become
// trailing Removed (a longer) or Added (b longer) spans.
func Positional(a, b []string) []model.EditSpan {
	n := min(len(a), len(b))
	spans := make([]model.EditSpan, 0, max(len(a), len(b)))
	for i := 0; i < n; i++ {
		if token.Fold(a[i]) == token.Fold(b[i]) {
			spans = append(spans, unchanged(a[i], b[i]))
		} else {
			spans = append(spans, substituted(a[i], b[i]))
		}
	}
	for _, t := range a[n:] {
		spans = append(spans, removed(t))
	}
	for _, t := range b[n:] {
		spans = append(spans, added(t))
	}
	return spans
}

// Stats counts spans per kind.
func Stats(spans []model.EditSpan) model.Counts {
	var c model.Counts
	for _, s := range spans {
		switch s.Kind {
		case model.Unchanged:
			c.Unchanged++
		case model.Removed:
			c.Removed++
		case model.Added:
			c.Added++
		case model.Substituted:
			c.Substituted++
		}
	}
	return c
}

// OriginalTokens rebuilds the original token sequence from spans.
func OriginalTokens(spans []model.EditSpan) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Kind != model.Added {
			out = append(out, s.Original)
		}
	}
	return out
}

// CorrectedTokens rebuilds the corrected token sequence from spans.
func CorrectedTokens(spans []model.EditSpan) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Kind != model.Removed {
			out = append(out, s.Corrected)
		}
	}
	return out
}

func unchanged(o, c string) model.EditSpan {
	return model.EditSpan{Kind: model.Unchanged, Original: o, Corrected: c}
}

func substituted(o, c string) model.EditSpan {
	return model.EditSpan{Kind: model.Substituted, Original: o, Corrected: c}
}

func removed(o string) model.EditSpan { return model.EditSpan{Kind: model.Removed, Original: o} }

func added(c string) model.EditSpan { return model.EditSpan{Kind: model.Added, Corrected: c} }
