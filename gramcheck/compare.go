package gramcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Alfex4936/gramcheck/internal/align"
	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/util"
)

type (
	Result   = model.Result
	EditSpan = model.EditSpan
	CharOp   = model.CharOp
	Counts   = model.Counts
	Kind     = model.Kind
	Policy   = align.Policy
)

const (
	Unchanged   = model.Unchanged
	Removed     = model.Removed
	Added       = model.Added
	Substituted = model.Substituted

	PolicyPositional = align.PolicyPositional
	PolicyDiff       = align.PolicyDiff
	DefaultPolicy    = align.DefaultPolicy
)

// ParsePolicy accepts "positional" (or "zip") and "diff" (or "lcs"); ""
// selects DefaultPolicy.
func ParsePolicy(s string) (Policy, error) { return align.ParsePolicy(s) }

type options struct {
	policy Policy
	refine bool
}

// Option configures Compare and Diff.
type Option func(*options)

// WithPolicy selects the alignment policy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		if p != "" {
			o.policy = p
		}
	}
}

// WithRefine toggles character-level detail on substituted spans (on by default).
func WithRefine(on bool) Option {
	return func(o *options) { o.refine = on }
}

func buildOptions(opts []Option) options {
	o := options{policy: DefaultPolicy, refine: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Compare corrects text with c and aligns the original against the result.
// Errors of c are returned wrapped; nothing is aligned in that case.
func Compare(ctx context.Context, c Corrector, text string, opts ...Option) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if c == nil {
		return nil, errors.New("gramcheck: nil corrector")
	}
	corrected, err := c.Correct(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("gramcheck: correct: %w", err)
	}
	res := Diff(text, corrected, opts...)
	res.Backend = backendName(c)
	return res, nil
}

// Diff aligns two versions of a text without running a corrector.
func Diff(original, corrected string, opts ...Option) *Result {
	o := buildOptions(opts)
	spans := align.Align(o.policy, original, corrected)
	if o.refine {
		spans = align.Refine(spans)
	}
	if spans == nil {
		spans = []EditSpan{}
	}
	return &Result{
		Original:     original,
		Corrected:    corrected,
		Policy:       string(o.policy),
		Spans:        spans,
		Counts:       align.Stats(spans),
		EditDistance: util.Levenshtein(original, corrected),
		CharCount:    utf8.RuneCountInString(original),
	}
}
