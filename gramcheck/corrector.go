// Package gramcheck compares text against a corrected version of itself and
// scores how plausible its word sequences are.
//
// A Corrector produces the corrected text; Compare aligns both versions into
// classified spans. CheckGrammar flags n-gram windows unseen in a reference
// corpus.
package gramcheck

import (
	"context"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// Corrector turns text into its corrected form.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Named is implemented by correctors that report a backend name in results.
type Named interface {
	Name() string
}

// Suggester reports corrections with rune offsets into text.
type Suggester interface {
	Suggest(ctx context.Context, text string) ([]model.Correction, error)
}

// WordSource lists words a corrector must leave as written.
type WordSource interface {
	All(ctx context.Context) ([]string, error)
}

// Func adapts an ordinary function to Corrector.
type Func func(ctx context.Context, text string) (string, error)

func (f Func) Correct(ctx context.Context, text string) (string, error) { return f(ctx, text) }

// Identity returns its input unchanged.
type Identity struct{}

func (Identity) Correct(_ context.Context, text string) (string, error) { return text, nil }

func (Identity) Name() string { return "identity" }

// NewNamed attaches a backend name to c.
func NewNamed(name string, c Corrector) Corrector {
	return named{name: name, Corrector: c}
}

type named struct {
	name string
	Corrector
}

func (n named) Name() string { return n.name }

// FromSuggester builds a Corrector that applies the first suggestion of
// every correction s reports. Corrections touching a word of words are
// dropped or rewritten to keep the word's spelling; words may be nil.
func FromSuggester(name string, s Suggester, words WordSource) Corrector {
	return &suggestCorrector{name: name, s: s, words: words}
}

type suggestCorrector struct {
	name  string
	s     Suggester
	words WordSource
}

func (c *suggestCorrector) Name() string { return c.name }

func (c *suggestCorrector) Correct(ctx context.Context, text string) (string, error) {
	items, err := c.s.Suggest(ctx, text)
	if err != nil {
		return "", err
	}
	if c.words == nil {
		return util.ApplyCorrections(text, items), nil
	}
	words, err := c.words.All(ctx)
	if err != nil {
		return "", err
	}
	dict := NewDict(words...)
	out := util.ApplyCorrections(text, dict.Filter(items))
	return dict.Canonicalize(out), nil
}

func backendName(c Corrector) string {
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return ""
}
