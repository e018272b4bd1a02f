package gramcheck

import (
	"context"
	"fmt"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/ngram"
)

type (
	Model         = ngram.Model
	Window        = ngram.Window
	Lazy          = ngram.Lazy
	Corpus        = ngram.Corpus
	SliceCorpus   = ngram.SliceCorpus
	FileCorpus    = ngram.FileCorpus
	GrammarResult = model.GrammarResult
	FlaggedWindow = model.FlaggedWindow
)

var (
	ErrInvalidWindowSize = ngram.ErrInvalidWindowSize
	ErrNilModel          = ngram.ErrNilModel
)

// BuildModel counts every n-word window of the sentences.
func BuildModel(sentences []string, n int) (*Model, error) { return ngram.Build(sentences, n) }

// NewLazyModel defers building the model of c until first use and then
// shares it for the life of the process.
func NewLazyModel(c Corpus, n int) *Lazy { return ngram.NewLazyCorpus(c, n) }

// CheckWindows returns, in order, every window of n words of text that the
// model never counted.
func CheckWindows(text string, m *Model, n int) ([]Window, error) {
	return ngram.CheckGrammar(text, m, n)
}

// ModelSource yields the plausibility model, building it on first use.
type ModelSource interface {
	Get(ctx context.Context) (*Model, error)
}

// CheckGrammar scores text against the model of src. n == 0 selects the
// model's window size.
func CheckGrammar(ctx context.Context, src ModelSource, text string, n int) (*GrammarResult, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	m, err := src.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("gramcheck: load model: %w", err)
	}
	if n == 0 {
		n = m.N()
	}
	flagged, err := ngram.AnnotateGrammar(text, m, n)
	if err != nil {
		return nil, err
	}
	if flagged == nil {
		flagged = []FlaggedWindow{}
	}
	return &GrammarResult{
		Text:        text,
		N:           n,
		WindowCount: ngram.WindowCount(text, n),
		Flagged:     flagged,
	}, nil
}
