// Package ngram builds a frequency table of fixed-length token windows from a
// reference corpus and flags windows of new text that the corpus never saw.
//
// A Model is immutable once built and safe for concurrent use without
// locking. Building traverses the whole corpus, so a process should build
// one Model (see Lazy) and share it.
package ngram

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/token"
)

var (
	// ErrInvalidWindowSize is returned when a window size below 1 is requested.
	ErrInvalidWindowSize = errors.New("ngram: window size must be >= 1")
	// ErrNilModel is returned when scoring against a nil Model.
	ErrNilModel = errors.New("ngram: nil model")
)

// Window is a contiguous run of tokens.
type Window []string

// Key is the map key of the window. Tokens never contain spaces.
func (w Window) Key() string { return strings.Join(w, " ") }

func (w Window) String() string { return "(" + strings.Join(w, ", ") + ")" }

// Model maps windows of exactly N tokens to their corpus occurrence count.
type Model struct {
	n      int
	counts map[string]int
	total  int
}

// Build counts every window of length n in sentences. Each sentence is
// lower-cased and split into letter/digit tokens first; windows never cross
// sentence boundaries.
func Build(sentences []string, n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	m := newModel(n)
	for _, s := range sentences {
		m.add(token.Texts(s))
	}
	return m, nil
}

// BuildFromTokens is Build for pre-tokenized sentences. Tokens are
// normalized the same way Build normalizes raw text, so a token carrying
// punctuation may split in two or vanish.
func BuildFromTokens(corpus [][]string, n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	m := newModel(n)
	for _, sentence := range corpus {
		var toks []string
		for _, t := range sentence {
			toks = append(toks, token.Texts(t)...)
		}
		m.add(toks)
	}
	return m, nil
}

func newModel(n int) *Model {
	return &Model{n: n, counts: make(map[string]int)}
}

func (m *Model) add(toks []string) {
	for i := 0; i+m.n <= len(toks); i++ {
		m.counts[Window(toks[i:i+m.n]).Key()]++
		m.total++
	}
}

// N is the window size the model was built with.
func (m *Model) N() int { return m.n }

// Len is the number of distinct windows.
func (m *Model) Len() int { return len(m.counts) }

// Total is the number of window occurrences counted.
func (m *Model) Total() int { return m.total }

// Count returns how often w occurred in the corpus. Unseen windows count 0.
func (m *Model) Count(w Window) int { return m.counts[w.Key()] }

// Windows returns every distinct window with its count, sorted by key.
func (m *Model) Windows() []Entry {
	out := make([]Entry, 0, len(m.counts))
	for k, c := range m.counts {
		out = append(out, Entry{Window: Window(strings.Split(k, " ")), Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Window.Key() < out[j].Window.Key() })
	return out
}

// Entry is one row of the frequency table.
type Entry struct {
	Window Window
	Count  int
}

// Check flags the windows of text (using the model's own size) that never
// occurred in the corpus.
func (m *Model) Check(text string) []Window {
	flagged, _ := CheckGrammar(text, m, m.n)
	return flagged
}

// Annotate is Check with the rune offsets of each flagged window, for
// highlighting.
func (m *Model) Annotate(text string) []model.FlaggedWindow {
	out, _ := AnnotateGrammar(text, m, m.n)
	return out
}

// AnnotateGrammar is CheckGrammar reporting rune offsets with each window.
func AnnotateGrammar(text string, m *Model, n int) ([]model.FlaggedWindow, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	if m == nil {
		return nil, ErrNilModel
	}
	words := token.Words(text)
	var out []model.FlaggedWindow
	for i := 0; i+n <= len(words); i++ {
		w := windowAt(words, i, n)
		if m.Count(w) == 0 {
			out = append(out, model.FlaggedWindow{
				Window: w,
				Start:  words[i].Start,
				End:    words[i+n-1].End,
			})
		}
	}
	return out, nil
}

// CheckGrammar tokenizes text like Build, extracts every window of length n
// and returns, in order, each window whose count in m is zero. A window that
// recurs is reported once per occurrence. Text with fewer than n tokens
// yields no windows.
//
// The windows are looked up as given: with n different from m.N() no window
// can be found and every one is flagged.
func CheckGrammar(text string, m *Model, n int) ([]Window, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	if m == nil {
		return nil, ErrNilModel
	}
	words := token.Words(text)
	var flagged []Window
	for i := 0; i+n <= len(words); i++ {
		w := windowAt(words, i, n)
		if m.Count(w) == 0 {
			flagged = append(flagged, w)
		}
	}
	return flagged, nil
}

// WindowCount is the number of windows of size n that text forms.
func WindowCount(text string, n int) int {
	if n < 1 {
		return 0
	}
	return max(0, len(token.Words(text))-n+1)
}

func windowAt(words []token.Word, i, n int) Window {
	w := make(Window, n)
	for k := 0; k < n; k++ {
		w[k] = words[i+k].Text
	}
	return w
}
