// Package nara checks Korean text against https://nara-speller.co.kr
// (non-commercial use).
package nara

import (
	"context"
	"errors"
	"net/url"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Alfex4936/gramcheck/internal/chunk"
	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/parse"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// ErrParse signals unexpected HTML/JS structure from upstream.
var ErrParse = errors.New("nara: could not parse server response")

const resultsPath = "/old_speller/results"

// Poster sends a form and returns the response body.
type Poster interface {
	PostForm(ctx context.Context, path string, form url.Values) ([]byte, error)
}

// Chunk is the outcome of one ≤300-word request.
type Chunk struct {
	Idx   int
	Input string
	Items []model.Correction
}

// Checker talks to the nara speller.
type Checker struct {
	poster Poster
}

// New wraps a transport (see internal/net).
func New(p Poster) *Checker { return &Checker{poster: p} }

// Check submits text (any length) split into ≤300-word chunks, dispatched
// in parallel (bounded by GOMAXPROCS). ctx controls overall timeout and
// cancellation.
func (c *Checker) Check(ctx context.Context, text string) ([]Chunk, error) {
	parts := chunk.Split(strings.TrimSpace(text), chunk.MaxWords)
	out := make([]Chunk, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range parts {
		g.Go(func() error {
			items, err := c.request(gctx, p)
			if err != nil {
				return err
			}
			out[i] = Chunk{Idx: i, Input: p, Items: items}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Suggest flattens the chunk results, shifting offsets so they index runes
// of text itself.
func (c *Checker) Suggest(ctx context.Context, text string) ([]model.Correction, error) {
	chunks, err := c.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	base := utf8.RuneCountInString(text[:len(text)-len(trimmed)])

	var out []model.Correction
	for _, ch := range chunks {
		for _, it := range ch.Items {
			it.Start += base
			it.End += base
			out = append(out, it)
		}
		base += utf8.RuneCountInString(ch.Input) + 1 // separator
	}
	return out, nil
}

// Correct applies the first suggestion of every error.
func (c *Checker) Correct(ctx context.Context, text string) (string, error) {
	items, err := c.Suggest(ctx, text)
	if err != nil {
		return "", err
	}
	return util.ApplyCorrections(text, items), nil
}

func (c *Checker) request(ctx context.Context, text string) ([]model.Correction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	body, err := c.poster.PostForm(ctx, resultsPath, url.Values{"text1": {text}})
	if err != nil {
		return nil, err
	}

	raw := parse.ExtractDataBlock(body) // []byte of `[{"str": ...`
	if raw == nil {
		if parse.NoError(body) {
			return nil, nil
		}
		return nil, ErrParse
	}
	return parse.Decode(raw)
}
