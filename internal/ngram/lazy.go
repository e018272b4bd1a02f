package ngram

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Lazy builds a Model on first use and hands the same instance to every
// later caller. Concurrent first callers share a single build, and each
// stops waiting when its own context ends. A failed build is not
// remembered, so the next Get tries again.
type Lazy struct {
	build func(ctx context.Context) (*Model, error)

	group singleflight.Group
	model atomic.Pointer[Model]
}

// NewLazy returns a cell that calls build at most once successfully.
func NewLazy(build func(ctx context.Context) (*Model, error)) *Lazy {
	return &Lazy{build: build}
}

// NewLazyCorpus builds the model from c with window size n on first use.
func NewLazyCorpus(c Corpus, n int) *Lazy {
	return NewLazy(func(ctx context.Context) (*Model, error) {
		return BuildFromCorpus(ctx, c, n)
	})
}

// Get returns the shared model, building it if needed. The build outlives
// the caller that started it; cancelling ctx only abandons the wait.
func (l *Lazy) Get(ctx context.Context) (*Model, error) {
	if m := l.model.Load(); m != nil {
		return m, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := l.group.DoChan("model", func() (any, error) {
		if m := l.model.Load(); m != nil {
			return m, nil
		}
		m, err := l.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.model.Store(m)
		return m, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Model), nil
	}
}

// Loaded reports whether the model has been built.
func (l *Lazy) Loaded() bool {
	return l.model.Load() != nil
}
