// Package app assembles a corrector, plausibility model and custom word
// store from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Alfex4936/gramcheck/gramcheck"
	"github.com/Alfex4936/gramcheck/internal/align"
	"github.com/Alfex4936/gramcheck/internal/config"
	"github.com/Alfex4936/gramcheck/internal/customdict"
	"github.com/Alfex4936/gramcheck/internal/gemini"
	"github.com/Alfex4936/gramcheck/internal/hunspell"
	"github.com/Alfex4936/gramcheck/internal/llm"
	"github.com/Alfex4936/gramcheck/internal/nara"
	"github.com/Alfex4936/gramcheck/internal/net"
	"github.com/Alfex4936/gramcheck/internal/ngram"
	"github.com/Alfex4936/gramcheck/internal/speller"
)

// App holds everything a command needs.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Corrector gramcheck.Corrector
	Model     *ngram.Lazy // nil without a corpus
	Words     gramcheck.WordStore
	Policy    align.Policy

	dict    *gramcheck.Dict
	closers []func() error
}

// New validates cfg and builds the configured backend. Close releases
// subprocesses and connections.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	policy, _ := align.ParsePolicy(cfg.Align.Policy)
	a := &App{Config: cfg, Logger: logger, Policy: policy}

	if err := a.openWords(ctx); err != nil {
		return nil, err
	}
	if cfg.Backend.DictPath != "" {
		d, err := gramcheck.LoadDict(cfg.Backend.DictPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.dict = d
	}

	c, err := a.backend(ctx, cfg.Backend.Name)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Corrector = c

	if cfg.NGram.CorpusPath != "" {
		a.Model = ngram.NewLazyCorpus(ngram.FileCorpus{Path: cfg.NGram.CorpusPath}, cfg.NGram.N)
	}
	logger.Debug("app ready",
		zap.String("backend", cfg.Backend.Name),
		zap.String("policy", string(policy)),
		zap.Bool("corpus", a.Model != nil),
		zap.Bool("redis", cfg.Redis.Addr != ""),
	)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// CompareOptions reflects the align section of the configuration.
func (a *App) CompareOptions() []gramcheck.Option {
	return []gramcheck.Option{gramcheck.WithPolicy(a.Policy), gramcheck.WithRefine(a.Config.Align.Refine)}
}

// Server builds the HTTP API over the app.
func (a *App) Server() *gramcheck.Server {
	opts := []gramcheck.ServerOption{
		gramcheck.WithWordStore(a.Words),
		gramcheck.WithDefaultPolicy(a.Policy),
		gramcheck.WithServerRefine(a.Config.Align.Refine),
		gramcheck.WithRequestTimeout(a.Config.GetRequestTimeout()),
		gramcheck.WithMaxBodyBytes(a.Config.Server.MaxBodyBytes),
		gramcheck.WithLogger(a.Logger),
	}
	if a.Model != nil {
		opts = append(opts, gramcheck.WithModel(a.Model))
	}
	return gramcheck.NewServer(a.Corrector, opts...)
}

func (a *App) openWords(ctx context.Context) error {
	rc := a.Config.Redis
	if rc.Addr == "" {
		a.Words = customdict.NewMemory()
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	store := customdict.NewRedis(client, rc.Key)
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("app: redis %s: %w", rc.Addr, err)
	}
	a.closers = append(a.closers, client.Close)
	a.Words = store
	return nil
}

// protected lists the words backends must keep: custom words plus the
// static dictionary file.
func (a *App) protected() gramcheck.WordSource {
	if a.dict == nil {
		return a.Words
	}
	return mergedWords{a.Words, a.dict}
}

func (a *App) backend(ctx context.Context, name string) (gramcheck.Corrector, error) {
	bc := a.Config.Backend
	switch name {
	case config.BackendNara:
		client, err := net.New(bc.Nara.BaseURL, a.Config.GetNaraTimeout())
		if err != nil {
			return nil, err
		}
		return gramcheck.FromSuggester("nara", nara.New(client), a.protected()), nil

	case config.BackendHunspell:
		h, err := hunspell.New(bc.Hunspell.DictDir, bc.Hunspell.Lang)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, h.Close)
		return gramcheck.FromSuggester("hunspell", h, a.protected()), nil

	case config.BackendOpenAI:
		if bc.LLM.OpenAIKey == "" {
			return nil, errors.New("app: openai backend needs OPENAI_API_KEY")
		}
		c := llm.New(bc.LLM.OpenAIKey, bc.LLM.Model, bc.LLM.BaseURL, llm.WithWords(a.protected()))
		model := bc.LLM.Model
		if model == "" {
			model = llm.DefaultModel
		}
		return gramcheck.NewNamed("openai:"+model, c), nil

	case config.BackendGemini:
		c, err := gemini.New(ctx, bc.LLM.GeminiKey, bc.LLM.Model, "", gemini.WithWords(a.protected()))
		if err != nil {
			return nil, err
		}
		return c, nil

	case config.BackendDictionary:
		return a.dictionary(ctx)

	case config.BackendIdentity:
		return gramcheck.Identity{}, nil

	case config.BackendVote:
		members := make([]gramcheck.Corrector, 0, len(bc.Vote))
		for _, m := range bc.Vote {
			c, err := a.backend(ctx, m)
			if err != nil {
				return nil, fmt.Errorf("app: vote member %s: %w", m, err)
			}
			members = append(members, c)
		}
		return gramcheck.Vote(members...)
	}
	return nil, fmt.Errorf("app: unknown backend %q", name)
}

func (a *App) dictionary(ctx context.Context) (gramcheck.Corrector, error) {
	dc := a.Config.Backend.Dictionary
	if dc.FrequencyPath == "" {
		return nil, errors.New("app: dictionary backend needs backend.dictionary.frequency_path")
	}
	sp, err := speller.LoadFile(dc.FrequencyPath,
		speller.WithMaxDistance(dc.MaxDistance),
		speller.WithStore(a.Words),
	)
	if err != nil {
		return nil, err
	}
	if err := sp.LoadCustomWords(ctx); err != nil {
		return nil, err
	}
	if a.dict != nil {
		for _, w := range a.dict.Words {
			sp.Protect(w)
		}
	}
	// route custom word edits through the speller so it sees them at once
	a.Words = spellerWords{sp: sp, WordStore: a.Words}
	return gramcheck.NewNamed("dictionary", sp), nil
}

type spellerWords struct {
	sp *speller.Speller
	gramcheck.WordStore
}

func (s spellerWords) Add(ctx context.Context, word string) error {
	return s.sp.AddCustomWord(ctx, word)
}

func (s spellerWords) Remove(ctx context.Context, word string) error {
	return s.sp.RemoveCustomWord(ctx, word)
}

type mergedWords []gramcheck.WordSource

func (m mergedWords) All(ctx context.Context) ([]string, error) {
	var out []string
	for _, src := range m {
		words, err := src.All(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, words...)
	}
	return out, nil
}
