package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/gramcheck/gramcheck"
	"github.com/Alfex4936/gramcheck/internal/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func dictionaryConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend.Name = config.BackendDictionary
	cfg.Backend.Dictionary.FrequencyPath = writeFile(t, "freq.txt",
		"i 900\nhave 100\nan 200\napple 50\nthe 1000\ncat 40\nsat 30\n")
	return cfg
}

func TestNew_Identity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Name = config.BackendIdentity
	cfg.NGram.CorpusPath = writeFile(t, "corpus.txt", "the cat sat\nthe dog ran\n")

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	res, err := gramcheck.Compare(context.Background(), a.Corrector, "same text", a.CompareOptions()...)
	require.NoError(t, err)
	assert.Zero(t, res.Counts.Changed())

	require.NotNil(t, a.Model)
	gr, err := gramcheck.CheckGrammar(context.Background(), a.Model, "the cat ran", 0)
	require.NoError(t, err)
	assert.Len(t, gr.Flagged, 1)
}

func TestNew_Dictionary(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, dictionaryConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	got, err := a.Corrector.Correct(ctx, "I hve an aple")
	require.NoError(t, err)
	assert.Equal(t, "I have an apple", got)

	// custom words reach the speller immediately
	require.NoError(t, a.Words.Add(ctx, "aple"))
	got, err = a.Corrector.Correct(ctx, "an aple")
	require.NoError(t, err)
	assert.Equal(t, "an aple", got)

	words, err := a.Words.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aple"}, words)
}

func TestNew_DictionaryWithDictFile(t *testing.T) {
	cfg := dictionaryConfig(t)
	cfg.Backend.DictPath = writeFile(t, "dict.json", `{"words":["hve"]}`)

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	got, err := a.Corrector.Correct(context.Background(), "I hve an aple")
	require.NoError(t, err)
	assert.Equal(t, "I hve an apple", got)
}

func TestNew_Vote(t *testing.T) {
	cfg := dictionaryConfig(t)
	cfg.Backend.Name = config.BackendVote
	cfg.Backend.Vote = []string{config.BackendDictionary, config.BackendDictionary, config.BackendIdentity}

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	got, err := a.Corrector.Correct(context.Background(), "the cat sta")
	require.NoError(t, err)
	assert.Equal(t, "the cat sat", got)
	assert.Equal(t, "vote(dictionary,dictionary,identity)", a.Corrector.(gramcheck.Named).Name())
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Backend.Name = "grammarly"
	_, err := New(ctx, cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = config.DefaultConfig()
	cfg.Backend.Name = config.BackendOpenAI
	_, err = New(ctx, cfg, nil)
	assert.ErrorContains(t, err, "OPENAI_API_KEY")

	cfg = config.DefaultConfig()
	cfg.Backend.Name = config.BackendDictionary
	_, err = New(ctx, cfg, nil)
	assert.ErrorContains(t, err, "frequency_path")

	cfg = config.DefaultConfig()
	cfg.Backend.Name = config.BackendIdentity
	cfg.Backend.DictPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = New(ctx, cfg, nil)
	assert.Error(t, err)
}

func TestServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Name = config.BackendIdentity
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.Server().Handler())
}
