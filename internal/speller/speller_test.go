package speller

import (
	"context"
	"strings"
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/gramcheck/internal/customdict"
)

var testFreq = map[string]int{
	"i": 900, "have": 100, "has": 80, "an": 200, "a": 500,
	"apple": 50, "the": 1000, "cat": 40, "sat": 30,
}

func TestCorrect_ReplacesUnknownWords(t *testing.T) {
	s := New(testFreq)
	got, err := s.Correct(context.Background(), "I hve an aple.")
	require.NoError(t, err)
	assert.Equal(t, "I have an apple.", got)
}

func TestCorrect_PreservesCase(t *testing.T) {
	s := New(testFreq)
	got, err := s.Correct(context.Background(), "Teh CAAT sat")
	require.NoError(t, err)
	assert.Equal(t, "The CAT sat", got)
}

func TestCorrect_KeepsWordsWithoutCandidates(t *testing.T) {
	s := New(testFreq)
	got, err := s.Correct(context.Background(), "the   zzzzqqq  42 ?!")
	require.NoError(t, err)
	assert.Equal(t, "the zzzzqqq 42 ?!", got)
}

func TestCorrect_EmptyText(t *testing.T) {
	got, err := New(testFreq).Correct(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestCandidates_Ordering(t *testing.T) {
	var terms []string
	for _, c := range New(testFreq).Candidates("hve") {
		terms = append(terms, c.Term)
	}
	assert.Equal(t, []string{"have", "the", "has"}, terms)
}

func TestCandidates_LongWords(t *testing.T) {
	s := New(map[string]int{"international": 10, "internal": 30, "interval": 5})

	got := s.Candidates("innternational")
	require.NotEmpty(t, got)
	assert.Equal(t, Candidate{Term: "international", Distance: 1, Frequency: 10}, got[0])

	got = s.Candidates("internationla")
	require.NotEmpty(t, got)
	assert.Equal(t, "international", got[0].Term)

	got = s.Candidates("intrenal")
	require.NotEmpty(t, got)
	assert.Equal(t, "internal", got[0].Term)
}

func TestCandidates_MatchesFullScan(t *testing.T) {
	s := New(testFreq)
	for _, word := range []string{"hve", "aple", "teh", "ct", "sattt", "zzzz", "ann", "i"} {
		want := map[string]int{}
		for term := range testFreq {
			if d := edlib.OSADamerauLevenshteinDistance(word, term); d <= DefaultMaxDistance {
				want[term] = d
			}
		}
		got := map[string]int{}
		for _, c := range s.Candidates(word) {
			got[c.Term] = c.Distance
		}
		assert.Equal(t, want, got, word)
	}
}

func TestCustomWords(t *testing.T) {
	ctx := context.Background()
	store := customdict.NewMemory()
	s := New(testFreq, WithStore(store))

	got, _ := s.Correct(ctx, "cats")
	assert.Equal(t, "cat", got)

	require.NoError(t, s.AddCustomWord(ctx, "Cats"))
	got, _ = s.Correct(ctx, "cats")
	assert.Equal(t, "cats", got)
	words, _ := store.All(ctx)
	assert.Equal(t, []string{"cats"}, words)

	require.NoError(t, s.RemoveCustomWord(ctx, "cats"))
	got, _ = s.Correct(ctx, "cats")
	assert.Equal(t, "cat", got)
}

func TestLoadCustomWords(t *testing.T) {
	ctx := context.Background()
	s := New(testFreq, WithStore(customdict.NewMemory("kafka")))
	require.NoError(t, s.LoadCustomWords(ctx))
	assert.True(t, s.Known("Kafka"))

	// custom words are candidates too
	got, _ := s.Correct(ctx, "kafak")
	assert.Equal(t, "kafka", got)
}

func TestSuggest_Offsets(t *testing.T) {
	items, err := New(testFreq).Suggest(context.Background(), "I hve it")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "hve", items[0].Origin)
	assert.Equal(t, 2, items[0].Start)
	assert.Equal(t, 5, items[0].End)
	assert.Equal(t, "have", items[0].Suggest[0])
	assert.Equal(t, 1, items[0].Distances[0])
	assert.Equal(t, "it", items[1].Origin)
}

func TestLoadFrequencies(t *testing.T) {
	freq, err := LoadFrequencies(strings.NewReader("the 10\nbad x\nfoo 2.5\nBar\n\nthe 5\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"the": 15, "foo": 2, "bar": 1}, freq)
}

func TestCorrect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testFreq).Correct(ctx, "hve")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProtect(t *testing.T) {
	s := New(testFreq)
	assert.False(t, s.Known("Hve"))
	s.Protect(" Hve ")
	s.Protect("  ")
	assert.True(t, s.Known("hve"))
}
