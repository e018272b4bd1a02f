package gramcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/gramcheck/internal/customdict"
	"github.com/Alfex4936/gramcheck/internal/model"
)

func TestCanonicalize_MergesSpacedVariant(t *testing.T) {
	dict := NewDict("목제솜틀기")
	got := dict.Canonicalize("나는 목제 솜 틀기 를 어제 주문했는데 아직도 안 와서 답답해.")
	assert.Equal(t, "나는 목제솜틀기 를 어제 주문했는데 아직도 안 와서 답답해.", got)
}

func TestCanonicalize_UsesCanonicalSpacing(t *testing.T) {
	dict := NewDict("우아한 형제들")
	got := dict.Canonicalize("회사명은 우 아한형제들 이야.")
	assert.Equal(t, "회사명은 우아한 형제들 이야.", got)
}

func TestKeepCorrection_RewritesSuggestionToCanonical(t *testing.T) {
	item := &model.Correction{
		Origin:    "목제 솜 틀기",
		Suggest:   []string{"목제 솜 틀기", "목재 솜틀기"},
		Distances: []int{0, 0},
	}
	require.True(t, keepCorrection(item, NewDict("목제솜틀기").normalized()))
	assert.Equal(t, "목제솜틀기", item.Suggest[0])
	assert.Equal(t, 2, item.Distances[0])
}

func TestFilter(t *testing.T) {
	items := []model.Correction{
		{Start: 5, End: 10, Origin: "kafka", Suggest: []string{"kafkaesque"}},
		{Start: 11, End: 16, Origin: "kafka", Suggest: []string{"kafta"}},
		{Start: 0, End: 4, Origin: "너는나와", Suggest: []string{"너는 나와"}},
	}
	got := NewDict("kafka", "  ").Filter(items)
	require.Len(t, got, 2)
	assert.Equal(t, "kafka", got[0].Origin)
	assert.Equal(t, "너는나와", got[1].Origin)
	assert.Equal(t, "kafkaesque", items[0].Suggest[0])
}

func TestFilter_IgnoresCase(t *testing.T) {
	items := []model.Correction{
		{Start: 6, End: 11, Origin: "Kafka", Suggest: []string{"Kafta"}},
		{Start: 12, End: 17, Origin: "KAFKA", Suggest: []string{"Kafta", "Kafka"}},
	}
	got := NewDict("kafka").Filter(items)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Kafka", "Kafta"}, got[0].Suggest)
}

func TestCanonicalize_KeepsTextCase(t *testing.T) {
	dict := NewDict("redis cluster", "kafka")
	assert.Equal(t, "Run Redis Cluster and Kafka.", dict.Canonicalize("Run Red is Clus ter and Kafka."))
	assert.Equal(t, "Run Redis Cluster and Kafka.", dict.Canonicalize("Run Redis Cluster and Kafka."))
}

func TestFromSuggester_ProtectsCapitalizedCustomWord(t *testing.T) {
	ctx := context.Background()
	words := customdict.NewMemory()
	require.NoError(t, words.Add(ctx, "Kafka"))

	s := fakeSuggester{
		{Start: 6, End: 11, Origin: "Kafka", Suggest: []string{"Kafta"}},
		{Start: 12, End: 16, Origin: "daly", Suggest: []string{"daily"}},
	}
	got, err := FromSuggester("fake", s, words).Correct(ctx, "I use Kafka daly")
	require.NoError(t, err)
	assert.Equal(t, "I use Kafka daily", got)
}

func TestFilter_EmptyDict(t *testing.T) {
	items := []model.Correction{{Origin: "x", Suggest: []string{"y"}}}
	assert.Equal(t, items, (*Dict)(nil).Filter(items))
	assert.Equal(t, items, NewDict().Filter(items))
}

func TestLoadDict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"words":["kafka","목제솜틀기"]}`), 0o644))

	d, err := LoadDict(path)
	require.NoError(t, err)
	words, err := d.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka", "목제솜틀기"}, words)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err = LoadDict(path)
	assert.Error(t, err)
}
