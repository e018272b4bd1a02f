package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/gramcheck/internal/model"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"has", "have", 2},
		{"너는나와", "너는 나와", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Levenshtein(tc.a, tc.b), "%q/%q", tc.a, tc.b)
		assert.Equal(t, tc.want, Levenshtein(tc.b, tc.a), "%q/%q", tc.b, tc.a)
	}
}

func TestApplyCorrections(t *testing.T) {
	items := []model.Correction{
		{Start: 0, End: 4, Origin: "너는나와", Suggest: []string{"너는 나와"}},
		{Start: 11, End: 15, Origin: "머고나서", Suggest: []string{"먹고 나서"}},
		{Start: 5, End: 10, Origin: "kafka"}, // no suggestion
	}
	got := ApplyCorrections("너는나와 kafka 머고나서", items)
	assert.Equal(t, "너는 나와 kafka 먹고 나서", got)
}

func TestApplyCorrections_SkipsBadOffsets(t *testing.T) {
	items := []model.Correction{
		{Start: 2, End: 99, Suggest: []string{"x"}},
		{Start: 0, End: 1, Suggest: []string{"H"}},
	}
	assert.Equal(t, "Hello", ApplyCorrections("hello", items))
	assert.Equal(t, "same", ApplyCorrections("same", nil))
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"html": "<ins>a&b</ins>"}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<ins>a&b</ins>"}`, string(out))
}
