package align

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/token"
)

var pairs = []struct {
	name      string
	original  string
	corrected string
}{
	{"substitutions", "I has a apple", "I have an apple"},
	{"insertion", "he went to school", "he went to the school"},
	{"deletion", "she she said so", "she said so"},
	{"swap", "x y", "y x"},
	{"case only", "Hello World", "hello world"},
	{"empty original", "", "hello world"},
	{"empty corrected", "foo bar", ""},
	{"both empty", "", ""},
	{"disjoint", "a b c", "x"},
	{"longer tail", "the cat sat on the mat today", "The cat sat on a mat"},
}

func TestPositional_Example(t *testing.T) {
	got := Align(PolicyPositional, "I has a apple", "I have an apple")
	want := []model.EditSpan{
		unchanged("I", "I"),
		substituted("has", "have"),
		substituted("a", "an"),
		unchanged("apple", "apple"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Align(positional) mismatch (-want +got):\n%s", diff)
	}
}

func TestPositional_TrailingLeftovers(t *testing.T) {
	got := Positional([]string{"he", "went", "to", "school"}, []string{"he", "went", "to", "the", "school"})
	want := []model.EditSpan{
		unchanged("he", "he"),
		unchanged("went", "went"),
		unchanged("to", "to"),
		substituted("school", "the"),
		added("school"),
	}
	assert.Empty(t, cmp.Diff(want, got))

	got = Positional([]string{"a", "b", "c"}, []string{"a"})
	assert.Empty(t, cmp.Diff([]model.EditSpan{unchanged("a", "a"), removed("b"), removed("c")}, got))
}

func TestPositional_SpanCountAndReconstruction(t *testing.T) {
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			a, b := token.Fields(tc.original), token.Fields(tc.corrected)
			spans := Positional(a, b)
			assert.Len(t, spans, max(len(a), len(b)))
			assertReconstructs(t, spans, a, b)
		})
	}
}

func TestEmptyInputs(t *testing.T) {
	for _, p := range []Policy{PolicyPositional, PolicyDiff} {
		got := Align(p, "", "hello world")
		assert.Empty(t, cmp.Diff([]model.EditSpan{added("hello"), added("world")}, got), p)

		got = Align(p, "foo bar", "")
		assert.Empty(t, cmp.Diff([]model.EditSpan{removed("foo"), removed("bar")}, got), p)

		assert.Empty(t, Align(p, "", ""), p)
		assert.Empty(t, Align(p, "  ", "\n"), p)
	}
}

func TestAlign_IdenticalIsAllUnchanged(t *testing.T) {
	for _, p := range []Policy{PolicyPositional, PolicyDiff} {
		for _, tc := range pairs {
			spans := Align(p, tc.original, tc.original)
			for _, s := range spans {
				require.Equal(t, model.Unchanged, s.Kind, "%s/%s: %+v", p, tc.name, s)
			}
			assert.Len(t, spans, len(token.Fields(tc.original)))
		}
	}
}

func TestAlign_CaseInsensitive(t *testing.T) {
	got := Align(PolicyDiff, "Hello World", "hello world")
	want := []model.EditSpan{unchanged("Hello", "hello"), unchanged("World", "world")}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLCS_Insertion(t *testing.T) {
	got := Align(PolicyDiff, "he went to school", "he went to the school")
	want := []model.EditSpan{
		unchanged("he", "he"),
		unchanged("went", "went"),
		unchanged("to", "to"),
		added("the"),
		unchanged("school", "school"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Align(diff) mismatch (-want +got):\n%s", diff)
	}
}

func TestLCS_MatchesPositionalOnPureSubstitutions(t *testing.T) {
	raw := LCS(token.Fields("I has a apple"), token.Fields("I have an apple"))
	want := []model.EditSpan{
		unchanged("I", "I"),
		removed("has"),
		removed("a"),
		added("have"),
		added("an"),
		unchanged("apple", "apple"),
	}
	assert.Empty(t, cmp.Diff(want, raw))
	assert.Empty(t, cmp.Diff(Align(PolicyPositional, "I has a apple", "I have an apple"), MergeSubstitutions(raw)))
}

func TestLCS_Reconstruction(t *testing.T) {
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			a, b := token.Fields(tc.original), token.Fields(tc.corrected)
			raw := LCS(a, b)
			for _, s := range raw {
				assert.NotEqual(t, model.Substituted, s.Kind)
			}
			assertReconstructs(t, raw, a, b)
			assertReconstructs(t, MergeSubstitutions(raw), a, b)
		})
	}
}

func TestLCS_Symmetry(t *testing.T) {
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			a, b := token.Fields(tc.original), token.Fields(tc.corrected)
			if diff := cmp.Diff(LCS(b, a), Invert(LCS(a, b))); diff != "" {
				t.Errorf("Invert(LCS(a,b)) != LCS(b,a) (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(MergeSubstitutions(LCS(b, a)), Invert(MergeSubstitutions(LCS(a, b)))); diff != "" {
				t.Errorf("merged symmetry (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLCS_LargeInputFallsBackToIndexMatch(t *testing.T) {
	prev := maxTableCells
	maxTableCells = 16
	t.Cleanup(func() { maxTableCells = prev })

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			a, b := token.Fields(tc.original), token.Fields(tc.corrected)
			raw := LCS(a, b)
			assertReconstructs(t, raw, a, b)
			if diff := cmp.Diff(LCS(b, a), Invert(raw)); diff != "" {
				t.Errorf("Invert(LCS(a,b)) != LCS(b,a) (-want +got):\n%s", diff)
			}
		})
	}

	got := LCS(strings.Fields("same start a b c d e"), strings.Fields("same start x b y d"))
	want := []model.EditSpan{
		unchanged("same", "same"), unchanged("start", "start"),
		removed("a"), added("x"),
		unchanged("b", "b"),
		removed("c"), added("y"),
		unchanged("d", "d"),
		removed("e"),
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestAlign_DisjointLongTexts(t *testing.T) {
	a := strings.TrimSpace(strings.Repeat("alpha ", 6000))
	b := strings.TrimSpace(strings.Repeat("omega ", 6000))
	spans := Align(PolicyDiff, a, b)
	assert.Equal(t, model.Counts{Substituted: 6000}, Stats(spans))
}

func TestLCS_SwapTieBreak(t *testing.T) {
	got := LCS([]string{"x", "y"}, []string{"y", "x"})
	want := []model.EditSpan{removed("x"), unchanged("y", "y"), added("x")}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestMergeSubstitutions_Leftovers(t *testing.T) {
	got := Align(PolicyDiff, "a b c", "x")
	want := []model.EditSpan{substituted("a", "x"), removed("b"), removed("c")}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestMergeSubstitutions_SubstitutionInvariant(t *testing.T) {
	for _, tc := range pairs {
		for _, s := range Align(PolicyDiff, tc.original, tc.corrected) {
			if s.Kind != model.Substituted {
				continue
			}
			assert.NotEmpty(t, s.Original)
			assert.NotEmpty(t, s.Corrected)
			assert.NotEqual(t, strings.ToLower(s.Original), strings.ToLower(s.Corrected))
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{
		"":           DefaultPolicy,
		"positional": PolicyPositional,
		"ZIP":        PolicyPositional,
		"diff":       PolicyDiff,
		" lcs ":      PolicyDiff,
	} {
		got, err := ParsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePolicy("fuzzy")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestStats(t *testing.T) {
	c := Stats(Align(PolicyPositional, "he went to school", "he went to the school"))
	assert.Equal(t, model.Counts{Unchanged: 3, Substituted: 1, Added: 1}, c)
	assert.Equal(t, 2, c.Changed())
}

func TestRefine_CharDetail(t *testing.T) {
	spans := Refine(Align(PolicyDiff, "I has a apple", "I have an apple"))
	require.Len(t, spans, 4)
	assert.Nil(t, spans[0].Detail)
	for _, s := range spans[1:3] {
		require.NotEmpty(t, s.Detail)
		var orig, corr strings.Builder
		for _, op := range s.Detail {
			if op.Kind != model.Added {
				orig.WriteString(op.Text)
			}
			if op.Kind != model.Removed {
				corr.WriteString(op.Text)
			}
		}
		assert.Equal(t, s.Original, orig.String())
		assert.Equal(t, s.Corrected, corr.String())
	}
}

func assertReconstructs(t *testing.T, spans []model.EditSpan, a, b []string) {
	t.Helper()
	if len(a) == 0 {
		assert.Empty(t, OriginalTokens(spans))
	} else {
		assert.Equal(t, a, OriginalTokens(spans))
	}
	if len(b) == 0 {
		assert.Empty(t, CorrectedTokens(spans))
	} else {
		assert.Equal(t, b, CorrectedTokens(spans))
	}
}
