package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Short(t *testing.T) {
	assert.Equal(t, []string{"one two three"}, Split("one two three", MaxWords))
	assert.Equal(t, []string{""}, Split("", MaxWords))
}

func TestSplit_Long(t *testing.T) {
	words := make([]string, 650)
	for i := range words {
		words[i] = "w"
	}
	s := strings.Join(words, " ")
	parts := Split(s, MaxWords)
	require.Len(t, parts, 3)
	assert.Len(t, strings.Fields(parts[0]), 300)
	assert.Len(t, strings.Fields(parts[1]), 300)
	assert.Len(t, strings.Fields(parts[2]), 50)
	assert.Equal(t, s, strings.Join(parts, " "))
}

func TestSplit_InvalidMax(t *testing.T) {
	assert.Equal(t, []string{"a b"}, Split("a b", 0))
}
