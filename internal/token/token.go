// Package token splits text into the units compared by the aligner and
// counted by the n-gram model.
package token

import (
	"strings"
	"unicode"
)

// Word is a lower-cased letter/digit run with its rune offsets in the source text.
type Word struct {
	Text  string
	Start int // inclusive rune offset
	End   int // exclusive rune offset
}

// Fields splits text on whitespace and keeps the original casing.
func Fields(text string) []string {
	return strings.Fields(text)
}

// Words returns the maximal letter/digit runs of text, lower-cased.
// Everything else (punctuation, symbols, whitespace) separates words.
func Words(text string) []Word {
	runes := []rune(text)
	var words []Word
	i := 0
	for i < len(runes) {
		if !isWordChar(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isWordChar(runes[i]) {
			i++
		}
		words = append(words, Word{
			Text:  strings.ToLower(string(runes[start:i])),
			Start: start,
			End:   i,
		})
	}
	return words
}

// Raw returns letter/digit runs in their original case. An apostrophe
// between two letters stays inside the word ("don't").
func Raw(text string) []Word {
	runes := []rune(text)
	var words []Word
	i := 0
	for i < len(runes) {
		if !isWordChar(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) {
			if isWordChar(runes[i]) {
				i++
				continue
			}
			if runes[i] == '\'' && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) && i > start {
				i++
				continue
			}
			break
		}
		words = append(words, Word{Text: string(runes[start:i]), Start: start, End: i})
	}
	return words
}

// Texts is Words without offsets.
func Texts(text string) []string {
	words := Words(text)
	if len(words) == 0 {
		return nil
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

// Fold is the case-insensitive comparison key of a token.
func Fold(tok string) string { return strings.ToLower(tok) }

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
