package gramcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// Dict is a user dictionary for protecting specific terms from correction.
type Dict struct {
	Words []string `json:"words"`
}

// NewDict creates a Dict from the given words.
func NewDict(words ...string) *Dict {
	return &Dict{Words: words}
}

// LoadDict reads a JSON file of the form {"words": ["kafka", ...]}.
func LoadDict(path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gramcheck: read dict: %w", err)
	}
	var d Dict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("gramcheck: decode dict %s: %w", path, err)
	}
	return &d, nil
}

// All makes a Dict usable as a WordSource.
func (d *Dict) All(context.Context) ([]string, error) {
	if d == nil {
		return nil, nil
	}
	return d.Words, nil
}

// Filter drops corrections that would break a dictionary word and moves the
// first suggestion keeping every touched word intact to the front. The input
// slice is not modified.
func (d *Dict) Filter(items []model.Correction) []model.Correction {
	words := d.normalized()
	if len(words) == 0 {
		return items
	}
	out := make([]model.Correction, 0, len(items))
	for _, it := range items {
		it.Suggest = append([]string(nil), it.Suggest...)
		it.Distances = append([]int(nil), it.Distances...)
		if keepCorrection(&it, words) {
			out = append(out, it)
		}
	}
	return out
}

// Canonicalize rewrites every spaced-out variant of a dictionary word in s
// ("목제 솜 틀기") to the word as listed ("목제솜틀기").
func (d *Dict) Canonicalize(s string) string {
	for _, w := range d.normalized() {
		s, _ = collapseSpacesWithinWord(s, w)
	}
	return s
}

func (d *Dict) normalized() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.Words))
	for _, raw := range d.Words {
		if w := strings.TrimSpace(raw); strings.ReplaceAll(w, " ", "") != "" {
			out = append(out, w)
		}
	}
	return out
}

// keepCorrection reports whether item survives the dictionary. An item whose
// origin contains a dictionary word is kept only if one of its suggestions
// still contains that word; that suggestion becomes the first one.
func keepCorrection(item *model.Correction, words []string) bool {
	originNoSpace := strings.ReplaceAll(item.Origin, " ", "")
	var relevant []string
	for _, w := range words {
		wNoSpace := strings.ReplaceAll(w, " ", "")
		if containsFold(item.Origin, w) || containsFold(originNoSpace, wNoSpace) {
			relevant = append(relevant, w)
		}
	}
	if len(relevant) == 0 {
		return true
	}

	best := -1
	for i, s := range item.Suggest {
		fixed := s
		changed := false
		for _, w := range relevant {
			var c bool
			fixed, c = collapseSpacesWithinWord(fixed, w)
			changed = changed || c
		}

		ok := true
		for _, w := range relevant {
			if !containsFold(fixed, w) {
				ok = false
				break
			}
		}
		if ok {
			best = i
			if changed {
				item.Suggest[i] = fixed
				if i < len(item.Distances) {
					item.Distances[i] = util.Levenshtein(item.Origin, fixed)
				}
			}
			break
		}
	}

	if best == -1 {
		return false
	}
	if best != 0 {
		item.Suggest[0], item.Suggest[best] = item.Suggest[best], item.Suggest[0]
		if best < len(item.Distances) {
			item.Distances[0], item.Distances[best] = item.Distances[best], item.Distances[0]
		}
	}
	return true
}

// collapseSpacesWithinWord replaces every run of word's letters separated by
// optional whitespace with word's spacing. Letters match regardless of case
// and keep the case they have in s.
func collapseSpacesWithinWord(s, word string) (string, bool) {
	runes := []rune(strings.ReplaceAll(word, " ", ""))
	if len(runes) < 2 {
		return s, false
	}

	var b strings.Builder
	b.WriteString("(?i)")
	for i, r := range runes {
		b.WriteString(regexp.QuoteMeta(string(r)))
		if i != len(runes)-1 {
			b.WriteString(`\s*`)
		}
	}

	re := regexp.MustCompile(b.String())
	out := re.ReplaceAllStringFunc(s, func(match string) string {
		return respace(match, word)
	})
	return out, out != s
}

// respace lays the letters of match out with the spaces of word.
func respace(match, word string) string {
	letters := []rune(strings.Join(strings.Fields(match), ""))
	var b strings.Builder
	k := 0
	for _, r := range word {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		if k < len(letters) {
			b.WriteRune(letters[k])
			k++
		}
	}
	return b.String()
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
