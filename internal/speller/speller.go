// Package speller is a frequency-dictionary spelling corrector: every word
// the dictionary does not know is replaced by the most frequent known word
// within a small Damerau-Levenshtein distance.
package speller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"

	"github.com/Alfex4936/gramcheck/internal/customdict"
	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/token"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// DefaultMaxDistance bounds the edit distance of a candidate.
const DefaultMaxDistance = 2

// customFreq ranks custom words above any dictionary word.
const customFreq = 1_000_000_000

// prefixLength is how many leading runes of a word the delete index covers.
const prefixLength = 7

// Candidate is a known word close to a misspelling.
type Candidate struct {
	Term      string
	Distance  int
	Frequency int
}

// Speller corrects words against a frequency dictionary. The dictionary is
// read-only after construction; custom words may change concurrently.
type Speller struct {
	freq        map[string]int
	vocab       []string            // sorted, for deterministic candidate order
	deletes     map[string][]string // symmetric-delete index: delete of a prefix → terms
	custom      mapset.Set[string]
	store       customdict.Store
	maxDistance int
}

// Option configures a Speller.
type Option func(*Speller)

// WithMaxDistance sets the largest edit distance a candidate may have.
func WithMaxDistance(d int) Option {
	return func(s *Speller) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithStore writes custom word changes through to store.
func WithStore(store customdict.Store) Option {
	return func(s *Speller) { s.store = store }
}

// New builds a speller over a word→frequency table. Keys are lower-cased.
func New(freq map[string]int, opts ...Option) *Speller {
	s := &Speller{
		freq:        make(map[string]int, len(freq)),
		custom:      mapset.NewSet[string](),
		maxDistance: DefaultMaxDistance,
	}
	for w, c := range freq {
		s.freq[strings.ToLower(w)] += c
	}
	s.vocab = make([]string, 0, len(s.freq))
	for w := range s.freq {
		s.vocab = append(s.vocab, w)
	}
	sort.Strings(s.vocab)
	for _, o := range opts {
		o(s)
	}
	s.deletes = make(map[string][]string)
	for _, term := range s.vocab {
		edits(term, s.maxDistance).Each(func(del string) bool {
			s.deletes[del] = append(s.deletes[del], term)
			return false
		})
	}
	return s
}

// edits returns the prefix of word and every string reached from it by at
// most d rune deletions.
func edits(word string, d int) mapset.Set[string] {
	r := []rune(word)
	if len(r) > prefixLength {
		r = r[:prefixLength]
	}
	out := mapset.NewThreadUnsafeSet(string(r))
	addDeletes(r, d, out)
	return out
}

func addDeletes(r []rune, d int, out mapset.Set[string]) {
	if d == 0 || len(r) == 0 {
		return
	}
	for i := range r {
		del := string(r[:i]) + string(r[i+1:])
		if out.Add(del) {
			addDeletes([]rune(del), d-1, out)
		}
	}
}

// LoadFrequencies reads "word count" lines. Lines without a parsable count
// are skipped; a bare word counts once.
func LoadFrequencies(r io.Reader) (map[string]int, error) {
	freq := make(map[string]int)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		word := strings.ToLower(parts[0])
		count := 1
		if len(parts) > 1 {
			c, err := strconv.Atoi(parts[1])
			if err != nil {
				f, ferr := strconv.ParseFloat(parts[1], 64)
				if ferr != nil {
					continue
				}
				c = int(f)
			}
			count = c
		}
		freq[word] += count
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("speller: read dictionary: %w", err)
	}
	return freq, nil
}

// LoadFile builds a speller from a frequency dictionary file.
func LoadFile(path string, opts ...Option) (*Speller, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("speller: open dictionary: %w", err)
	}
	defer f.Close()
	freq, err := LoadFrequencies(f)
	if err != nil {
		return nil, err
	}
	return New(freq, opts...), nil
}

// LoadCustomWords merges the words held by the configured store.
func (s *Speller) LoadCustomWords(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	words, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("speller: load custom words: %w", err)
	}
	for _, w := range words {
		s.custom.Add(strings.ToLower(w))
	}
	return nil
}

// AddCustomWord marks word as correctly spelled.
func (s *Speller) AddCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(strings.TrimSpace(word))
	if s.store != nil {
		if err := s.store.Add(ctx, lw); err != nil {
			return err
		}
	}
	s.custom.Add(lw)
	return nil
}

// RemoveCustomWord undoes AddCustomWord.
func (s *Speller) RemoveCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(strings.TrimSpace(word))
	if s.store != nil {
		if err := s.store.Remove(ctx, lw); err != nil {
			return err
		}
	}
	s.custom.Remove(lw)
	return nil
}

// Protect marks word as correctly spelled for this speller only.
func (s *Speller) Protect(word string) {
	if lw := strings.ToLower(strings.TrimSpace(word)); lw != "" {
		s.custom.Add(lw)
	}
}

// Known reports whether word (any case) is in the dictionary or custom words.
func (s *Speller) Known(word string) bool {
	lw := strings.ToLower(word)
	if _, ok := s.freq[lw]; ok {
		return true
	}
	return s.custom.Contains(lw)
}

// Candidates lists known words within the max distance of word, nearest
// first, then most frequent, then alphabetical. Dictionary terms come from
// the delete index; custom words are few and scanned directly.
func (s *Speller) Candidates(word string) []Candidate {
	lw := strings.ToLower(word)
	n := len([]rune(lw))
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []Candidate
	consider := func(term string, freq int) {
		if !seen.Add(term) || abs(len([]rune(term))-n) > s.maxDistance {
			return
		}
		d := edlib.OSADamerauLevenshteinDistance(lw, term)
		if d <= s.maxDistance {
			out = append(out, Candidate{Term: term, Distance: d, Frequency: freq})
		}
	}
	edits(lw, s.maxDistance).Each(func(del string) bool {
		for _, term := range s.deletes[del] {
			consider(term, s.freq[term])
		}
		return false
	})
	for _, term := range s.custom.ToSlice() {
		if _, dup := s.freq[term]; !dup {
			consider(term, customFreq)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// Correct replaces each unknown word of text by its best candidate and
// joins the words with single spaces. Unknown words without a candidate are
// kept as typed.
func (s *Speller) Correct(ctx context.Context, text string) (string, error) {
	fields := strings.Fields(text)
	for i, f := range fields {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		fields[i] = s.correctField(f)
	}
	return strings.Join(fields, " "), nil
}

// Suggest reports every unknown word of text with its candidates.
func (s *Speller) Suggest(ctx context.Context, text string) ([]model.Correction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Correction
	for _, w := range token.Raw(text) {
		if s.Known(w.Text) || !isAlpha(w.Text) {
			continue
		}
		cands := s.Candidates(w.Text)
		c := model.Correction{Start: w.Start, End: w.End, Origin: w.Text}
		for _, cand := range cands {
			repl := matchCase(w.Text, cand.Term)
			c.Suggest = append(c.Suggest, repl)
			c.Distances = append(c.Distances, util.Levenshtein(w.Text, repl))
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Speller) correctField(f string) string {
	lead, core, trail := splitPunct(f)
	if core == "" || !isAlpha(core) || s.Known(core) {
		return f
	}
	cands := s.Candidates(core)
	if len(cands) == 0 {
		return f
	}
	return lead + matchCase(core, cands[0].Term) + trail
}

// splitPunct separates leading and trailing non-letter/digit runes.
func splitPunct(f string) (lead, core, trail string) {
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }
	start := strings.IndexFunc(f, isWord)
	if start < 0 {
		return f, "", ""
	}
	end := strings.LastIndexFunc(f, isWord)
	_, size := utf8.DecodeRuneInString(f[end:])
	return f[:start], f[start : end+size], f[end+size:]
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return s != ""
}

// matchCase shapes repl like orig: Title, UPPER or as-is.
func matchCase(orig, repl string) string {
	r := []rune(orig)
	switch {
	case len(r) > 1 && strings.ToUpper(orig) == orig:
		return strings.ToUpper(repl)
	case unicode.IsUpper(r[0]):
		rr := []rune(repl)
		if len(rr) == 0 {
			return repl
		}
		return strings.ToUpper(string(rr[0])) + string(rr[1:])
	}
	return repl
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
