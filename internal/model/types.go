package model

import "fmt"

// Kind classifies one aligned unit of text.
type Kind int

const (
	Unchanged Kind = iota
	Removed
	Added
	Substituted
)

var kindNames = [...]string{"unchanged", "removed", "added", "substituted"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name so JSON output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("model: invalid kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("model: unknown kind %q", b)
}

// EditSpan is one classified unit of difference between the original and
// the corrected token sequences.
//
// Removed spans carry only Original, Added spans only Corrected. Unchanged
// spans carry both sides, which may differ in letter case.
type EditSpan struct {
	Kind      Kind     `json:"kind"`
	Original  string   `json:"original,omitempty"`
	Corrected string   `json:"corrected,omitempty"`
	Detail    []CharOp `json:"detail,omitempty"` // character-level ops of a Substituted span
}

// CharOp is a character-level piece of a substituted word.
type CharOp struct {
	Kind Kind   `json:"kind"` // Unchanged, Removed or Added
	Text string `json:"text"`
}

// Counts tallies spans per kind.
type Counts struct {
	Unchanged   int `json:"unchanged"`
	Removed     int `json:"removed"`
	Added       int `json:"added"`
	Substituted int `json:"substituted"`
}

// Changed is the number of spans that are not Unchanged.
func (c Counts) Changed() int { return c.Removed + c.Added + c.Substituted }

// Result is JSON-serialisable as-is.
type Result struct {
	Original     string     `json:"original"`
	Corrected    string     `json:"corrected"`
	Backend      string     `json:"backend,omitempty"`
	Policy       string     `json:"policy"`
	Spans        []EditSpan `json:"spans"`
	Counts       Counts     `json:"counts"`
	EditDistance int        `json:"editDistance"` // Levenshtein(original, corrected)
	CharCount    int        `json:"charCount"`    // UTF-8 rune length of original
}

// FlaggedWindow is an n-gram of the input that never occurs in the corpus.
type FlaggedWindow struct {
	Window []string `json:"window"`
	Start  int      `json:"start"` // rune offsets into the checked text
	End    int      `json:"end"`
}

// GrammarResult is the outcome of a plausibility check.
type GrammarResult struct {
	Text        string          `json:"text"`
	N           int             `json:"n"`
	WindowCount int             `json:"windowCount"` // windows formed from the text
	Flagged     []FlaggedWindow `json:"flagged"`
}

// Correction represents a single error span reported by a backend.
type Correction struct {
	Start     int      `json:"start"`          // rune offsets
	End       int      `json:"end"`            // rune offsets
	Origin    string   `json:"origin"`         // wrong slice
	Suggest   []string `json:"suggest"`        // ≥1 candidate
	Distances []int    `json:"distances"`      // Levenshtein(origin, suggest[i])
	Help      string   `json:"help,omitempty"` // optional explanation
}

// RawCorrection is the raw format from the nara server before we transform it.
type RawCorrection struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	OrgStr   string `json:"orgStr"`
	CandWord string `json:"candWord"`
	Help     string `json:"help"`
}

// RawChunk is the wrapper for ErrInfo array (from server JSON structure).
type RawChunk struct {
	ErrInfo []RawCorrection `json:"errInfo"`
}
