package parse

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// Decode converts the raw server JSON into corrections. Candidate words
// arrive '|'-separated; help text arrives HTML-escaped with <br/> breaks.
func Decode(raw []byte) ([]model.Correction, error) {
	var wrap []model.RawChunk
	if err := json.Unmarshal(raw, &wrap); err != nil {
		return nil, fmt.Errorf("parse: decode data block: %w", err)
	}
	if len(wrap) == 0 {
		return nil, nil
	}

	out := make([]model.Correction, 0, len(wrap[0].ErrInfo))
	for _, e := range wrap[0].ErrInfo {
		help := strings.ReplaceAll(html.UnescapeString(e.Help), "<br/>", "\n")

		var suggest []string
		for _, s := range strings.Split(e.CandWord, "|") {
			if s != "" {
				suggest = append(suggest, s)
			}
		}
		distances := make([]int, len(suggest))
		for i, s := range suggest {
			distances[i] = util.Levenshtein(e.OrgStr, s)
		}

		out = append(out, model.Correction{
			Start:     e.Start,
			End:       e.End,
			Origin:    e.OrgStr,
			Suggest:   suggest,
			Distances: distances,
			Help:      help,
		})
	}
	return out, nil
}
