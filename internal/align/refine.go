package align

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Alfex4936/gramcheck/internal/model"
)

// dmp is shared; DiffMain only reads its settings.
var dmp = func() *diffmatchpatch.DiffMatchPatch {
	d := diffmatchpatch.New()
	d.DiffTimeout = 0 // no deadline, results stay deterministic
	return d
}()

// Refine fills Detail of every Substituted span with a character-level diff
// of its two sides, so a renderer can highlight the changed letters inside
// a replaced word. spans is not modified.
func Refine(spans []model.EditSpan) []model.EditSpan {
	out := make([]model.EditSpan, len(spans))
	copy(out, spans)
	for i := range out {
		if out[i].Kind != model.Substituted {
			continue
		}
		out[i].Detail = CharDiff(out[i].Original, out[i].Corrected)
	}
	return out
}

// CharDiff returns the character-level operations turning a into b.
func CharDiff(a, b string) []model.CharOp {
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	ops := make([]model.CharOp, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var k model.Kind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			k = model.Unchanged
		case diffmatchpatch.DiffDelete:
			k = model.Removed
		case diffmatchpatch.DiffInsert:
			k = model.Added
		}
		ops = append(ops, model.CharOp{Kind: k, Text: d.Text})
	}
	return ops
}
