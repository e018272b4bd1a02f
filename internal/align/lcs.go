package align

import (
	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/token"
)

// maxTableCells bounds the LCS table. When the tokens after the common
// prefix need a larger one they are compared index by index instead.
var maxTableCells = 1 << 22

// LCS aligns a and b by a longest common subsequence of their case-folded
// tokens and emits Unchanged, Removed and Added spans only.
//
// Within each run of changes between two Unchanged anchors all Removed spans
// precede the Added spans. When dropping a[i] or b[j] keeps the same LCS
// length, the token that sorts first is consumed first, which makes
// LCS(b, a) the Invert of LCS(a, b).
func LCS(a, b []string) []model.EditSpan {
	fa, fb := fold(a), fold(b)
	spans := make([]model.EditSpan, 0, max(len(a), len(b)))

	// a shared prefix is always matched first, so it never enters the table
	p := 0
	for p < len(fa) && p < len(fb) && fa[p] == fb[p] {
		spans = append(spans, unchanged(a[p], b[p]))
		p++
	}
	a, b, fa, fb = a[p:], b[p:], fa[p:], fb[p:]

	if (len(a)+1)*(len(b)+1) > maxTableCells {
		return zip(spans, a, b, fa, fb)
	}
	return table(spans, a, b, fa, fb)
}

func table(spans []model.EditSpan, a, b, fa, fb []string) []model.EditSpan {
	n, m := len(a), len(b)
	w := m + 1

	// suffix[i*w+j] = LCS length of fa[i:] and fb[j:]
	suffix := make([]int32, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if fa[i] == fb[j] {
				suffix[i*w+j] = suffix[(i+1)*w+j+1] + 1
			} else {
				suffix[i*w+j] = max(suffix[(i+1)*w+j], suffix[i*w+j+1])
			}
		}
	}

	var r run
	i, j := 0, 0
	for i < n && j < m {
		down, right := suffix[(i+1)*w+j], suffix[i*w+j+1]
		switch {
		case fa[i] == fb[j]:
			spans = r.flush(spans)
			spans = append(spans, unchanged(a[i], b[j]))
			i++
			j++
		case down > right || (down == right && fa[i] < fb[j]):
			r.removed = append(r.removed, removed(a[i]))
			i++
		default:
			r.added = append(r.added, added(b[j]))
			j++
		}
	}
	for ; i < n; i++ {
		r.removed = append(r.removed, removed(a[i]))
	}
	for ; j < m; j++ {
		r.added = append(r.added, added(b[j]))
	}
	return r.flush(spans)
}

// zip matches tokens at equal indices only. It keeps LCS's output shape
// when the table would be too large.
func zip(spans []model.EditSpan, a, b, fa, fb []string) []model.EditSpan {
	var r run
	for i := 0; i < len(a) || i < len(b); i++ {
		switch {
		case i < len(a) && i < len(b) && fa[i] == fb[i]:
			spans = r.flush(spans)
			spans = append(spans, unchanged(a[i], b[i]))
		default:
			if i < len(a) {
				r.removed = append(r.removed, removed(a[i]))
			}
			if i < len(b) {
				r.added = append(r.added, added(b[i]))
			}
		}
	}
	return r.flush(spans)
}

// MergeSubstitutions pairs the k-th Removed with the k-th Added span of each
// change run into a Substituted span. Unpaired spans keep their kind and
// follow the substitutions of their run.
func MergeSubstitutions(spans []model.EditSpan) []model.EditSpan {
	out := make([]model.EditSpan, 0, len(spans))
	var r run
	for _, s := range spans {
		switch s.Kind {
		case model.Unchanged:
			out = r.merge(out)
			out = append(out, s)
		case model.Removed:
			r.removed = append(r.removed, s)
		case model.Added:
			r.added = append(r.added, s)
		case model.Substituted:
			r.removed = append(r.removed, removed(s.Original))
			r.added = append(r.added, added(s.Corrected))
		}
	}
	return r.merge(out)
}

// Invert swaps the roles of original and corrected: Removed becomes Added,
// both texts of every span trade places, and each change run is put back in
// canonical order (Substituted, then Removed, then Added).
func Invert(spans []model.EditSpan) []model.EditSpan {
	out := make([]model.EditSpan, 0, len(spans))
	var r run
	for _, s := range spans {
		inv := model.EditSpan{
			Kind:      invertKind(s.Kind),
			Original:  s.Corrected,
			Corrected: s.Original,
			Detail:    invertDetail(s.Detail),
		}
		switch inv.Kind {
		case model.Unchanged:
			out = r.flush(out)
			out = append(out, inv)
		case model.Substituted:
			r.substituted = append(r.substituted, inv)
		case model.Removed:
			r.removed = append(r.removed, inv)
		case model.Added:
			r.added = append(r.added, inv)
		}
	}
	return r.flush(out)
}

// run buffers the changes between two Unchanged anchors.
type run struct {
	substituted []model.EditSpan
	removed     []model.EditSpan
	added       []model.EditSpan
}

func (r *run) flush(dst []model.EditSpan) []model.EditSpan {
	dst = append(dst, r.substituted...)
	dst = append(dst, r.removed...)
	dst = append(dst, r.added...)
	r.reset()
	return dst
}

func (r *run) merge(dst []model.EditSpan) []model.EditSpan {
	pairs := min(len(r.removed), len(r.added))
	for k := 0; k < pairs; k++ {
		o, c := r.removed[k].Original, r.added[k].Corrected
		if token.Fold(o) == token.Fold(c) {
			dst = append(dst, unchanged(o, c))
		} else {
			dst = append(dst, substituted(o, c))
		}
	}
	dst = append(dst, r.removed[pairs:]...)
	dst = append(dst, r.added[pairs:]...)
	r.reset()
	return dst
}

func (r *run) reset() {
	r.substituted = r.substituted[:0]
	r.removed = r.removed[:0]
	r.added = r.added[:0]
}

func invertKind(k model.Kind) model.Kind {
	switch k {
	case model.Removed:
		return model.Added
	case model.Added:
		return model.Removed
	}
	return k
}

func invertDetail(ops []model.CharOp) []model.CharOp {
	if ops == nil {
		return nil
	}
	out := make([]model.CharOp, len(ops))
	for i, op := range ops {
		out[i] = model.CharOp{Kind: invertKind(op.Kind), Text: op.Text}
	}
	return out
}

func fold(toks []string) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = token.Fold(t)
	}
	return out
}
