package gramcheck

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Alfex4936/gramcheck/internal/token"
)

// Ensemble runs several correctors on the same text and keeps, position by
// position, the token most of them agree on.
type Ensemble struct {
	members []Corrector
}

// Vote builds an Ensemble. Member order decides ties.
func Vote(members ...Corrector) (*Ensemble, error) {
	if len(members) == 0 {
		return nil, ErrNoCorrectors
	}
	return &Ensemble{members: append([]Corrector(nil), members...)}, nil
}

func (e *Ensemble) Name() string {
	names := make([]string, len(e.members))
	for i, m := range e.members {
		if names[i] = backendName(m); names[i] == "" {
			names[i] = fmt.Sprintf("#%d", i)
		}
	}
	return "vote(" + strings.Join(names, ",") + ")"
}

// Correct runs every member concurrently. The first member error cancels
// the others and is returned.
func (e *Ensemble) Correct(ctx context.Context, text string) (string, error) {
	outs := make([]string, len(e.members))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range e.members {
		g.Go(func() error {
			out, err := m.Correct(gctx, text)
			if err != nil {
				return fmt.Errorf("gramcheck: vote member %d: %w", i, err)
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(VoteTokens(outs), " "), nil
}

// VoteTokens splits every output on whitespace and picks, at each index up
// to the shortest output, the token with the most votes. A tie goes to the
// token seen first at that index in outputs order.
func VoteTokens(outputs []string) []string {
	if len(outputs) == 0 {
		return nil
	}
	fields := make([][]string, len(outputs))
	shortest := -1
	for i, o := range outputs {
		fields[i] = token.Fields(o)
		if shortest < 0 || len(fields[i]) < shortest {
			shortest = len(fields[i])
		}
	}

	out := make([]string, 0, shortest)
	counts := make(map[string]int, len(outputs))
	order := make([]string, 0, len(outputs))
	for pos := 0; pos < shortest; pos++ {
		clear(counts)
		order = order[:0]
		for _, f := range fields {
			tok := f[pos]
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
		best := order[0]
		for _, tok := range order[1:] {
			if counts[tok] > counts[best] {
				best = tok
			}
		}
		out = append(out, best)
	}
	return out
}
