package ngram

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// Corpus supplies the reference sentences a Model is built from.
type Corpus interface {
	Sentences(ctx context.Context) ([]string, error)
}

// SliceCorpus is an in-memory corpus.
type SliceCorpus []string

func (s SliceCorpus) Sentences(context.Context) ([]string, error) { return s, nil }

// FileCorpus reads one sentence per line from a text file. The file is
// memory-mapped rather than read into a buffer; blank lines are skipped.
type FileCorpus struct {
	Path string
}

func (f FileCorpus) Sentences(ctx context.Context) ([]string, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("ngram: open corpus: %w", err)
	}
	defer fh.Close()

	st, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("ngram: stat corpus: %w", err)
	}
	if st.Size() == 0 {
		return nil, nil // empty files cannot be mapped
	}

	data, err := mmap.Map(fh, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ngram: mmap corpus: %w", err)
	}
	defer data.Unmap()

	var out []string
	rest := []byte(data)
	for len(rest) > 0 {
		if len(out)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		// copy out of the mapping before it is unmapped
		s := strings.TrimSpace(string(line))
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// BuildFromCorpus loads every sentence of c and builds a model of size n.
func BuildFromCorpus(ctx context.Context, c Corpus, n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	sentences, err := c.Sentences(ctx)
	if err != nil {
		return nil, err
	}
	return Build(sentences, n)
}
