// Package hunspell provides a spell-checker backend backed by the hunspell binary.
// It communicates via the ispell-compatible pipe protocol (-a flag).
package hunspell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/token"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// Hunspell wraps a running hunspell process in ispell-compatible pipe mode.
// Words are checked one at a time; concurrent callers are serialized.
type Hunspell struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Reader
	mu    sync.Mutex
}

// New starts a hunspell subprocess.
// dictDir: directory containing <lang>.aff / <lang>.dic  (pass "" to use system dictionary).
// lang:    dictionary name, e.g. "en_US".
func New(dictDir, lang string) (*Hunspell, error) {
	dictArg := lang
	if dictDir != "" {
		for _, ext := range []string{".aff", ".dic"} {
			p := filepath.Join(dictDir, lang+ext)
			if _, err := os.Stat(p); err != nil {
				return nil, fmt.Errorf("hunspell: dict missing: %s", p)
			}
		}
		dictArg = filepath.Join(dictDir, lang)
	}

	cmd := exec.Command("hunspell", "-d", dictArg, "-a", "-i", "UTF-8")
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("hunspell: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("hunspell: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("hunspell: start (is hunspell installed?): %w", err)
	}

	h, err := newSession(stdin, stdout)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	h.cmd = cmd
	return h, nil
}

// newSession reads the banner line ("Hunspell x.y.z") and returns a ready
// session over the given pipes.
func newSession(stdin io.WriteCloser, stdout io.Reader) (*Hunspell, error) {
	h := &Hunspell{stdin: stdin, out: bufio.NewReader(stdout)}
	if _, err := h.out.ReadString('\n'); err != nil {
		return nil, fmt.Errorf("hunspell: init failed: %w", err)
	}
	return h, nil
}

// Suggest tokenizes text, checks each word with hunspell, and returns
// corrections with rune offsets into text.
func (h *Hunspell) Suggest(ctx context.Context, text string) ([]model.Correction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := token.Raw(text)
	if len(words) == 0 {
		return nil, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var out []model.Correction
	for _, w := range words {
		correct, suggest, err := h.checkWord(w.Text)
		if err != nil {
			return nil, err
		}
		if correct {
			continue
		}

		dists := make([]int, len(suggest))
		for i, s := range suggest {
			dists[i] = util.Levenshtein(w.Text, s)
		}

		out = append(out, model.Correction{
			Start:     w.Start,
			End:       w.End,
			Origin:    w.Text,
			Suggest:   suggest,
			Distances: dists,
		})
	}
	return out, nil
}

// Correct replaces every misspelled word with hunspell's first suggestion.
// Words without suggestions are kept.
func (h *Hunspell) Correct(ctx context.Context, text string) (string, error) {
	items, err := h.Suggest(ctx, text)
	if err != nil {
		return "", err
	}
	return util.ApplyCorrections(text, items), nil
}

// Close ends the pipe session and waits for the process to exit.
func (h *Hunspell) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.stdin.Close()
	if h.cmd != nil {
		if werr := h.cmd.Wait(); err == nil {
			err = werr
		}
	}
	return err
}

// checkWord sends one word to hunspell and parses the response.
// Ispell pipe protocol, first character of the reply line:
//
//	'*'  correct
//	'+'  correct, affixed root follows
//	'-'  correct compound
//	'&'  misspelled with suggestions ("& w n o: s1, s2")
//	'#'  misspelled without suggestions ("# w o")
func (h *Hunspell) checkWord(word string) (correct bool, suggest []string, err error) {
	// '^' escapes words that would otherwise be read as pipe commands.
	if _, err = fmt.Fprintf(h.stdin, "^%s\n", word); err != nil {
		return false, nil, fmt.Errorf("hunspell: write: %w", err)
	}

	for {
		line, e := h.out.ReadString('\n')
		if e != nil && e != io.EOF {
			return false, nil, fmt.Errorf("hunspell: read: %w", e)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if e == io.EOF && !correct && suggest == nil {
				return false, nil, fmt.Errorf("hunspell: read: %w", io.ErrUnexpectedEOF)
			}
			break // blank line = end of result for this word
		}

		switch line[0] {
		case '*', '+', '-':
			correct = true
		case '&':
			correct = false
			if idx := strings.Index(line, ": "); idx != -1 {
				for _, s := range strings.Split(line[idx+2:], ", ") {
					if s = strings.TrimSpace(s); s != "" {
						suggest = append(suggest, s)
					}
				}
			}
		case '#':
			correct = false
			suggest = []string{}
		}
	}
	return
}
