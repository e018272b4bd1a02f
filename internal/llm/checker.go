// Package llm provides a correction backend backed by an OpenAI-compatible LLM.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Alfex4936/gramcheck/internal/model"
	"github.com/Alfex4936/gramcheck/internal/util"
)

const (
	DefaultModel   = "gpt-5-mini"
	DefaultBaseURL = "https://api.openai.com/v1"
)

// WordSource lists words the model must leave untouched.
type WordSource interface {
	All(ctx context.Context) ([]string, error)
}

// Checker sends correction requests to an OpenAI-compatible chat completions API.
type Checker struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	words   WordSource
}

// Option configures a Checker.
type Option func(*Checker)

// WithWords protects the words of src from correction.
func WithWords(src WordSource) Option {
	return func(c *Checker) { c.words = src }
}

// WithHTTPClient replaces the default client (60s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) { c.client = hc }
}

// New creates a new LLM Checker.
// Unset fields fall back to their defaults.
func New(apiKey, model, baseURL string, opts ...Option) *Checker {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// --- response structs (LLM doesn't include distances; Items adds them) ---

type Correction struct {
	Start   int      `json:"start"`
	End     int      `json:"end"`
	Origin  string   `json:"origin"`
	Suggest []string `json:"suggest"`
	Help    string   `json:"help"`
}

type Response struct {
	Original    string       `json:"original"`
	Corrected   string       `json:"corrected"`
	Corrections []Correction `json:"corrections"`
}

// Items converts the model's corrections, computing suggestion distances.
func (r *Response) Items() []model.Correction {
	out := make([]model.Correction, 0, len(r.Corrections))
	for _, c := range r.Corrections {
		dists := make([]int, len(c.Suggest))
		for i, s := range c.Suggest {
			dists[i] = util.Levenshtein(c.Origin, s)
		}
		out = append(out, model.Correction{
			Start:     c.Start,
			End:       c.End,
			Origin:    c.Origin,
			Suggest:   c.Suggest,
			Distances: dists,
			Help:      c.Help,
		})
	}
	return out
}

// --- OpenAI wire types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Correct returns the model's corrected text.
func (c *Checker) Correct(ctx context.Context, text string) (string, error) {
	var protected []string
	if c.words != nil {
		words, err := c.words.All(ctx)
		if err != nil {
			return "", fmt.Errorf("llm: protected words: %w", err)
		}
		protected = words
	}
	resp, err := c.Check(ctx, text, protected)
	if err != nil {
		return "", err
	}
	return resp.Corrected, nil
}

// Check calls the LLM and returns parsed correction results.
// protectedWords are passed as proper nouns so the LLM won't flag them.
func (c *Checker) Check(ctx context.Context, text string, protectedWords []string) (*Response, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserMessage(text, protectedWords)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read body: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return nil, fmt.Errorf("llm: decode response (status %d): %w", resp.StatusCode, err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("llm: API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("llm: empty choices (status %d)", resp.StatusCode)
	}

	content := StripMarkdownFence(chatResp.Choices[0].Message.Content)

	var out Response
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("llm: parse JSON output: %w\ncontent: %s", err, content)
	}
	if out.Original == "" {
		out.Original = text
	}
	return &out, nil
}

func buildUserMessage(text string, protected []string) string {
	if len(protected) == 0 {
		return "Input:\n" + text
	}
	wordList, _ := util.MarshalNoEscape(protected, false)
	return "<proper_nouns>\n" + string(wordList) + "\n\nInput:\n" + text
}

// StripMarkdownFence removes optional ```json ... ``` wrapping from LLM output.
func StripMarkdownFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

const systemPrompt = `You are a proofreader fixing spelling and grammar. Output JSON only.

Rules:
- Words listed under <proper_nouns> are never errors.
- Keep the author's wording; change only what is wrong.
- start/end are rune offsets into the input text (0-based, end exclusive).
- With nothing to fix, return an empty corrections array and corrected equal to original.
- suggest holds 1 to 4 replacements; help explains the error briefly.

Output format (JSON only, no prose or Markdown):
{
  "original": "<input text>",
  "corrected": "<full corrected text>",
  "corrections": [
    {
      "start": <int>,
      "end": <int>,
      "origin": "<wrong text>",
      "suggest": ["<replacement>"],
      "help": "<explanation>"
    }
  ]
}`
