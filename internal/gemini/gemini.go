// Package gemini corrects text with a Google Gemini model.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Alfex4936/gramcheck/internal/llm"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyAnswer is returned when the model produced no text.
var ErrEmptyAnswer = errors.New("gemini: empty answer")

// Corrector asks the model for the corrected text only.
type Corrector struct {
	client *genai.Client
	model  string
	words  llm.WordSource
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithWords keeps the words of src as written.
func WithWords(src llm.WordSource) Option {
	return func(c *Corrector) { c.words = src }
}

// New creates a Gemini corrector. baseURL overrides the API endpoint ("" for
// the public one).
func New(ctx context.Context, apiKey, model, baseURL string, opts ...Option) (*Corrector, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c := &Corrector{client: client, model: model}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Correct returns the model's corrected version of text.
func (c *Corrector) Correct(ctx context.Context, text string) (string, error) {
	prompt, err := c.instruction(ctx)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	out := strings.TrimSpace(llm.StripMarkdownFence(resp.Text()))
	if out == "" {
		return "", ErrEmptyAnswer
	}
	return out, nil
}

// instruction appends the protected words to the system prompt.
func (c *Corrector) instruction(ctx context.Context) (string, error) {
	if c.words == nil {
		return systemPrompt, nil
	}
	words, err := c.words.All(ctx)
	if err != nil {
		return "", fmt.Errorf("gemini: protected words: %w", err)
	}
	if len(words) == 0 {
		return systemPrompt, nil
	}
	list, err := util.MarshalNoEscape(words, false)
	if err != nil {
		return "", err
	}
	return systemPrompt + "\nNever change these words, in any case or spacing: " + string(list), nil
}

// Name identifies the backend in results.
func (c *Corrector) Name() string { return "gemini:" + c.model }

const systemPrompt = `Correct the spelling and grammar of the user's text.
Reply with the corrected text only: no explanations, no quotes, no Markdown.
Keep the wording, punctuation style and line breaks unless they are wrong.
If nothing is wrong, reply with the text unchanged.`
