package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]string{{"text": text}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCorrect(t *testing.T) {
	srv := answer(t, "I have an apple.\n")
	c, err := New(context.Background(), "key", "", srv.URL)
	require.NoError(t, err)

	got, err := c.Correct(context.Background(), "I hve an aple.")
	require.NoError(t, err)
	assert.Equal(t, "I have an apple.", got)
	assert.Equal(t, "gemini:"+DefaultModel, c.Name())
}

type words []string

func (w words) All(context.Context) ([]string, error) { return w, nil }

func TestCorrect_ProtectedWords(t *testing.T) {
	var instruction string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SystemInstruction struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"systemInstruction"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.SystemInstruction.Parts) > 0 {
			instruction = req.SystemInstruction.Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"I use Kafka daily."}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), "key", "", srv.URL, WithWords(words{"kafka", "목제솜틀기"}))
	require.NoError(t, err)

	got, err := c.Correct(context.Background(), "I use Kafka daly.")
	require.NoError(t, err)
	assert.Equal(t, "I use Kafka daily.", got)
	assert.Contains(t, instruction, `["kafka","목제솜틀기"]`)
}

func TestCorrect_EmptyAnswer(t *testing.T) {
	srv := answer(t, "  ")
	c, err := New(context.Background(), "key", "m", srv.URL)
	require.NoError(t, err)

	_, err = c.Correct(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), "", "", "")
	assert.Error(t, err)
}
