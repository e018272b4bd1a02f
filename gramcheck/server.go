package gramcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alfex4936/gramcheck/internal/align"
	"github.com/Alfex4936/gramcheck/internal/ngram"
	"github.com/Alfex4936/gramcheck/internal/util"
)

// DefaultRequestTimeout bounds one correction when nothing else is configured.
const DefaultRequestTimeout = 8 * time.Second

// DefaultMaxBodyBytes caps a request body.
const DefaultMaxBodyBytes = 1 << 20

// WordStore keeps the user's custom words.
type WordStore interface {
	WordSource
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
}

// Server exposes comparison and grammar checks over HTTP.
type Server struct {
	corrector Corrector
	model     ModelSource
	words     WordStore
	policy    Policy
	refine    bool
	timeout   time.Duration
	maxBody   int64
	logger    *zap.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithModel enables /v1/check-grammar.
func WithModel(m ModelSource) ServerOption { return func(s *Server) { s.model = m } }

// WithWordStore enables the custom word endpoints.
func WithWordStore(w WordStore) ServerOption { return func(s *Server) { s.words = w } }

// WithDefaultPolicy sets the policy used when a request names none.
func WithDefaultPolicy(p Policy) ServerOption { return func(s *Server) { s.policy = p } }

// WithServerRefine toggles character-level detail in responses.
func WithServerRefine(on bool) ServerOption { return func(s *Server) { s.refine = on } }

// WithRequestTimeout sets the default per-request deadline.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodyBytes caps request bodies; larger ones get 413.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets the request logger (default: no-op).
func WithLogger(l *zap.Logger) ServerOption { return func(s *Server) { s.logger = l } }

// NewServer wraps c. Grammar checks and custom words stay disabled until
// configured.
func NewServer(c Corrector, opts ...ServerOption) *Server {
	s := &Server{
		corrector: c,
		policy:    DefaultPolicy,
		refine:    true,
		timeout:   DefaultRequestTimeout,
		maxBody:   DefaultMaxBodyBytes,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/correct", s.handleCorrect)
	mux.HandleFunc("POST /v1/diff", s.handleDiff)
	mux.HandleFunc("POST /v1/check-grammar", s.handleGrammar)
	mux.HandleFunc("GET /v1/custom-words", s.handleListWords)
	mux.HandleFunc("POST /v1/custom-word", s.handleAddWord)
	mux.HandleFunc("DELETE /v1/custom-word/{word}", s.handleRemoveWord)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /openapi.json", handleOpenAPI)
	mux.HandleFunc("GET /{$}", handleDocs)
	return s.logRequests(mux)
}

// CorrectRequest is the body of POST /v1/correct.
type CorrectRequest struct {
	Text    string `json:"text"`
	Policy  string `json:"policy,omitempty"`
	Timeout int    `json:"timeout,omitempty"` // seconds
}

// DiffRequest is the body of POST /v1/diff.
type DiffRequest struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Policy    string `json:"policy,omitempty"`
}

// GrammarRequest is the body of POST /v1/check-grammar.
type GrammarRequest struct {
	Text string `json:"text"`
	N    int    `json:"n,omitempty"` // 0 selects the model's size
}

// WordRequest is the body of POST /v1/custom-word.
type WordRequest struct {
	Word string `json:"word"`
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req CorrectRequest
	if !s.decode(w, r, &req) {
		return
	}
	policy, ok := s.parsePolicy(w, req.Policy)
	if !ok {
		return
	}

	timeout := s.timeout
	if req.Timeout > 0 {
		timeout = time.Duration(req.Timeout) * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	res, err := Compare(ctx, s.corrector, req.Text, WithPolicy(policy), WithRefine(s.refine))
	switch {
	case errors.Is(err, ErrEmptyText):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err)
		return
	case err != nil:
		s.logger.Error("correct failed", zap.String("request_id", requestID(r)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if !s.decode(w, r, &req) {
		return
	}
	policy, ok := s.parsePolicy(w, req.Policy)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Diff(req.Original, req.Corrected, WithPolicy(policy), WithRefine(s.refine)))
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	if s.model == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("no reference corpus configured"))
		return
	}
	var req GrammarRequest
	if !s.decode(w, r, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := CheckGrammar(ctx, s.model, req.Text, req.N)
	switch {
	case errors.Is(err, ngram.ErrInvalidWindowSize):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err)
		return
	case err != nil:
		s.logger.Error("grammar check failed", zap.String("request_id", requestID(r)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	if !s.wordsEnabled(w) {
		return
	}
	words, err := s.words.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"words": words})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if !s.wordsEnabled(w) {
		return
	}
	var req WordRequest
	if !s.decode(w, r, &req) {
		return
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		writeError(w, http.StatusBadRequest, errors.New("word is required"))
		return
	}
	if err := s.words.Add(r.Context(), word); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("custom word added", zap.String("word", word))
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added", "word": word})
}

func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if !s.wordsEnabled(w) {
		return
	}
	word := r.PathValue("word")
	if err := s.words.Remove(r.Context(), word); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("custom word removed", zap.String("word", word))
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "word": word})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"service": "gramcheck",
		"backend": backendName(s.corrector),
	}
	if l, ok := s.model.(*ngram.Lazy); ok {
		body["modelLoaded"] = l.Loaded()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) wordsEnabled(w http.ResponseWriter) bool {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("custom words are not configured"))
		return false
	}
	return true
}

func (s *Server) parsePolicy(w http.ResponseWriter, name string) (Policy, bool) {
	if name == "" {
		return s.policy, true
	}
	p, err := align.ParsePolicy(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	return p, true
}

type ctxKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// logRequests tags every request with an X-Request-ID and logs its outcome.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return false
	}
	return true
}

// writeJSON responds without HTML escaping so corrected text stays readable.
func writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := util.MarshalNoEscape(v, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, openAPISpec)
}

func handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, redocHTML)
}
