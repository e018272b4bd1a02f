// Package config loads gramcheck settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Alfex4936/gramcheck/internal/align"
)

// DefaultPath is looked up when no --config flag is given.
const DefaultPath = "gramcheck.yaml"

// Backend names.
const (
	BackendNara       = "nara"
	BackendHunspell   = "hunspell"
	BackendOpenAI     = "openai"
	BackendGemini     = "gemini"
	BackendDictionary = "dictionary"
	BackendIdentity   = "identity"
	BackendVote       = "vote"
)

// ValidBackends lists all supported correction backends.
var ValidBackends = []string{
	BackendNara, BackendHunspell, BackendOpenAI, BackendGemini,
	BackendDictionary, BackendIdentity, BackendVote,
}

var ErrInvalid = errors.New("config: invalid")

// Config holds all gramcheck configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Align   AlignConfig   `yaml:"align"`
	NGram   NGramConfig   `yaml:"ngram"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	RequestTimeout string `yaml:"request_timeout"` // "" picks 8s, or 180s for LLM backends
	MaxBodyBytes   int64  `yaml:"max_body_bytes"`  // 0 picks 1 MiB
}

// BackendConfig selects and configures the corrector.
type BackendConfig struct {
	Name       string           `yaml:"name"`
	Nara       NaraConfig       `yaml:"nara"`
	Hunspell   HunspellConfig   `yaml:"hunspell"`
	LLM        LLMConfig        `yaml:"llm"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Vote       []string         `yaml:"vote"` // member backends of "vote"
	DictPath   string           `yaml:"dict_path"`
}

type NaraConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type HunspellConfig struct {
	DictDir string `yaml:"dict_dir"`
	Lang    string `yaml:"lang"`
}

// LLMConfig is shared by the openai and gemini backends.
type LLMConfig struct {
	OpenAIKey string `yaml:"openai_api_key"`
	GeminiKey string `yaml:"gemini_api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
}

type DictionaryConfig struct {
	FrequencyPath string `yaml:"frequency_path"`
	MaxDistance   int    `yaml:"max_distance"`
}

type AlignConfig struct {
	Policy string `yaml:"policy"`
	Refine bool   `yaml:"refine"`
}

type NGramConfig struct {
	CorpusPath string `yaml:"corpus_path"`
	N          int    `yaml:"n"`
}

// RedisConfig enables the custom word store when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Backend: BackendConfig{
			Name:     BackendNara,
			Nara:     NaraConfig{Timeout: "10s"},
			Hunspell: HunspellConfig{Lang: "en_US"},
			Dictionary: DictionaryConfig{
				MaxDistance: 2,
			},
		},
		Align:   AlignConfig{Policy: string(align.DefaultPolicy), Refine: true},
		NGram:   NGramConfig{N: 2},
		Redis:   RedisConfig{Key: "gramcheck:custom_words"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
		}
		*dst = n
		return nil
	}

	setString(&c.Backend.Name, "GRAMCHECK_BACKEND")
	setString(&c.Backend.LLM.OpenAIKey, "OPENAI_API_KEY")
	setString(&c.Backend.LLM.GeminiKey, "GEMINI_API_KEY")
	setString(&c.Backend.LLM.Model, "LLM_MODEL")
	setString(&c.Backend.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.NGram.CorpusPath, "CORPUS_PATH")
	setString(&c.Server.Addr, "HTTP_ADDR")
	setString(&c.Logging.Level, "LOG_LEVEL")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	return setInt(&c.NGram.N, "NGRAM_N")
}

// Validate rejects unknown backends and policies and bad sizes.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Backend.Name) {
		return fmt.Errorf("%w: backend %q (valid: %v)", ErrInvalid, c.Backend.Name, ValidBackends)
	}
	if c.Backend.Name == BackendVote {
		if len(c.Backend.Vote) == 0 {
			return fmt.Errorf("%w: vote backend needs members", ErrInvalid)
		}
		for _, m := range c.Backend.Vote {
			if m == BackendVote || !slices.Contains(ValidBackends, m) {
				return fmt.Errorf("%w: vote member %q", ErrInvalid, m)
			}
		}
	}
	if _, err := align.ParsePolicy(c.Align.Policy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.NGram.N < 1 {
		return fmt.Errorf("%w: ngram n must be >= 1, got %d", ErrInvalid, c.NGram.N)
	}
	if c.Server.RequestTimeout != "" {
		if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
			return fmt.Errorf("%w: request_timeout: %v", ErrInvalid, err)
		}
	}
	return nil
}

// IsLLM reports whether the configured backend calls a language model.
func (c *Config) IsLLM() bool {
	switch c.Backend.Name {
	case BackendOpenAI, BackendGemini:
		return true
	case BackendVote:
		return slices.Contains(c.Backend.Vote, BackendOpenAI) || slices.Contains(c.Backend.Vote, BackendGemini)
	}
	return false
}

// GetRequestTimeout returns the per-request deadline of the server.
func (c *Config) GetRequestTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.RequestTimeout); err == nil && d > 0 {
		return d
	}
	if c.IsLLM() {
		return 3 * time.Minute
	}
	return 8 * time.Second
}

// GetNaraTimeout returns the transport timeout of the nara backend.
func (c *Config) GetNaraTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Backend.Nara.Timeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}
