// Package customdict stores user-defined words that a corrector must accept
// as correctly spelled.
package customdict

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding custom words.
const DefaultKey = "gramcheck:custom_words"

// Store persists custom words. Words are stored lower-cased.
type Store interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
}

// Redis keeps custom words in a Redis set.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis-backed store. An empty key selects DefaultKey.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

// Add inserts a word into the custom dictionary.
func (r *Redis) Add(ctx context.Context, word string) error {
	return r.client.SAdd(ctx, r.key, normalize(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (r *Redis) Remove(ctx context.Context, word string) error {
	return r.client.SRem(ctx, r.key, normalize(word)).Err()
}

// All returns all words stored in the custom dictionary.
func (r *Redis) All(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, r.key).Result()
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Memory is a process-local store, used when no Redis is configured.
type Memory struct {
	words mapset.Set[string]
}

// NewMemory returns a store seeded with words.
func NewMemory(words ...string) *Memory {
	m := &Memory{words: mapset.NewSet[string]()}
	for _, w := range words {
		if w = normalize(w); w != "" {
			m.words.Add(w)
		}
	}
	return m
}

func (m *Memory) Add(_ context.Context, word string) error {
	m.words.Add(normalize(word))
	return nil
}

func (m *Memory) Remove(_ context.Context, word string) error {
	m.words.Remove(normalize(word))
	return nil
}

func (m *Memory) All(context.Context) ([]string, error) {
	return m.words.ToSlice(), nil
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
