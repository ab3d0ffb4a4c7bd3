package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// KVKey is the KV document holding the runtime configuration overlay
const KVKey = "config.json"

const cacheKey = "merged"

// Store is the layered read-through configuration loader:
// defaults <- KV document <- secrets overlay. The merged result is
// cached in-process; Invalidate clears the cache.
type Store struct {
	rdb      *redis.Client
	prefix   string
	cache    *cache.Cache
	mu       sync.Mutex
	lastGood *Config
}

// NewStore creates a config store. rdb may be nil, in which case only
// defaults plus secrets are served.
func NewStore(rdb *redis.Client, prefix string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Store{
		rdb:    rdb,
		prefix: prefix,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (s *Store) kvKey() string {
	if s.prefix == "" {
		return KVKey
	}
	return s.prefix + ":" + KVKey
}

// Load returns the merged configuration, serving the in-process cache
// when fresh. On KV outage a previously loaded copy is served stale; if
// none exists the compiled-in defaults (plus secrets) are returned with
// no error, per the read-path outage policy.
func (s *Store) Load(ctx context.Context) (*Config, error) {
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(*Config).Clone(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// double-checked: another caller may have filled the cache
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(*Config).Clone(), nil
	}

	cfg, err := s.loadMerged(ctx)
	if err != nil {
		if s.lastGood != nil {
			return s.lastGood.Clone(), nil
		}
		cfg = Default()
		applySecrets(cfg)
		return cfg, nil
	}

	s.cache.SetDefault(cacheKey, cfg)
	s.lastGood = cfg
	return cfg.Clone(), nil
}

func (s *Store) loadMerged(ctx context.Context) (*Config, error) {
	cfg := Default()

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, s.kvKey()).Result()
		switch {
		case err == nil:
			if mergeErr := cfg.merge([]byte(raw)); mergeErr != nil {
				// a corrupt stored document must not take the service down
				cfg = Default()
			}
		case errors.Is(err, redis.Nil):
			// no overlay published yet
		default:
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	applySecrets(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySecrets overlays environment-sourced secrets on the merged config
func applySecrets(cfg *Config) {
	if v := os.Getenv("MAILSIFT_ADMIN_KEY"); v != "" {
		cfg.AdminAPIKey = v
	}
	if v := os.Getenv("MAILSIFT_SOURCE_TOKEN"); v != "" {
		cfg.SourceToken = v
	}
}

// Invalidate clears the in-process cache; the next Load reads through
func (s *Store) Invalidate() {
	s.cache.Delete(cacheKey)
}

// Put replaces the entire KV overlay document after validating the
// resulting merged configuration. Unknown keys are rejected.
func (s *Store) Put(ctx context.Context, doc []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(doc); err != nil {
		return nil, err
	}
	applySecrets(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.write(ctx, doc); err != nil {
		return nil, err
	}
	s.Invalidate()
	return cfg, nil
}

// Patch merges a partial document over the current overlay, validates
// the result and writes it back on success.
func (s *Store) Patch(ctx context.Context, partial []byte) (*Config, error) {
	current := map[string]json.RawMessage{}
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, s.kvKey()).Result()
		if err == nil {
			_ = json.Unmarshal([]byte(raw), &current)
		} else if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(partial, &patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for key, raw := range patch {
		current[key] = raw
	}
	doc, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Default()
	if err := cfg.merge(doc); err != nil {
		return nil, err
	}
	applySecrets(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.write(ctx, doc); err != nil {
		return nil, err
	}
	s.Invalidate()
	return cfg, nil
}

// Reset deletes the KV overlay document and clears the cache
func (s *Store) Reset(ctx context.Context) error {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, s.kvKey()).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	s.Invalidate()
	return nil
}

func (s *Store) write(ctx context.Context, doc []byte) error {
	if s.rdb == nil {
		return fmt.Errorf("%w: no backing store", ErrStoreUnavailable)
	}
	if err := s.rdb.Set(ctx, s.kvKey(), doc, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
