package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-runner/internal/account"
)

// RedisConfig holds Redis connection settings for the account store.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Key is the hash holding one JSON-encoded account per username field.
	Key string
}

// DefaultRedisConfig returns sensible defaults for the account hash.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379/0",
		PoolSize:     4,
		MinIdleConns: 1,
		Key:          "runner:accounts",
	}
}

// RedisStore keeps accounts in a Redis hash.
type RedisStore struct {
	client *redis.Client
	cfg    RedisConfig
}

var _ account.Store = (*RedisStore)(nil)

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis: %w", err)
	}

	return NewRedisWithClient(client, cfg), nil
}

// NewRedisWithClient wraps an existing client (for testing).
func NewRedisWithClient(client *redis.Client, cfg RedisConfig) *RedisStore {
	if cfg.Key == "" {
		cfg.Key = DefaultRedisConfig().Key
	}
	return &RedisStore{client: client, cfg: cfg}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Load reads every field of the account hash.
// Fields that do not decode as an account are skipped.
func (s *RedisStore) Load(ctx context.Context) (map[string]account.Account, error) {
	accounts := make(map[string]account.Account)

	fields, err := s.client.HGetAll(ctx, s.cfg.Key).Result()
	if err != nil {
		if strings.HasPrefix(err.Error(), "WRONGTYPE") {
			return accounts, fmt.Errorf("storage: %s is not a hash: %w", s.cfg.Key, account.ErrCorrupt)
		}
		return accounts, fmt.Errorf("storage: cannot read accounts: %w", err)
	}

	for username, data := range fields {
		var a account.Account
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			continue
		}
		a.Username = username
		accounts[username] = a
	}
	return accounts, nil
}

// Put writes one account field of the hash.
func (s *RedisStore) Put(ctx context.Context, a account.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("storage: cannot encode account %s: %w", a.Username, err)
	}
	if err := s.client.HSet(ctx, s.cfg.Key, a.Username, data).Err(); err != nil {
		return fmt.Errorf("storage: cannot save account %s: %w", a.Username, err)
	}
	return nil
}
