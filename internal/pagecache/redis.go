package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"
)

// DefaultCompressThreshold is the payload size above which RedisStore compresses entries.
const DefaultCompressThreshold = 1024

const (
	formatPlain byte = 'p'
	formatZstd  byte = 'z'
)

// RedisStore is a Store shared by every API replica. Redis expires keys
// natively so there is nothing to sweep.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	threshold int
	enc       *zstd.Encoder
	dec       *zstd.Decoder
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the prefix that Clear removes. It must match the Cache prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithCompressThreshold sets the payload size above which entries are compressed.
func WithCompressThreshold(n int) RedisOption {
	return func(s *RedisStore) { s.threshold = n }
}

// NewRedisStore creates a store on client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) (*RedisStore, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	s := &RedisStore{
		client:    client,
		prefix:    DefaultPrefix,
		threshold: DefaultCompressThreshold,
		enc:       enc,
		dec:       dec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	entry, err := s.decode(payload)
	if err != nil {
		return Entry{}, false, fmt.Errorf("decode %q: %w", key, err)
	}
	if !entry.Live(time.Now()) {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	entry.ExpiresAt = time.Now().Add(ttl)

	payload, err := s.encode(entry)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Unlink(ctx, key).Err()
}

// Clear unlinks every key under the store prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	pattern := s.prefix + ":*"
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return fmt.Errorf("scan keys: %w", err)
		}
		if len(keys) > 0 {
			pipe := s.client.Pipeline()
			for _, k := range keys {
				pipe.Unlink(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("unlink keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the decoder and the client.
func (s *RedisStore) Close() error {
	s.dec.Close()
	return s.client.Close()
}

type wireEntry struct {
	Status      int    `json:"s"`
	ContentType string `json:"t,omitempty"`
	Body        []byte `json:"b"`
	ExpiresAt   int64  `json:"e"`
}

func (s *RedisStore) encode(entry Entry) ([]byte, error) {
	raw, err := json.Marshal(wireEntry{
		Status:      entry.Status,
		ContentType: entry.ContentType,
		Body:        entry.Body,
		ExpiresAt:   entry.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	if len(raw) <= s.threshold {
		return append([]byte{formatPlain}, raw...), nil
	}
	out := make([]byte, 1, len(raw)/2)
	out[0] = formatZstd
	return s.enc.EncodeAll(raw, out), nil
}

func (s *RedisStore) decode(payload []byte) (Entry, error) {
	if len(payload) == 0 {
		return Entry{}, errors.New("empty payload")
	}

	raw := payload[1:]
	switch payload[0] {
	case formatPlain:
	case formatZstd:
		var err error
		raw, err = s.dec.DecodeAll(raw, nil)
		if err != nil {
			return Entry{}, fmt.Errorf("zstd: %w", err)
		}
	default:
		return Entry{}, fmt.Errorf("unknown payload format %q", payload[0])
	}

	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return Entry{}, err
	}
	return Entry{
		Status:      w.Status,
		ContentType: w.ContentType,
		Body:        w.Body,
		ExpiresAt:   time.UnixMilli(w.ExpiresAt),
	}, nil
}
