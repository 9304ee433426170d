package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/saransh1220/background-erase/internal/modules/removal/domain"
)

const keyPrefix = "bgerase:result:"

// RedisCache implements domain.ResultCache on top of Redis. Entries are
// scoped to the endpoint that produced them.
type RedisCache struct {
	client   *redis.Client
	endpoint string
}

// NewRedisCache creates a result cache using an already connected client
func NewRedisCache(client *redis.Client, endpoint string) *RedisCache {
	return &RedisCache{client: client, endpoint: endpoint}
}

// Key derives the cache key from the endpoint, the request content type and bytes.
func Key(endpoint string, req *domain.Request) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write([]byte(req.ContentType))
	h.Write([]byte{0})
	h.Write(req.Data)
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for req, if any.
func (c *RedisCache) Get(ctx context.Context, req *domain.Request) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, Key(c.endpoint, req)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached result: %w", err)
	}
	return data, true, nil
}

// Set stores output for req. A zero ttl keeps the entry forever.
func (c *RedisCache) Set(ctx context.Context, req *domain.Request, output []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, Key(c.endpoint, req), output, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}
