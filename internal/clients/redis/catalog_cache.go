package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/logger"
)

// CatalogCache fronts catalog list queries. Entries are keyed by a hash
// of the normalized filter plus a version counter; mutations bump the
// version instead of scanning keys, so stale entries just age out.
type CatalogCache interface {
	GetList(ctx context.Context, filterKey string) ([]byte, bool)
	SetList(ctx context.Context, filterKey string, payload []byte)
	Invalidate(ctx context.Context)
	Close() error
}

type catalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewCatalogCache returns nil (cache disabled) when REDIS_ADDR is unset.
func NewCatalogCache(log *logger.Logger) (CatalogCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}
	clientLog := log.With("client", "CatalogCache")

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	clientLog.Info("Catalog cache connected", "addr", addr)
	return &catalogCache{log: clientLog, rdb: rdb, ttl: 2 * time.Minute}, nil
}

func FilterKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:16])
}

func (c *catalogCache) version(ctx context.Context) string {
	v, err := c.rdb.Get(ctx, "catalog:version").Result()
	if err != nil {
		return "0"
	}
	return v
}

func (c *catalogCache) key(ctx context.Context, filterKey string) string {
	return "catalog:list:" + c.version(ctx) + ":" + filterKey
}

func (c *catalogCache) GetList(ctx context.Context, filterKey string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, c.key(ctx, filterKey)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Catalog cache read failed", "error", err)
		}
		return nil, false
	}
	return payload, true
}

func (c *catalogCache) SetList(ctx context.Context, filterKey string, payload []byte) {
	if err := c.rdb.Set(ctx, c.key(ctx, filterKey), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Catalog cache write failed", "error", err)
	}
}

func (c *catalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, "catalog:version").Err(); err != nil {
		c.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}

func (c *catalogCache) Close() error {
	return c.rdb.Close()
}
