// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog_backend/internal/feature/books/domain/entity"
	"catalog_backend/internal/feature/books/usecase"
)

// CachingBookRepository decorates a BookRepository with Redis caching.
// Reads go through the cache; every write invalidates the entries it could have changed.
type CachingBookRepository struct {
	inner     usecase.BookRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BookRepository = (*CachingBookRepository)(nil)

// NewCachingBookRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "books".
// A nil rdb disables caching entirely.
func NewCachingBookRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BookRepository, namespace string) *CachingBookRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "books"
	}
	return &CachingBookRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts the book and drops the cached list.
func (c *CachingBookRepository) Create(ctx context.Context, b *entity.Book) error {
	if err := c.inner.Create(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// FindByID checks the cache first, then falls back to the inner repository.
func (c *CachingBookRepository) FindByID(ctx context.Context, id uint) (*entity.Book, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	key := c.itemKey(id)

	var cached entity.Book
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	b, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, b)
	return b, nil
}

// List checks the cache first, then falls back to the inner repository.
func (c *CachingBookRepository) List(ctx context.Context) ([]entity.Book, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	key := c.listKey()

	var cached []entity.Book
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// Update writes through and invalidates the list and the book's own entry.
func (c *CachingBookRepository) Update(ctx context.Context, b *entity.Book) error {
	if err := c.inner.Update(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.itemKey(b.ID))
	return nil
}

// Delete removes the book and invalidates the list and the book's own entry.
func (c *CachingBookRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.itemKey(id))
	return nil
}

// load reports whether key held a decodable value. Corrupted entries are deleted.
func (c *CachingBookRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key. Failures only cost a future cache miss.
func (c *CachingBookRepository) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("failed to write book cache", "key", key, "error", err)
	}
}

func (c *CachingBookRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("failed to invalidate book cache", "keys", keys, "error", err)
	}
}

func (c *CachingBookRepository) listKey() string {
	return c.namespace + ":list"
}

func (c *CachingBookRepository) itemKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}
