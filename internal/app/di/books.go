// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	bookadapters "catalog_backend/internal/feature/books/adapters"
	"catalog_backend/internal/feature/books/usecase"
	"catalog_backend/internal/platform/cache"
)

// NewBookRepository creates a BookRepository implementation.
// If Redis is available, the gorm repository is wrapped with the Redis cache.
// Otherwise, it reads the database directly.
func NewBookRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.BookRepository {
	repo := bookadapters.NewBookRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingBookRepository(rdb, ttl, repo, "books")
}
