package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	petadapters "petcare_backend/internal/feature/pets/adapters"
	"petcare_backend/internal/platform/cache"
)

// NewPetRepository creates the pet repository decorated with the Redis list cache.
// The cache is bypassed when rdb is nil.
func NewPetRepository(conn *gorm.DB, rdb *redis.Client, ttl time.Duration) *cache.CachingPetRepository {
	return cache.NewCachingPetRepository(rdb, ttl, petadapters.NewPetRepository(conn), "pets")
}
