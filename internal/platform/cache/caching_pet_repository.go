// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"petcare_backend/internal/feature/pets/domain/entity"
	"petcare_backend/internal/feature/pets/usecase"
)

// DefaultPetListTTL is used when no positive TTL is configured.
const DefaultPetListTTL = 5 * time.Minute

// CachingPetRepository decorates a PetRepository with Redis caching of per-owner pet lists.
// Single-pet lookups are not cached; every write invalidates the owner's list.
type CachingPetRepository struct {
	inner     usecase.PetRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PetRepository = (*CachingPetRepository)(nil)

// NewCachingPetRepository decorates a PetRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "pets".
// A nil rdb disables caching entirely.
func NewCachingPetRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PetRepository, namespace string) *CachingPetRepository {
	if ttl <= 0 {
		ttl = DefaultPetListTTL
	}
	if namespace == "" {
		namespace = "pets"
	}
	return &CachingPetRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the pet and invalidates the owner's cached list.
func (c *CachingPetRepository) Create(ctx context.Context, pet *entity.Pet) error {
	if err := c.inner.Create(ctx, pet); err != nil {
		return err
	}
	c.invalidate(ctx, pet.UserID)
	return nil
}

// FindByID always reads through to the underlying repository.
func (c *CachingPetRepository) FindByID(ctx context.Context, id uint) (*entity.Pet, error) {
	return c.inner.FindByID(ctx, id)
}

// ListByOwner returns the owner's pets, checking cache first then falling back to the database.
func (c *CachingPetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Pet, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	key := c.ownerKey(ownerID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Pet
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたエントリは削除してDBから読み直す
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update saves the pet and invalidates the owner's cached list.
func (c *CachingPetRepository) Update(ctx context.Context, pet *entity.Pet) error {
	if err := c.inner.Update(ctx, pet); err != nil {
		return err
	}
	c.invalidate(ctx, pet.UserID)
	return nil
}

// Delete removes the pet and invalidates the owner's cached list.
func (c *CachingPetRepository) Delete(ctx context.Context, ownerID, id uint) error {
	if err := c.inner.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// InvalidateOwner drops the cached list of an owner, e.g. after the owner's account is deleted.
func (c *CachingPetRepository) InvalidateOwner(ctx context.Context, ownerID uint) {
	c.invalidate(ctx, ownerID)
}

// invalidate is best effort: a failed DEL only leaves a stale list until the TTL expires.
func (c *CachingPetRepository) invalidate(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.ownerKey(ownerID)).Err(); err != nil {
		slog.Warn("failed to invalidate pet list cache", "error", err, "user_id", ownerID)
	}
}

// ownerKey generates the cache key of an owner's pet list.
func (c *CachingPetRepository) ownerKey(ownerID uint) string {
	return fmt.Sprintf("%s:owner:%d", c.namespace, ownerID)
}
