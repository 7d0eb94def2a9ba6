package resourcecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const keyPrefix = "reservation:catalog:"

// cachedResource формат хранения ресурса в Redis
type cachedResource struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
}

// CachedCatalog read-through кэш каталога ресурсов
// Ошибки Redis не прерывают запрос, он уходит в каталог напрямую.
// Отсутствие ресурса не кэшируется.
type CachedCatalog struct {
	client RedisClient
	next   Catalog
	ttl    time.Duration
	log    Logger
}

// New создает кэширующую обёртку над каталогом
func New(client RedisClient, next Catalog, ttl time.Duration, log Logger) *CachedCatalog {
	return &CachedCatalog{client: client, next: next, ttl: ttl, log: log}
}

// GetResource получает ресурс из кэша или каталога
func (c *CachedCatalog) GetResource(ctx context.Context, tenantID, resourceID uuid.UUID) (*domain.ResourceRef, error) {
	key := resourceKey(tenantID, resourceID)

	var cached cachedResource
	if c.load(ctx, key, &cached) {
		return &domain.ResourceRef{ID: cached.ID, TenantID: cached.TenantID, Name: cached.Name}, nil
	}

	ref, err := c.next.GetResource(ctx, tenantID, resourceID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, cachedResource{ID: ref.ID, TenantID: ref.TenantID, Name: ref.Name})
	return ref, nil
}

// ListResources получает список ресурсов тенанта из кэша или каталога
func (c *CachedCatalog) ListResources(ctx context.Context, tenantID uuid.UUID) ([]domain.ResourceRef, error) {
	key := listKey(tenantID)

	var cached []cachedResource
	if c.load(ctx, key, &cached) {
		refs := make([]domain.ResourceRef, 0, len(cached))
		for _, r := range cached {
			refs = append(refs, domain.ResourceRef{ID: r.ID, TenantID: r.TenantID, Name: r.Name})
		}
		return refs, nil
	}

	refs, err := c.next.ListResources(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	toCache := make([]cachedResource, 0, len(refs))
	for _, r := range refs {
		toCache = append(toCache, cachedResource{ID: r.ID, TenantID: r.TenantID, Name: r.Name})
	}
	c.store(ctx, key, toCache)
	return refs, nil
}

func (c *CachedCatalog) load(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("ResourceCache: get key=%s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("ResourceCache: corrupted value for key=%s: %v", key, err)
		return false
	}
	return true
}

func (c *CachedCatalog) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("ResourceCache: marshal key=%s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("ResourceCache: set key=%s failed: %v", key, err)
	}
}

func resourceKey(tenantID, resourceID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, tenantID, resourceID)
}

func listKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("%s%s:all", keyPrefix, tenantID)
}
