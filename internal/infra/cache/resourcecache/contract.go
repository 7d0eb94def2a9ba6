package resourcecache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// RedisClient подмножество *redis.Client, используемое кэшем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Catalog источник данных о ресурсах
type Catalog interface {
	GetResource(ctx context.Context, tenantID, resourceID uuid.UUID) (*domain.ResourceRef, error)
	ListResources(ctx context.Context, tenantID uuid.UUID) ([]domain.ResourceRef, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
