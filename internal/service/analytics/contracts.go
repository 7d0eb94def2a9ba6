package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// PaymentLedger интерфейс чтения платежей
type PaymentLedger interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID, reservationIDs []uuid.UUID) ([]domain.PaymentRecord, error)
}

// UserDirectory интерфейс справочника пользователей
type UserDirectory interface {
	ListUsersWithGracefulDegradation(ctx context.Context, tenantID uuid.UUID) ([]domain.UserRef, error)
}

// ResourceCatalog интерфейс каталога ресурсов
type ResourceCatalog interface {
	ListResources(ctx context.Context, tenantID uuid.UUID) ([]domain.ResourceRef, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
