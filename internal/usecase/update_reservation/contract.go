package update_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ExistsOverlapping(ctx context.Context, tenantID, resourceID uuid.UUID, rng domain.TimeRange, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, res *domain.Reservation) error
}

// NotificationSink интерфейс отправки уведомлений
type NotificationSink interface {
	Send(ctx context.Context, n domain.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	ReservationConflict()
	ReservationCancelled()
	NotificationFailed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
