package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

const notifyTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation")

// UseCase use case для изменения интервала и статуса бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        NotificationSink
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	channel         string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	notifier NotificationSink,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	channel string,
) *UseCase {
	if channel == "" {
		channel = domain.DefaultNotificationChannel
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		channel:         channel,
	}
}

// Execute выполняет use case изменения бронирования
// Изменения применяются к копии и сохраняются только после проверки пересечений,
// при конфликте бронирование остаётся в исходном состоянии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "UpdateReservation")
	defer span.End()

	// 1. Валидация запроса
	ch, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("tenant.id", req.TenantID.String()),
		attribute.String("reservation.id", req.ReservationID.String()),
	)
	uc.logger.Info("UpdateReservation: reservation=%s, tenant=%s, rangeChanged=%t, statusChanged=%t",
		req.ReservationID, req.TenantID, ch.rng != nil, ch.status != nil)

	var (
		result    *domain.Reservation
		cancelled bool
	)

	// 2. Чтение, проверка и сохранение в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой строки
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 2.2. Проверяем принадлежность тенанту
		if !current.BelongsTo(req.TenantID) {
			return ErrTenantMismatch
		}

		// 2.3. Применяем изменения к копии
		updated := current.Clone()
		if ch.rng != nil {
			if err := updated.UpdateSchedule(*ch.rng); err != nil {
				return ErrInvalidTimeRange
			}
		}
		if ch.status != nil {
			if err := updated.SetStatus(*ch.status); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
			}
		}

		// 2.4. Проверка пересечений, исключая само бронирование
		if needsConflictCheck(current, updated, ch) {
			id := updated.ID()
			exists, err := uc.reservationRepo.ExistsOverlapping(txCtx, updated.TenantID(), updated.ResourceID(), updated.Range(), &id)
			if err != nil {
				return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
			}
			if exists {
				return ErrConflict
			}
		}

		// 2.5. Сохраняем
		if err := uc.reservationRepo.Update(txCtx, updated); err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				return ErrConflict
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		result = updated
		cancelled = !current.IsCancelled() && updated.IsCancelled()
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			uc.logger.Warn("UpdateReservation: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		case errors.Is(err, ErrTenantMismatch):
			uc.logger.Warn("UpdateReservation: reservation id=%s does not belong to tenant=%s", req.ReservationID, req.TenantID)
			return nil, ErrTenantMismatch
		case errors.Is(err, ErrConflict):
			uc.logger.Warn("UpdateReservation: conflict for reservation id=%s", req.ReservationID)
			uc.metrics.ReservationConflict()
			return nil, ErrConflict
		case errors.Is(err, ErrInvalidTimeRange), errors.Is(err, ErrInvalidRequest):
			return nil, err
		}

		uc.logger.Error("UpdateReservation: transaction failed for reservation id=%s: %v", req.ReservationID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%s, status=%s", result.ID(), result.Status())

	// 3. Перевод в cancelled уведомляет так же, как отмена
	if cancelled {
		uc.metrics.ReservationCancelled()
		uc.notify(ctx, domain.NewCancelledNotification(result, uc.channel))
	}

	return toResponse(result), nil
}

func (uc *UseCase) notify(ctx context.Context, n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := uc.notifier.Send(ctx, n); err != nil {
		uc.metrics.NotificationFailed()
		uc.logger.Warn("UpdateReservation: failed to send notification to user=%s: %v", n.UserID, err)
	}
}

// needsConflictCheck true, если изменённое бронирование блокирует слот и
// либо изменился интервал, либо оно стало блокирующим из неблокирующего статуса
func needsConflictCheck(current, updated *domain.Reservation, ch *changes) bool {
	if !updated.BlocksSlot() {
		return false
	}
	if ch.rng != nil {
		return true
	}
	return !current.BlocksSlot()
}
