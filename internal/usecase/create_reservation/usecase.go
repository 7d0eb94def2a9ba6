package create_reservation

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
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
)

const notifyTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation")

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	catalog         ResourceCatalog
	notifier        NotificationSink
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	channel         string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalog ResourceCatalog,
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
		catalog:         catalog,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		channel:         channel,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// из двух конкурирующих запросов на пересекающиеся интервалы успешен ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "CreateReservation")
	defer span.End()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("tenant.id", req.TenantID.String()),
		attribute.String("resource.id", req.ResourceID.String()),
	)

	uc.logger.Info("CreateReservation: tenant=%s, resource=%s, user=%s, range=[%s, %s)",
		req.TenantID, req.ResourceID, req.UserID, req.Start.UTC().Format(time.RFC3339), req.End.UTC().Format(time.RFC3339))

	// 2. Проверяем существование ресурса
	resource, err := uc.catalog.GetResource(ctx, req.TenantID, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("CreateReservation: resource id=%s not found for tenant=%s", req.ResourceID, req.TenantID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get resource id=%s: %v", req.ResourceID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog lookup failed")
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 3. Валидация интервала
	rng, err := domain.NewTimeRange(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid range [%s, %s)", req.Start, req.End)
		return nil, ErrInvalidTimeRange
	}

	var created *domain.Reservation

	// 4. Проверка пересечений и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Ищем активное бронирование ресурса, пересекающееся с интервалом (FOR UPDATE)
		exists, err := uc.reservationRepo.ExistsOverlapping(txCtx, req.TenantID, req.ResourceID, rng, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
		}
		if exists {
			return ErrConflict
		}

		// 4.2. Сохраняем бронирование со статусом Confirmed
		res, err := uc.reservationRepo.Create(txCtx, domain.NewReservation(req.TenantID, req.ResourceID, req.UserID, rng))
		if err != nil {
			// Exclusion constraint сработал для конкурентной вставки
			if errors.Is(err, reservationRepo.ErrOverlap) {
				return ErrConflict
			}
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		created = res
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrConflict) {
			uc.logger.Warn("CreateReservation: conflict on resource=%s for range [%s, %s)",
				req.ResourceID, rng.Start().Format(time.RFC3339), rng.End().Format(time.RFC3339))
			uc.metrics.ReservationConflict()
			return nil, ErrConflict
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.ReservationCreated()
	uc.logger.Info("CreateReservation: successfully created reservation id=%s", created.ID())

	// 5. Уведомление отправляется после коммита, ошибка не откатывает бронирование
	uc.notify(ctx, domain.NewConfirmedNotification(created, resource.Name, uc.channel))

	return toResponse(created, resource.Name), nil
}

func (uc *UseCase) notify(ctx context.Context, n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := uc.notifier.Send(ctx, n); err != nil {
		uc.metrics.NotificationFailed()
		uc.logger.Warn("CreateReservation: failed to send notification to user=%s: %v", n.UserID, err)
	}
}
