package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const notifyTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/m04kA/SMC-ReservationService/internal/service/reservations")

// Service сервис чтения и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	catalog         ResourceCatalog
	notifier        NotificationSink
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	channel         string
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	catalog ResourceCatalog,
	notifier NotificationSink,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	channel string,
) *Service {
	if channel == "" {
		channel = domain.DefaultNotificationChannel
	}
	return &Service{
		reservationRepo: reservationRepo,
		catalog:         catalog,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		channel:         channel,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование тенанта по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for tenant=%s", id, tenantID)

	res, err := s.loadOwned(ctx, "GetByID", tenantID, id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainReservation(res, "")
	return &resp, nil
}

// GetAvailability возвращает все бронирования ресурса, пересекающиеся с
// периодом [StartDate 00:00, EndDate+1 00:00) UTC, по возрастанию начала
func (s *Service) GetAvailability(ctx context.Context, req *models.GetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	if req.TenantID == uuid.Nil || req.ResourceID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenant and resource ids are required", ErrInvalidInput)
	}

	startDay := domain.StartOfDayUTC(req.StartDate)
	endDay := domain.StartOfDayUTC(req.EndDate)
	if endDay.Before(startDay) {
		s.logger.Warn("GetAvailability: endDate %s before startDate %s", endDay.Format(domain.DateFormat), startDay.Format(domain.DateFormat))
		return nil, ErrInvalidTimeRange
	}

	window, err := domain.NewTimeRange(startDay, endDay.Add(24*time.Hour))
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	s.logger.Info("GetAvailability: tenant=%s, resource=%s, period=%s to %s",
		req.TenantID, req.ResourceID, startDay.Format(domain.DateFormat), endDay.Format(domain.DateFormat))

	list, err := s.listReadOnly(ctx, domain.ReservationFilter{
		TenantID:   req.TenantID,
		ResourceID: &req.ResourceID,
		Window:     &window,
	})
	if err != nil {
		s.logger.Error("GetAvailability: repository error for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Range().Start().Before(list[j].Range().Start())
	})

	s.logger.Info("GetAvailability: found %d reservations for resource=%s", len(list), req.ResourceID)
	return &models.AvailabilityResponse{
		ResourceID:   req.ResourceID,
		StartDate:    startDay.Format(domain.DateFormat),
		EndDate:      endDay.Format(domain.DateFormat),
		Reservations: models.FromDomainReservationList(list, nil),
	}, nil
}

// Cancel отменяет бронирование
// Повторная отмена уже отменённого бронирования не является ошибкой и не отправляет уведомление
func (s *Service) Cancel(ctx context.Context, tenantID, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "CancelReservation")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant.id", tenantID.String()),
		attribute.String("reservation.id", id.String()),
	)

	s.logger.Info("Cancel: cancelling reservation id=%s for tenant=%s", id, tenantID)

	var (
		cancelled  *domain.Reservation
		transition bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.loadOwned(txCtx, "Cancel", tenantID, id)
		if err != nil {
			return err
		}

		if res.IsCancelled() {
			cancelled = res
			return nil
		}

		if err := res.SetStatus(domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - %v", ErrInternal, err)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, domain.StatusCancelled); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		cancelled = res
		transition = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrTenantMismatch) {
			return err
		}
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
		}
		s.logger.Error("Cancel: failed to cancel reservation id=%s: %v", id, err)
		span.RecordError(err)
		return err
	}

	if !transition {
		s.logger.Info("Cancel: reservation id=%s is already cancelled", id)
		return nil
	}

	s.metrics.ReservationCancelled()
	s.logger.Info("Cancel: successfully cancelled reservation id=%s", id)

	s.notify(ctx, domain.NewCancelledNotification(cancelled, s.channel))
	return nil
}

// GetForUser получает бронирования пользователя за окно и их количество по дням
// Окно по умолчанию [now-30d, now+60d); если конец не позже начала, конец = начало+30d
func (s *Service) GetForUser(ctx context.Context, req *models.GetForUserRequest) (*models.UserReservationsResponse, error) {
	if req.TenantID == uuid.Nil || req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenant and user ids are required", ErrInvalidInput)
	}

	window := resolveUserWindow(s.timeProvider.Now(), req.Start, req.End)

	s.logger.Info("GetForUser: tenant=%s, user=%s, window=[%s, %s)",
		req.TenantID, req.UserID, window.Start().Format(time.RFC3339), window.End().Format(time.RFC3339))

	list, err := s.listReadOnly(ctx, domain.ReservationFilter{
		TenantID:  req.TenantID,
		UserID:    &req.UserID,
		Window:    &window,
		OrderDesc: true,
	})
	if err != nil {
		s.logger.Error("GetForUser: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetForUser - repository error: %v", ErrInternal, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Range().Start().After(list[j].Range().Start())
	})

	// Имена ресурсов не критичны: при недоступности каталога подставляется заглушка
	names := map[uuid.UUID]string{}
	if len(list) > 0 {
		resources, err := s.catalog.ListResources(ctx, req.TenantID)
		if err != nil {
			s.logger.Warn("GetForUser: failed to resolve resource names for tenant=%s: %v", req.TenantID, err)
		} else {
			names = domain.ResourceNames(resources)
		}
	}

	s.logger.Info("GetForUser: found %d reservations for user=%s", len(list), req.UserID)
	return &models.UserReservationsResponse{
		UserID:       req.UserID,
		Start:        window.Start(),
		End:          window.End(),
		Reservations: models.FromDomainReservationList(list, names),
		Timeline:     dailyCounts(list),
	}, nil
}

// loadOwned получает бронирование и проверяет принадлежность тенанту
func (s *Service) loadOwned(ctx context.Context, op string, tenantID, id uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if !res.BelongsTo(tenantID) {
		s.logger.Warn("%s: reservation id=%s does not belong to tenant=%s", op, id, tenantID)
		return nil, ErrTenantMismatch
	}

	return res, nil
}

// listReadOnly выбирает бронирования в транзакции только для чтения.
// GetByID сюда не подходит: внутри транзакции он берёт FOR UPDATE.
func (s *Service) listReadOnly(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	var list []*domain.Reservation
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		list, err = s.reservationRepo.ListByFilter(txCtx, filter)
		return err
	})
	return list, err
}

func (s *Service) notify(ctx context.Context, n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.notifier.Send(ctx, n); err != nil {
		s.metrics.NotificationFailed()
		s.logger.Warn("Cancel: failed to send notification to user=%s: %v", n.UserID, err)
	}
}

// resolveUserWindow применяет окно по умолчанию и правило расширения
func resolveUserWindow(now time.Time, start, end *time.Time) domain.TimeRange {
	from := now.UTC().Add(-domain.DefaultLookbackWindow)
	to := now.UTC().Add(domain.DefaultLookaheadWindow)
	if start != nil {
		from = start.UTC()
	}
	if end != nil {
		to = end.UTC()
	}
	if !to.After(from) {
		to = from.Add(domain.DefaultWidenWindow)
	}

	window, _ := domain.NewTimeRange(from, to)
	return window
}

// dailyCounts считает бронирования по дате начала (UTC), по возрастанию даты
func dailyCounts(list []*domain.Reservation) []models.DailyCount {
	counts := make(map[time.Time]int)
	for _, r := range list {
		counts[domain.StartOfDayUTC(r.Range().Start())]++
	}

	days := make([]time.Time, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]models.DailyCount, 0, len(days))
	for _, d := range days {
		out = append(out, models.DailyCount{Date: d.Format(domain.DateFormat), Count: counts[d]})
	}
	return out
}
