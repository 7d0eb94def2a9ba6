package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	userClient "github.com/m04kA/SMC-ReservationService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/analytics/models"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-ReservationService/internal/service/analytics")

// Service сервис аналитики загрузки и выручки
type Service struct {
	reservationRepo ReservationRepository
	paymentLedger   PaymentLedger
	userDirectory   UserDirectory
	catalog         ResourceCatalog
	aggregator      *Aggregator
	logger          Logger
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(
	reservationRepo ReservationRepository,
	paymentLedger PaymentLedger,
	userDirectory UserDirectory,
	catalog ResourceCatalog,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		paymentLedger:   paymentLedger,
		userDirectory:   userDirectory,
		catalog:         catalog,
		aggregator:      NewAggregator(&RealTimeProvider{}),
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.aggregator = NewAggregator(tp)
	return s
}

// GetDashboard строит ряды загрузки и выручки и обе разбивки по одному снимку
func (s *Service) GetDashboard(ctx context.Context, req *models.SnapshotRequest) (*models.DashboardResponse, error) {
	s.logger.Info("GetDashboard: tenant=%s, user=%s", req.TenantID, userLabel(req.UserID))

	snap, err := s.LoadSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	usage, revenue := s.aggregator.Breakdown(snap.Reservations, snap.Payments, snap.Users, snap.Resources)

	resp := &models.DashboardResponse{
		UsageTimeline:        models.FromDomainTimeline(s.aggregator.UsageTimeline(snap.Reservations, len(snap.Resources))),
		RevenueTimeline:      models.FromDomainTimeline(s.aggregator.RevenueTimeline(snap.Payments)),
		UtilizationBreakdown: models.FromDomainBreakdown(usage),
		RevenueBreakdown:     models.FromDomainBreakdown(revenue),
	}

	s.logger.Info("GetDashboard: tenant=%s, %d reservations, %d payments, %d breakdown rows",
		req.TenantID, len(snap.Reservations), len(snap.Payments), len(usage))
	return resp, nil
}

// GetRoomInsights строит загрузку и историю бронирований каждого ресурса
func (s *Service) GetRoomInsights(ctx context.Context, req *models.SnapshotRequest) (*models.RoomInsightsResponse, error) {
	s.logger.Info("GetRoomInsights: tenant=%s, user=%s", req.TenantID, userLabel(req.UserID))

	snap, err := s.LoadSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	insights := s.aggregator.RoomInsights(snap.Reservations, snap.Payments, snap.Users, snap.Resources)

	s.logger.Info("GetRoomInsights: tenant=%s, %d resources", req.TenantID, len(insights))
	return models.FromDomainRoomInsights(insights), nil
}

// LoadSnapshot загружает бронирования, пользователей, ресурсы и платежи тенанта.
// Независимые выборки выполняются параллельно. С фильтром по пользователю
// платежи ограничиваются его бронированиями.
func (s *Service) LoadSnapshot(ctx context.Context, req *models.SnapshotRequest) (*domain.Snapshot, error) {
	if req == nil || req.TenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	ctx, span := tracer.Start(ctx, "LoadAnalyticsSnapshot",
		trace.WithAttributes(
			attribute.String("tenant.id", req.TenantID.String()),
			attribute.Bool("filter.user", req.UserID != nil),
		),
	)
	defer span.End()

	snap := &domain.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.reservationRepo.ListByFilter(gctx, domain.ReservationFilter{
			TenantID: req.TenantID,
			UserID:   req.UserID,
		})
		if err != nil {
			return fmt.Errorf("%w: LoadSnapshot - reservations: %v", ErrInternal, err)
		}
		snap.Reservations = list

		if req.UserID == nil {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(list))
		for _, r := range list {
			ids = append(ids, r.ID())
		}
		payments, err := s.paymentLedger.ListByTenant(gctx, req.TenantID, ids)
		if err != nil {
			return fmt.Errorf("%w: LoadSnapshot - payments: %v", ErrInternal, err)
		}
		snap.Payments = payments
		return nil
	})

	if req.UserID == nil {
		g.Go(func() error {
			payments, err := s.paymentLedger.ListByTenant(gctx, req.TenantID, nil)
			if err != nil {
				return fmt.Errorf("%w: LoadSnapshot - payments: %v", ErrInternal, err)
			}
			snap.Payments = payments
			return nil
		})
	}

	g.Go(func() error {
		resources, err := s.catalog.ListResources(gctx, req.TenantID)
		if err != nil {
			return fmt.Errorf("%w: LoadSnapshot - resources: %v", ErrInternal, err)
		}
		snap.Resources = resources
		return nil
	})

	g.Go(func() error {
		users, err := s.userDirectory.ListUsersWithGracefulDegradation(gctx, req.TenantID)
		if err != nil {
			if errors.Is(err, userClient.ErrServiceDegraded) {
				s.logger.Warn("LoadSnapshot: user names unavailable for tenant=%s, using placeholders", req.TenantID)
				snap.Users = []domain.UserRef{}
				return nil
			}
			return fmt.Errorf("%w: LoadSnapshot - users: %v", ErrInternal, err)
		}
		snap.Users = users
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("LoadSnapshot: tenant=%s: %v", req.TenantID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot load failed")
		return nil, err
	}

	return snap, nil
}

func userLabel(id *uuid.UUID) string {
	if id == nil {
		return "all"
	}
	return id.String()
}
