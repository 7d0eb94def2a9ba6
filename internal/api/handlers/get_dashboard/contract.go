package get_dashboard

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/analytics/models"
)

type AnalyticsService interface {
	GetDashboard(ctx context.Context, req *models.SnapshotRequest) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
