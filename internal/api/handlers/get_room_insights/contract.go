package get_room_insights

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/analytics/models"
)

type AnalyticsService interface {
	GetRoomInsights(ctx context.Context, req *models.SnapshotRequest) (*models.RoomInsightsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
