package get_room_insights

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/analytics"
	"github.com/m04kA/SMC-ReservationService/internal/service/analytics/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidUserID   = "некорректный фильтр userId"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics/rooms?userId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /analytics/rooms - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	req := &models.SnapshotRequest{TenantID: tenantID}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /analytics/rooms - Invalid user filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		req.UserID = ptr.Ptr(userID)
	}

	result, err := h.service.GetRoomInsights(r.Context(), req)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgMissingTenantID)
			return
		}
		h.logger.Error("GET /analytics/rooms - Failed to build room insights: tenant_id=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /analytics/rooms - Room insights built: tenant_id=%s, rooms=%d", tenantID, len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}
