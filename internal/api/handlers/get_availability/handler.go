package get_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingTenantID   = "отсутствует ID тенанта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod     = "endDate не может быть раньше startDate"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability?startDate=2024-01-01&endDate=2024-01-07
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := uuid.Parse(mux.Vars(r)["resourceId"])
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /resources/{id}/availability - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	query := r.URL.Query()
	req, err := ParseRequest(tenantID, resourceID, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidTimeRange), errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/availability - Invalid period: resource_id=%s", resourceID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed to get availability: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability - Retrieved %d reservations: resource_id=%s",
		len(result.Reservations), resourceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
