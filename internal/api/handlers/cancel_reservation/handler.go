package cancel_reservation

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
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgMissingTenantID      = "отсутствует ID тенанта"
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := uuid.Parse(mux.Vars(r)["reservationId"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	if err := h.service.Cancel(r.Context(), tenantID, reservationID); err != nil {
		h.respondError(w, reservationID, err)
		return
	}

	// Возвращаем актуальное состояние бронирования
	reservation, err := h.service.GetByID(r.Context(), tenantID, reservationID)
	if err != nil {
		h.respondError(w, reservationID, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%s, tenant_id=%s",
		reservationID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}

func (h *Handler) respondError(w http.ResponseWriter, reservationID uuid.UUID, err error) {
	switch {
	case errors.Is(err, reservations.ErrReservationNotFound), errors.Is(err, reservations.ErrTenantMismatch):
		h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%s", reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%s, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
	}
}
