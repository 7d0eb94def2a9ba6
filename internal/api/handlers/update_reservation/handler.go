package update_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgInvalidRequest       = "start и end передаются вместе, статус должен быть допустимым"
	msgInvalidTimeRange     = "время окончания должно быть позже времени начала"
	msgNotFound             = "бронирование не найдено"
	msgConflict             = "новый интервал пересекается с другим бронированием"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := uuid.Parse(mux.Vars(r)["reservationId"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, reservationID))
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrInvalidRequest):
			h.logger.Warn("PATCH /reservations/{id} - Invalid request: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, updateReservation.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /reservations/{id} - Invalid time range: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateReservation.ErrReservationNotFound), errors.Is(err, updateReservation.ErrTenantMismatch):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s, tenant_id=%s", reservationID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrConflict):
			h.logger.Warn("PATCH /reservations/{id} - Slot conflict: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reservation_id=%s, status=%s",
		reservationID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
