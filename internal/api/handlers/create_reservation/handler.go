package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingHeaders     = "отсутствует ID тенанта или пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgResourceNotFound   = "ресурс не найден"
	msgConflict           = "выбранный интервал уже забронирован"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, okTenant := middleware.GetTenantID(r.Context())
	userID, okUser := middleware.GetUserID(r.Context())
	if !okTenant || !okUser {
		h.logger.Warn("POST /reservations - Missing tenant or user ID")
		handlers.RespondUnauthorized(w, msgMissingHeaders)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, userID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /reservations - Invalid time range: tenant_id=%s, resource_id=%s", tenantID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrResourceNotFound):
			h.logger.Warn("POST /reservations - Resource not found: tenant_id=%s, resource_id=%s", tenantID, req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createReservation.ErrConflict):
			h.logger.Warn("POST /reservations - Slot conflict: tenant_id=%s, resource_id=%s", tenantID, req.ResourceID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: tenant_id=%s, resource_id=%s, error=%v",
				tenantID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, tenant_id=%s, user_id=%s",
		result.ID, tenantID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
