package update_reservation

import (
	"time"

	"github.com/google/uuid"

	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model, все поля опциональны
type UpdateReservationRequest struct {
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
	Status *string    `json:"status,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenantId"`
	ResourceID uuid.UUID `json:"resourceId"`
	UserID     uuid.UUID `json:"userId"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Status     string    `json:"status"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(tenantID, reservationID uuid.UUID) *updateReservation.Request {
	return &updateReservation.Request{
		ReservationID: reservationID,
		TenantID:      tenantID,
		Start:         r.Start,
		End:           r.End,
		Status:        r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		TenantID:   resp.TenantID,
		ResourceID: resp.ResourceID,
		UserID:     resp.UserID,
		Start:      resp.Start.Format(time.RFC3339),
		End:        resp.End.Format(time.RFC3339),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
