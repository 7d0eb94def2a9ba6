package create_reservation

import (
	"time"

	"github.com/google/uuid"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resourceId"`
	Start      time.Time `json:"start"` // RFC3339
	End        time.Time `json:"end"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenantId"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	UserID       uuid.UUID `json:"userId"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	Status       string    `json:"status"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID, userID uuid.UUID) *createReservation.Request {
	return &createReservation.Request{
		TenantID:   tenantID,
		ResourceID: r.ResourceID,
		UserID:     userID,
		Start:      r.Start,
		End:        r.End,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		TenantID:     resp.TenantID,
		ResourceID:   resp.ResourceID,
		ResourceName: resp.ResourceName,
		UserID:       resp.UserID,
		Start:        resp.Start.Format(time.RFC3339),
		End:          resp.End.Format(time.RFC3339),
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
