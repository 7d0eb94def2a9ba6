package update_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на изменение бронирования
// Start и End передаются вместе или не передаются вовсе
type Request struct {
	ReservationID uuid.UUID
	TenantID      uuid.UUID
	Start         *time.Time
	End           *time.Time
	Status        *string
}

// Response модель ответа с изменённым бронированием
type Response struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	ResourceID uuid.UUID
	UserID     uuid.UUID
	Start      time.Time
	End        time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:         res.ID(),
		TenantID:   res.TenantID(),
		ResourceID: res.ResourceID(),
		UserID:     res.UserID(),
		Start:      res.Range().Start(),
		End:        res.Range().End(),
		Status:     string(res.Status()),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}
