package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID   uuid.UUID // ID тенанта
	ResourceID uuid.UUID // ID ресурса
	UserID     uuid.UUID // ID пользователя
	Start      time.Time // Начало интервала
	End        time.Time // Конец интервала (не включается)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	UserID       uuid.UUID
	Start        time.Time
	End          time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toResponse(res *domain.Reservation, resourceName string) *Response {
	return &Response{
		ID:           res.ID(),
		TenantID:     res.TenantID(),
		ResourceID:   res.ResourceID(),
		ResourceName: resourceName,
		UserID:       res.UserID(),
		Start:        res.Range().Start(),
		End:          res.Range().End(),
		Status:       string(res.Status()),
		CreatedAt:    res.CreatedAt(),
		UpdatedAt:    res.UpdatedAt(),
	}
}
