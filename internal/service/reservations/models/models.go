package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// GetAvailabilityRequest запрос бронирований ресурса за период дат
type GetAvailabilityRequest struct {
	TenantID   uuid.UUID
	ResourceID uuid.UUID
	StartDate  time.Time // Первый день периода (UTC)
	EndDate    time.Time // Последний день периода включительно (UTC)
}

// GetForUserRequest запрос бронирований пользователя
type GetForUserRequest struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Start    *time.Time // По умолчанию now-30d
	End      *time.Time // По умолчанию now+60d
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenantId"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName,omitempty"`
	UserID       uuid.UUID `json:"userId"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"statusLabel"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AvailabilityResponse бронирования ресурса за период
type AvailabilityResponse struct {
	ResourceID   uuid.UUID             `json:"resourceId"`
	StartDate    string                `json:"startDate"` // "2024-01-01"
	EndDate      string                `json:"endDate"`
	Reservations []ReservationResponse `json:"reservations"`
}

// DailyCount количество бронирований за дату
type DailyCount struct {
	Date  string `json:"date"` // "2024-01-01"
	Count int    `json:"count"`
}

// UserReservationsResponse бронирования пользователя и их распределение по дням
type UserReservationsResponse struct {
	UserID       uuid.UUID             `json:"userId"`
	Start        time.Time             `json:"start"`
	End          time.Time             `json:"end"`
	Reservations []ReservationResponse `json:"reservations"`
	Timeline     []DailyCount          `json:"timeline"`
}

// FromDomainReservation конвертирует доменное бронирование в ответ
func FromDomainReservation(r *domain.Reservation, resourceName string) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID(),
		TenantID:     r.TenantID(),
		ResourceID:   r.ResourceID(),
		ResourceName: resourceName,
		UserID:       r.UserID(),
		Start:        r.Range().Start(),
		End:          r.Range().End(),
		Status:       string(r.Status()),
		StatusLabel:  r.Status().Label(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// FromDomainReservationList конвертирует список бронирований
// names может быть nil, тогда имя ресурса не заполняется
func FromDomainReservationList(list []*domain.Reservation, names map[uuid.UUID]string) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		name := ""
		if names != nil {
			name = domain.NameOr(names, r.ResourceID(), domain.UnknownResourceName)
		}
		out = append(out, FromDomainReservation(r, name))
	}
	return out
}
