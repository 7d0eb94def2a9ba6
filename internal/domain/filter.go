package domain

import "github.com/google/uuid"

// ReservationFilter фильтр для выборки бронирований тенанта
// Все поля кроме TenantID опциональны
type ReservationFilter struct {
	TenantID   uuid.UUID
	ResourceID *uuid.UUID
	UserID     *uuid.UUID
	Window     *TimeRange          // Пересечение с полуоткрытым окном [start, end)
	Statuses   []ReservationStatus // Пусто = все статусы
	OrderDesc  bool                // Сортировка по start_at, по умолчанию ASC
}
