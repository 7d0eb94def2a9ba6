package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrTenantMismatch возвращается, когда бронирование принадлежит другому тенанту
	ErrTenantMismatch = errors.New("update_reservation: reservation belongs to another tenant")

	// ErrInvalidRequest возвращается, когда указан только один из start/end или неизвестный статус
	ErrInvalidRequest = errors.New("update_reservation: invalid request")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("update_reservation: invalid time range")

	// ErrConflict возвращается, когда новый интервал пересекается с активным бронированием
	ErrConflict = errors.New("update_reservation: time slot is already reserved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
