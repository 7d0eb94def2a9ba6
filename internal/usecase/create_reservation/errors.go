package create_reservation

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден у тенанта
	ErrResourceNotFound = errors.New("create_reservation: resource not found")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("create_reservation: invalid time range")

	// ErrConflict возвращается, когда слот занят активным бронированием
	ErrConflict = errors.New("create_reservation: time slot is already reserved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
