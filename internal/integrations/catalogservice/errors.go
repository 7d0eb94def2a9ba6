package catalogservice

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден у тенанта
	ErrResourceNotFound = errors.New("catalogservice client: resource not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrUnavailable возвращается, когда circuit breaker разомкнут
	ErrUnavailable = errors.New("catalogservice client: service unavailable")
)
