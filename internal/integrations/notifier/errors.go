package notifier

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к RabbitMQ
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации уведомления
	ErrPublish = errors.New("notifier: failed to publish notification")
)
