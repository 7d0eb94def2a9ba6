package notifier

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LogSink пишет уведомления в лог, используется без брокера
type LogSink struct {
	log Logger
}

// NewLogSink создает отправителя в лог
func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

// Send логирует уведомление
func (s *LogSink) Send(_ context.Context, n domain.Notification) error {
	s.log.Info("Notification: tenant=%s, user=%s, channel=%s, subject=%q, body=%q",
		n.TenantID, n.UserID, n.Channel, n.Subject, n.Body)
	return nil
}

// Close ничего не делает
func (s *LogSink) Close() error {
	return nil
}
