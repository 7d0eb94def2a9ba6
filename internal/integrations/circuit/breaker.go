package circuit

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Logger интерфейс для логирования смены состояния
type Logger interface {
	Warn(format string, v ...interface{})
}

// Settings настройки circuit breaker для HTTP клиента
type Settings struct {
	Name             string
	MaxRequests      uint32        // Запросов в half-open состоянии
	Interval         time.Duration // Период сброса счётчиков в closed состоянии
	Timeout          time.Duration // Длительность open состояния
	FailureThreshold uint32        // Подряд идущих ошибок до размыкания

	// IsSuccessful позволяет не считать бизнес-ошибки (например, 404) отказами
	IsSuccessful func(err error) bool
}

// New создает circuit breaker для операций, возвращающих T
func New[T any](s Settings, log Logger) *gobreaker.CircuitBreaker[T] {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("circuit breaker %s state changed: %s -> %s", name, from.String(), to.String())
			}
		},
		IsSuccessful: s.IsSuccessful,
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}
