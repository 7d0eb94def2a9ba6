package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// RoutingKeyPrefix префикс routing key, полный ключ notification.<channel>
const RoutingKeyPrefix = "notification."

// Channel подмножество *amqp.Channel, используемое отправителем
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitSink публикует уведомления в topic exchange RabbitMQ
type RabbitSink struct {
	conn     *amqp.Connection
	mu       sync.Mutex // amqp.Channel не потокобезопасен для публикации
	ch       Channel
	exchange string
}

// NewRabbitSink подключается к брокеру и объявляет exchange
func NewRabbitSink(url, exchange string) (*RabbitSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
	}
	return &RabbitSink{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewRabbitSinkWithChannel создает отправителя поверх готового канала
func NewRabbitSinkWithChannel(ch Channel, exchange string) *RabbitSink {
	return &RabbitSink{ch: ch, exchange: exchange}
}

// Send публикует уведомление в формате JSON
func (s *RabbitSink) Send(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx, s.exchange, RoutingKeyPrefix+n.Channel, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает канал и соединение
func (s *RabbitSink) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
