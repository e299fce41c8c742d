// Package broker forwards appointment events to a RabbitMQ topic exchange so
// other clinic services can react to schedule changes.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Bibek021/dental-one-sub000/internal/platform/events"
)

// RoutingKeyPrefix is prepended to the event type to form the routing key.
const RoutingKeyPrefix = "clinic."

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements events.Publisher on a RabbitMQ topic exchange.
// Only events on the shared appointments topic are forwarded; per-resource
// topics exist for browser subscriptions and would duplicate messages.
type Publisher struct {
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
	conn     io.Closer
	ch       channel
	exchange string
	logger   zerolog.Logger
}

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string, logger zerolog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	p, err := newPublisher(conn, ch, exchange, logger)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(conn io.Closer, ch channel, exchange string, logger zerolog.Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("rabbitmq declare exchange %s: %w", exchange, err)
	}
	logger = logger.With().Str("component", "broker").Str("exchange", exchange).Logger()
	logger.Info().Msg("rabbitmq publisher ready")
	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// RoutingKey returns the routing key for an event type.
func RoutingKey(eventType string) string {
	return RoutingKeyPrefix + eventType
}

// Publish sends event as persistent JSON.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if event.Topic != events.TopicAppointments {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	key := RoutingKey(event.Type)
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Timestamp,
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", key, err)
	}
	p.logger.Debug().Str("routing_key", key).Str("resource_id", event.ResourceID).Msg("event published")
	return nil
}

// Close closes the channel and then the connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if err := p.ch.Close(); err != nil {
		firstErr = err
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
