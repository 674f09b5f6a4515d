// Package messaging forwards committed audit entries to a message broker.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"tracker/internal/domain/shared/events"
	"tracker/internal/shared/logger"
)

const DefaultActivityQueue = "ticket.activity"

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher writes each event as a persistent JSON message to a durable
// queue through the default exchange.
type AMQPPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     publishChannel
	queue  string
	logger logger.Interface
}

func NewAMQPPublisher(url, queue string, log logger.Interface) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultActivityQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	log.Infow("connected to message broker", "queue", queue)
	return &AMQPPublisher{conn: conn, ch: ch, queue: queue, logger: log}, nil
}

func newAMQPPublisherWithChannel(ch publishChannel, queue string, log logger.Interface) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, queue: queue, logger: log}
}

// Handle publishes event; it satisfies events.EventHandler.
func (p *AMQPPublisher) Handle(ctx context.Context, event events.DomainEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.GetEventType(),
		Timestamp:    event.GetOccurredAt(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.GetEventType(), err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
