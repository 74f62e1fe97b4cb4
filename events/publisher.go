package events

import (
	"context"
	"encoding/json"
	"time"

	"microcourses/logger"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// AMQPPublisher writes persistent JSON messages to a durable queue. Each
// publish dials the broker; failures are logged and returned so callers may
// ignore them without failing the request.
type AMQPPublisher struct {
	url    string
	queue  string
	logger logger.Logger
	now    func() time.Time
}

// NewPublisher returns a NoopPublisher when url is empty.
func NewPublisher(url, queue string, log logger.Logger) Publisher {
	if url == "" {
		return NoopPublisher{}
	}
	return &AMQPPublisher{url: url, queue: queue, logger: log, now: time.Now}
}

func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	err := p.publish(ctx, eventType, payload)
	if err != nil {
		p.logger.Warn("rabbitmq: publish "+eventType+" failed", err)
	}
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, eventType string, payload interface{}) error {
	event, err := NewEvent(eventType, payload, p.now())
	if err != nil {
		return errors.Wrap(err, "marshal payload")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "channel open")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "queue declare")
	}

	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         eventType,
		Body:         body,
	})
}
