package notify

import (
	"context"
	"time"

	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publisher is satisfied by *amqp.Channel.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSink publishes events to a durable topic exchange under booking.<kind>.
type AMQPSink struct {
	conn     *amqp.Connection
	ch       publisher
	exchange string
	now      func() time.Time
}

func DialAMQP(url, exchange string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "declare exchange")
	}
	return &AMQPSink{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

func newAMQPSink(ch publisher, exchange string, now func() time.Time) *AMQPSink {
	return &AMQPSink{ch: ch, exchange: exchange, now: now}
}

func (s *AMQPSink) Notify(ctx context.Context, userID uuid.UUID, kind shared.EventKind, payload shared.BookingEvent) error {
	body, err := encode(userID, kind, payload)
	if err != nil {
		return errs.Wrap(err, "encode booking event")
	}
	err = s.ch.PublishWithContext(ctx, s.exchange, RoutingKey(kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    s.now().UTC(),
		MessageId:    payload.BookingID.String() + ":" + kind.String(),
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s", RoutingKey(kind))
	}
	return nil
}

func (s *AMQPSink) Close() error {
	if ch, ok := s.ch.(*amqp.Channel); ok && ch != nil {
		_ = ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
