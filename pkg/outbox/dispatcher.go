package outbox

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/orderflow-io/orderflow/pkg/tracing"
)

// Producer writes messages to the topic it was configured with.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Dispatcher struct {
	log      *slog.Logger
	producer Producer
}

func NewDispatcher(log *slog.Logger, producer Producer) *Dispatcher {
	return &Dispatcher{log: log, producer: producer}
}

// Dispatch publishes one outbox event, keyed by aggregate id so all
// events of an order land on the same partition in append order. The
// trace context stored with the row is restored and propagated in the
// message headers.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(event.Type)},
	}
	headers = tracing.InjectKafkaHeaders(
		tracing.ContextWithTraceparent(ctx, event.Traceparent), headers)

	msg := kafka.Message{
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
	if err := d.producer.WriteMessages(ctx, msg); err != nil {
		d.log.Error("outbox dispatch failed", "event_id", event.ID, "err", err)
		return err
	}
	d.log.Info("outbox dispatched", "event_id", event.ID, "type", event.Type)
	return nil
}
