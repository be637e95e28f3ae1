package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Writer publishes the order lifecycle events the outbox relay hands it.
// The topic is fixed at construction; messages carry only key, payload
// and headers.
type Writer struct {
	*kafka.Writer
}

func NewWriter(brokers []string, topic string) *Writer {
	return &Writer{
		Writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (w *Writer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return w.Writer.WriteMessages(ctx, msgs...)
}
