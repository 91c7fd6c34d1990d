// Package kafka implements the events.Publisher interface over a Kafka
// topic.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/fluxbank/demo-bank/internal/events"
	"github.com/segmentio/kafka-go"
)

const topic = "transfer_completed"

// Publisher writes events to the transfer_completed topic
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher for the given brokers
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{Value: data})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ events.Publisher = (*Publisher)(nil)
