package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	portsevents "github.com/SscSPs/payables_ledger/internal/core/ports/events"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives settlement events when no topic is configured.
const DefaultTopic = "obligation_settled"

// DefaultBatchTimeout bounds how long a synchronous write waits for more messages before flushing.
const DefaultBatchTimeout = 10 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes settlement events to a Kafka topic as JSON, keyed by obligation ID
// so events for one obligation land on one partition.
type Publisher struct {
	writer messageWriter
}

var _ portsevents.Publisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           DefaultBatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) PublishObligationSettled(ctx context.Context, event portsevents.ObligationSettled) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ObligationID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	})
	if err != nil {
		return fmt.Errorf("write %s event: %w", event.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
