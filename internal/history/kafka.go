package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes each event as JSON, keyed by kind and symbol.
type Kafka struct {
	writer messageWriter
}

// NewKafka flushes every event on its own. Record runs on the request path,
// so it must not sit out the writer's default one second batch window.
func NewKafka(broker, topic string) *Kafka {
	return &Kafka{writer: &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
	}}
}

func (k *Kafka) Record(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(string(e.Kind) + ":" + e.Symbol),
		Value: value,
		Time:  e.FetchedAt,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
