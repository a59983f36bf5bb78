// Package sink ships audit outbox records to Kafka.
package sink

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"enrollhub/internal/audit/worker"
)

// Kafka publishes outbox records to a single topic. The outbox ID is the
// record key so downstream consumers can deduplicate replays.
type Kafka struct {
	client *kgo.Client
	topic  string
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// Publish ships a batch synchronously; any per-record failure fails the
// batch so the worker retries it on the next tick.
func (k *Kafka) Publish(ctx context.Context, records []worker.Record) error {
	msgs := make([]*kgo.Record, len(records))
	for i, record := range records {
		msgs[i] = &kgo.Record{
			Topic: k.topic,
			Key:   []byte(record.ID.String()),
			Value: record.Payload,
		}
	}
	if err := k.client.ProduceSync(ctx, msgs...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit batch: %w", err)
	}
	return nil
}

func (k *Kafka) Close() {
	k.client.Close()
}
