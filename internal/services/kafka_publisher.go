package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/orders"
)

// KafkaPublisher publishes every placed order as a JSON record.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects a producer to brokers. The connection itself is
// only exercised on the first publish.
func NewKafkaPublisher(brokers []string, topic string, log logger.Logger) (*KafkaPublisher, error) {
	log.Info("creating kafka producer",
		logger.Any("brokers", brokers),
		logger.String("topic", topic),
	)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &KafkaPublisher{client: client, topic: topic}, nil
}

// Name identifies the sink in checkout receipts.
func (p *KafkaPublisher) Name() string { return "kafka" }

// OrderEventKey keys records by day and daily number, the pair that is
// unique in practice for a single storefront.
func OrderEventKey(rec orders.Record) string {
	return rec.OrderDate + "#" + rec.OrderNumber
}

// Submit produces rec and waits for the broker acknowledgement.
func (p *KafkaPublisher) Submit(ctx context.Context, rec orders.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(OrderEventKey(rec)),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish order %s to %s: %w", rec.OrderNumber, p.topic, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
