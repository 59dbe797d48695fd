// Package publish pushes each catalog build onto a Kafka topic so other
// services can react to rebuilds without polling the JSON document.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

// messageWriter abstracts kafka.Writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes catalog entities as JSON messages keyed by
// object ID. Pure-Go client (segmentio/kafka-go).
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher.
// bootstrap can be a comma-separated list of host:port.
func NewKafkaPublisher(bootstrap, topic string) *KafkaPublisher {
	var brokers []string
	for _, a := range strings.Split(bootstrap, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			brokers = append(brokers, a)
		}
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}}
}

// NewKafkaPublisherWith is only for tests to inject a fake writer.
func NewKafkaPublisherWith(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish writes one message per catalog entity. Publishing is best-effort
// relative to the build: a failure surfaces to the caller but the JSON
// catalog has already been persisted by then.
func (p *KafkaPublisher) Publish(ctx context.Context, objects []model.SpaceObject) error {
	if len(objects) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(objects))
	for _, obj := range objects {
		b, err := json.Marshal(&obj)
		if err != nil {
			return fmt.Errorf("marshal %q: %w", obj.ID, err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(obj.ID), Value: b})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish catalog: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
