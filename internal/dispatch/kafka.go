package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/taxi-ledger/internal/observability"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaDispatcher publishes ride events keyed by the start-city geohash, so
// rides leaving the same area land on the same partition.
type KafkaDispatcher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaDispatcher(brokers []string, topic string) *KafkaDispatcher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaDispatcher{writer: w, timeout: 2 * time.Second}
}

func (k *KafkaDispatcher) RideCreated(ctx context.Context, ev RideEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode ride event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()
	msg := kafka.Message{
		Key:   []byte(ev.StartGeohash),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		observability.NotificationFailures.WithLabelValues("kafka").Inc()
		return fmt.Errorf("publish ride %d: %w", ev.RideID, err)
	}
	return nil
}

// DecodeRideEvent parses a message published by KafkaDispatcher.
func DecodeRideEvent(b []byte) (RideEvent, error) {
	var ev RideEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return RideEvent{}, fmt.Errorf("decode ride event: %w", err)
	}
	if ev.Type != EventRideCreated {
		return RideEvent{}, fmt.Errorf("unexpected event type %q", ev.Type)
	}
	if ev.RideID <= 0 {
		return RideEvent{}, fmt.Errorf("ride event without ride id")
	}
	return ev, nil
}

func (k *KafkaDispatcher) Close() error {
	if k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
