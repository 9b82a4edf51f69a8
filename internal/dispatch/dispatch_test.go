package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/taxi-ledger/internal/models"
)

type fakeWriter struct {
	msgs   []kafka.Message
	fail   error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.fail != nil {
		return f.fail
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { f.closed = true; return nil }

func sampleEvent() RideEvent {
	r := models.Ride{
		ID: 4, CustomerID: 1, DriverID: 2,
		Start: "Tripoli", End: "Benghazi",
		DistanceKm: 651.62, Price: 977.43,
		Status:    models.RideStatusInProgress,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	return NewRideEvent(r, "smc7h4", "smwq8w", "LYD")
}

func TestKafkaDispatcherPublishesKeyedEvent(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaDispatcher{writer: w, timeout: time.Second}
	if err := k.RideCreated(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	m := w.msgs[0]
	if string(m.Key) != "smc7h4" {
		t.Fatalf("expected start geohash key, got %q", m.Key)
	}
	var got RideEvent
	if err := json.Unmarshal(m.Value, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != EventRideCreated || got.RideID != 4 || got.Price != 977.43 || got.Status != "in progress" {
		t.Fatalf("unexpected event %+v", got)
	}
	if err := k.Close(); err != nil || !w.closed {
		t.Fatal("writer not closed")
	}
}

func TestKafkaDispatcherWrapsWriteError(t *testing.T) {
	k := &KafkaDispatcher{writer: &fakeWriter{fail: errors.New("broker down")}, timeout: time.Second}
	err := k.RideCreated(context.Background(), sampleEvent())
	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestLogDispatcher(t *testing.T) {
	var buf bytes.Buffer
	d := &LogDispatcher{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	if err := d.RideCreated(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("log dispatch: %v", err)
	}
	if !strings.Contains(buf.String(), `"route":"Tripoli -> Benghazi"`) {
		t.Fatalf("unexpected log line %s", buf.String())
	}
}

type countingDispatcher struct {
	n   int
	err error
}

func (c *countingDispatcher) RideCreated(ctx context.Context, ev RideEvent) error {
	c.n++
	return c.err
}

func TestMultiDeliversToAll(t *testing.T) {
	a := &countingDispatcher{err: errors.New("a failed")}
	b := &countingDispatcher{}
	err := Multi{a, b}.RideCreated(context.Background(), sampleEvent())
	if a.n != 1 || b.n != 1 {
		t.Fatalf("expected both dispatchers called, got %d %d", a.n, b.n)
	}
	if err == nil || !strings.Contains(err.Error(), "a failed") {
		t.Fatalf("expected joined error, got %v", err)
	}
}

func TestDecodeRideEvent(t *testing.T) {
	ev := sampleEvent()
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeRideEvent(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RideID != ev.RideID || got.StartGeohash != ev.StartGeohash || !got.CreatedAt.Equal(ev.CreatedAt) {
		t.Fatalf("unexpected event %+v", got)
	}

	cases := map[string]string{
		"not json":   `{`,
		"wrong type": `{"type":"ride.cancelled","ride_id":4}`,
		"no ride id": `{"type":"ride.created"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeRideEvent([]byte(raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
