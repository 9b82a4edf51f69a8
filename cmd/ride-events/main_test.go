package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"

	"github.com/example/taxi-ledger/internal/dispatch"
	"github.com/example/taxi-ledger/internal/logging"
)

// fakeReader replays msgs and then reports io.EOF.
type fakeReader struct {
	msgs []kafka.Message
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func eventMessage(t *testing.T, ev dispatch.RideEvent) kafka.Message {
	t.Helper()
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	return kafka.Message{Key: []byte(ev.StartGeohash), Value: b}
}

func TestConsumeTalliesRides(t *testing.T) {
	first := dispatch.RideEvent{Type: dispatch.EventRideCreated, RideID: 3, Start: "Tripoli", End: "Benghazi", StartGeohash: "smc7h4", DistanceKm: 651.62, Price: 977.43, Currency: "LYD"}
	second := dispatch.RideEvent{Type: dispatch.EventRideCreated, RideID: 6, Start: "Tripoli", End: "Misrata", StartGeohash: "smc7h4", DistanceKm: 186.95, Price: 280.42, Currency: "LYD"}
	r := &fakeReader{msgs: []kafka.Message{
		eventMessage(t, first),
		{Value: []byte("not json")},
		eventMessage(t, second),
	}}

	tl := newTally()
	var out bytes.Buffer
	consume(context.Background(), r, tl, &out, logging.Discard())

	if tl.rides != 2 {
		t.Fatalf("expected 2 rides, got %d", tl.rides)
	}
	if tl.byArea["smc7h4"] != 2 {
		t.Fatalf("expected 2 rides from smc7h4, got %d", tl.byArea["smc7h4"])
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "ride #3 Tripoli -> Benghazi 651.62 km 977.43 LYD") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "total 2 rides, 1257.85 LYD") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestConsumeStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := readerFunc(func(ctx context.Context) (kafka.Message, error) { return kafka.Message{}, ctx.Err() })
	consume(ctx, r, newTally(), io.Discard, logging.Discard())
}

type readerFunc func(ctx context.Context) (kafka.Message, error)

func (f readerFunc) ReadMessage(ctx context.Context) (kafka.Message, error) { return f(ctx) }
