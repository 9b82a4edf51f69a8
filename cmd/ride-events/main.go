// Command ride-events tails the ride.created topic and prints a running
// ledger of published rides.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"github.com/example/taxi-ledger/internal/config"
	"github.com/example/taxi-ledger/internal/dispatch"
	"github.com/example/taxi-ledger/internal/logging"
	"github.com/example/taxi-ledger/internal/observability"
)

func main() {
	var metricsAddr, group string
	flag.StringVar(&metricsAddr, "metrics-addr", ":2112", "address to serve prometheus metrics on")
	flag.StringVar(&group, "group", "taxi-ledger-tail", "kafka consumer group")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stderr, cfg.LogLevel)

	brokers := cfg.KafkaBrokers
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
		logger.Info("metrics_listening", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Warn("metrics_server_stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: cfg.KafkaTopic, GroupID: group, MinBytes: 1, MaxBytes: 10e6})
	defer func() { _ = r.Close() }()

	logger.Info("consumer_listening", "topic", cfg.KafkaTopic, "brokers", brokers, "group", group)
	consume(ctx, r, newTally(), os.Stdout, logger)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

func consume(ctx context.Context, r messageReader, t *tally, out io.Writer, logger *slog.Logger) {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				logger.Info("consumer_stopped")
				return
			}
			logger.Warn("kafka_read_failed", "error", err, "backoff", backoff.String())
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = time.Second
		observability.EventsConsumed.Inc()

		ev, err := dispatch.DecodeRideEvent(m.Value)
		if err != nil {
			observability.EventsInvalid.Inc()
			logger.Warn("invalid_ride_event", "offset", m.Offset, "error", err)
			continue
		}
		t.add(ev)
		fmt.Fprintln(out, t.line(ev))
	}
}

// tally keeps running totals over consumed rides.
type tally struct {
	rides   int
	revenue map[string]float64 // by currency
	byArea  map[string]int     // by start geohash
}

func newTally() *tally {
	return &tally{revenue: map[string]float64{}, byArea: map[string]int{}}
}

func (t *tally) add(ev dispatch.RideEvent) {
	t.rides++
	t.revenue[ev.Currency] += ev.Price
	t.byArea[ev.StartGeohash]++
}

func (t *tally) line(ev dispatch.RideEvent) string {
	return fmt.Sprintf("ride #%d %s -> %s %.2f km %.2f %s [area %s: %d rides] total %d rides, %.2f %s",
		ev.RideID, ev.Start, ev.End, ev.DistanceKm, ev.Price, ev.Currency,
		ev.StartGeohash, t.byArea[ev.StartGeohash],
		t.rides, t.revenue[ev.Currency], ev.Currency)
}
