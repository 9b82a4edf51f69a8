package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CustomersRegistered = promauto.NewCounter(prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "customers_registered_total", Help: "Total number of registered customers"})
	DriversRegistered   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "drivers_registered_total", Help: "Total number of registered drivers"})
	RidesCreated        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "rides_created_total", Help: "Total number of rides created"})
	DriversAvailable    = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "taxi_ledger", Name: "drivers_available", Help: "Number of drivers that can still take a ride"})
	RideDistanceKm      = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taxi_ledger",
		Name:      "ride_distance_km",
		Help:      "Distance of created rides in kilometres",
		Buckets:   []float64{50, 100, 250, 500, 750, 1000, 1500},
	})

	RideRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "ride_request_failures_total", Help: "Rejected ride requests by reason"},
		[]string{"reason"},
	)
	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "notification_failures_total", Help: "Ride notifications that could not be delivered"},
		[]string{"dispatcher"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxi_ledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ride-events consumer
	EventsConsumed = promauto.NewCounter(prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "ride_events_consumed_total", Help: "Ride events read from Kafka"})
	EventsInvalid  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "taxi_ledger", Name: "ride_events_invalid_total", Help: "Ride events that could not be decoded"})
)
