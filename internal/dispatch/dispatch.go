package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/example/taxi-ledger/internal/models"
)

const EventRideCreated = "ride.created"

// RideEvent is the notification emitted once a ride is stored.
type RideEvent struct {
	Type         string    `json:"type"`
	RideID       int       `json:"ride_id"`
	CustomerID   int       `json:"customer_id"`
	DriverID     int       `json:"driver_id"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	StartGeohash string    `json:"start_geohash"`
	EndGeohash   string    `json:"end_geohash"`
	DistanceKm   float64   `json:"distance_km"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRideEvent builds the event for r. Geohashes are supplied by the caller
// because rides only carry city names.
func NewRideEvent(r models.Ride, startGeohash, endGeohash, currency string) RideEvent {
	return RideEvent{
		Type:         EventRideCreated,
		RideID:       r.ID,
		CustomerID:   r.CustomerID,
		DriverID:     r.DriverID,
		Start:        r.Start,
		End:          r.End,
		StartGeohash: startGeohash,
		EndGeohash:   endGeohash,
		DistanceKm:   r.DistanceKm,
		Price:        r.Price,
		Currency:     currency,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

type Dispatcher interface {
	RideCreated(ctx context.Context, ev RideEvent) error
}

// LogDispatcher only logs the event.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d *LogDispatcher) RideCreated(ctx context.Context, ev RideEvent) error {
	d.Logger.InfoContext(ctx, "ride_dispatched",
		"ride_id", ev.RideID,
		"driver_id", ev.DriverID,
		"customer_id", ev.CustomerID,
		"route", ev.Start+" -> "+ev.End,
		"price", ev.Price,
		"currency", ev.Currency,
	)
	return nil
}

// Multi delivers to every dispatcher and joins their errors.
type Multi []Dispatcher

func (m Multi) RideCreated(ctx context.Context, ev RideEvent) error {
	var errs []error
	for _, d := range m {
		if err := d.RideCreated(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
