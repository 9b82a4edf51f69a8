// Package taxi is the ride ledger: customer and driver registration, ride
// requests priced by distance, and ride lookups.
package taxi

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/example/taxi-ledger/internal/dispatch"
	"github.com/example/taxi-ledger/internal/geo"
	"github.com/example/taxi-ledger/internal/logging"
	"github.com/example/taxi-ledger/internal/maprender"
	"github.com/example/taxi-ledger/internal/matcher"
	"github.com/example/taxi-ledger/internal/models"
	"github.com/example/taxi-ledger/internal/observability"
	"github.com/example/taxi-ledger/internal/storage"
)

const (
	DefaultPricePerKm = 1.5
	DefaultCurrency   = "LYD"
)

type Options struct {
	PricePerKm float64
	Currency   string
	Policy     matcher.Policy
	Renderer   maprender.Renderer
	Dispatcher dispatch.Dispatcher // optional
	Logger     *slog.Logger
	Now        func() time.Time
}

// System owns the store. The mutex lets the map server read while the CLI
// writes; the store itself is unsynchronised.
type System struct {
	mu      sync.Mutex
	store   *storage.MemoryStore
	catalog *geo.Catalog

	pricePerKm float64
	currency   string
	policy     matcher.Policy
	renderer   maprender.Renderer
	dispatcher dispatch.Dispatcher
	logger     *slog.Logger
	now        func() time.Time
}

func NewSystem(catalog *geo.Catalog, opts Options) *System {
	s := &System{
		store:      storage.NewMemoryStore(),
		catalog:    catalog,
		pricePerKm: opts.PricePerKm,
		currency:   opts.Currency,
		policy:     opts.Policy,
		renderer:   opts.Renderer,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if s.pricePerKm <= 0 {
		s.pricePerKm = DefaultPricePerKm
	}
	if s.currency == "" {
		s.currency = DefaultCurrency
	}
	if s.policy == nil {
		s.policy = matcher.FirstFit{}
	}
	if s.renderer == nil {
		s.renderer = maprender.NewHTMLRenderer(".", maprender.LibyaViewpoint)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *System) Currency() string { return s.currency }

func (s *System) RegisterCustomer(name, phone string) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.store.AddCustomer(name, phone)
	observability.CustomersRegistered.Inc()
	s.logger.Info("customer_registered", "customer_id", c.ID)
	return c
}

// RegisterDriver adds an available driver.
func (s *System) RegisterDriver(name, car string) models.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.store.AddDriver(name, car)
	observability.DriversRegistered.Inc()
	observability.DriversAvailable.Set(float64(s.store.AvailableDrivers()))
	s.logger.Info("driver_registered", "driver_id", d.ID)
	return d
}

// CalculateDistance returns the distance in km between two catalog cities,
// or false if either is unknown.
func (s *System) CalculateDistance(from, to string) (float64, bool) {
	return s.catalog.Distance(from, to)
}

// RequestRide assigns a driver to the customer and records the priced ride.
// On any error nothing in the ledger changes.
func (s *System) RequestRide(ctx context.Context, customerID int, start, end string) (models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, driver, err := s.createRide(ctx, customerID, start, end)
	if err != nil {
		kind := KindOf(err)
		observability.RideRequestFailures.WithLabelValues(string(kind)).Inc()
		if kind == KindInternal {
			s.logger.Error("ride_request_failed", "customer_id", customerID, "error", err)
		} else {
			s.logger.Warn("ride_request_rejected", "customer_id", customerID, "reason", kind, "error", err)
		}
		return models.Ride{}, err
	}

	observability.RidesCreated.Inc()
	observability.RideDistanceKm.Observe(ride.DistanceKm)
	observability.DriversAvailable.Set(float64(s.store.AvailableDrivers()))
	s.logger.Info("ride_created",
		"ride_id", ride.ID,
		"customer_id", ride.CustomerID,
		"driver_id", driver.ID,
		"distance_km", ride.DistanceKm,
		"price", ride.Price,
	)

	if s.dispatcher != nil {
		from, _ := s.catalog.Lookup(ride.Start)
		to, _ := s.catalog.Lookup(ride.End)
		ev := dispatch.NewRideEvent(ride, geo.Geohash(from.Loc), geo.Geohash(to.Loc), s.currency)
		if err := s.dispatcher.RideCreated(ctx, ev); err != nil {
			s.logger.Error("ride_notification_failed", "ride_id", ride.ID, "error", err)
		}
	}
	return ride, nil
}

func (s *System) createRide(ctx context.Context, customerID int, start, end string) (models.Ride, models.Driver, error) {
	if _, ok := s.store.Customer(customerID); !ok {
		return models.Ride{}, models.Driver{}, newError(ErrUnknownCustomer, "id %d", customerID)
	}
	driver, ok := s.policy.Select(s.store.Drivers())
	if !ok {
		return models.Ride{}, models.Driver{}, ErrNoDriverAvailable
	}
	from, ok := s.catalog.Lookup(start)
	if !ok {
		return models.Ride{}, models.Driver{}, newError(ErrUnknownCity, "%q", start)
	}
	to, ok := s.catalog.Lookup(end)
	if !ok {
		return models.Ride{}, models.Driver{}, newError(ErrUnknownCity, "%q", end)
	}
	if from.Name == to.Name {
		return models.Ride{}, models.Driver{}, newError(ErrInvalidRoute, "%s", from.Name)
	}
	km, _ := s.catalog.Distance(from.Name, to.Name)

	id := s.store.NextID()
	route := maprender.Route{
		From: maprender.Stop{Name: from.Name, Loc: from.Loc},
		To:   maprender.Stop{Name: to.Name, Loc: to.Loc},
	}
	mapPath, err := s.renderer.RenderRoute(ctx, route, id)
	if err != nil {
		return models.Ride{}, models.Driver{}, fmt.Errorf("render map for ride %d: %w", id, err)
	}

	ride := models.Ride{
		ID:         id,
		CustomerID: customerID,
		DriverID:   driver.ID,
		Start:      from.Name,
		End:        to.Name,
		DistanceKm: round2(km),
		Price:      round2(km * s.pricePerKm),
		Status:     models.RideStatusInProgress,
		MapPath:    mapPath,
		CreatedAt:  s.now(),
	}
	if err := s.store.SaveRide(ride); err != nil {
		return models.Ride{}, models.Driver{}, err
	}
	// Drivers are never released: there is no ride completion event.
	if err := s.store.MarkUnavailable(driver.ID); err != nil {
		return models.Ride{}, models.Driver{}, err
	}
	return ride, driver, nil
}

// RideDetails joins a ride with its customer and driver.
func (s *System) RideDetails(rideID int) (Details, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.store.Ride(rideID)
	if !ok {
		return Details{}, newError(ErrUnknownRide, "id %d", rideID)
	}
	c, _ := s.store.Customer(r.CustomerID)
	d, _ := s.store.Driver(r.DriverID)
	return Details{Ride: r, Customer: c, Driver: d, Currency: s.currency}, nil
}

func (s *System) Ride(id int) (models.Ride, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Ride(id)
}

func (s *System) Rides() []models.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Rides()
}

func (s *System) Customers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Customers()
}

func (s *System) Drivers() []models.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Drivers()
}

// Cities lists the catalog in display order.
func (s *System) Cities() []models.City { return s.catalog.Cities() }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
