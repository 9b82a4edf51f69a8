package storage

import (
	"errors"
	"fmt"

	"github.com/example/taxi-ledger/internal/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrIDMismatch = errors.New("ride id does not match next id")
)

// MemoryStore holds customers, drivers and rides in insertion order. All ids
// come from one counter shared by the three collections. It does no locking;
// callers serialise access.
type MemoryStore struct {
	nextID int

	customers     map[int]models.Customer
	customerOrder []int

	drivers     map[int]models.Driver
	driverOrder []int

	rides     map[int]models.Ride
	rideOrder []int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		customers: make(map[int]models.Customer),
		drivers:   make(map[int]models.Driver),
		rides:     make(map[int]models.Ride),
	}
}

// NextID reports the id the next created entity will receive.
func (m *MemoryStore) NextID() int { return m.nextID }

func (m *MemoryStore) take() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemoryStore) AddCustomer(name, phone string) models.Customer {
	c := models.Customer{ID: m.take(), Name: name, Phone: phone}
	m.customers[c.ID] = c
	m.customerOrder = append(m.customerOrder, c.ID)
	return c
}

func (m *MemoryStore) AddDriver(name, car string) models.Driver {
	d := models.Driver{ID: m.take(), Name: name, Car: car, Available: true}
	m.drivers[d.ID] = d
	m.driverOrder = append(m.driverOrder, d.ID)
	return d
}

// SaveRide stores r, which must carry the id reported by NextID.
func (m *MemoryStore) SaveRide(r models.Ride) error {
	if r.ID != m.nextID {
		return fmt.Errorf("%w: got %d, want %d", ErrIDMismatch, r.ID, m.nextID)
	}
	m.take()
	m.rides[r.ID] = r
	m.rideOrder = append(m.rideOrder, r.ID)
	return nil
}

// MarkUnavailable takes a driver out of the pool. There is no inverse.
func (m *MemoryStore) MarkUnavailable(driverID int) error {
	d, ok := m.drivers[driverID]
	if !ok {
		return fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
	}
	d.Available = false
	m.drivers[driverID] = d
	return nil
}

func (m *MemoryStore) Customer(id int) (models.Customer, bool) {
	c, ok := m.customers[id]
	return c, ok
}

func (m *MemoryStore) Driver(id int) (models.Driver, bool) {
	d, ok := m.drivers[id]
	return d, ok
}

func (m *MemoryStore) Ride(id int) (models.Ride, bool) {
	r, ok := m.rides[id]
	return r, ok
}

func (m *MemoryStore) Customers() []models.Customer {
	out := make([]models.Customer, 0, len(m.customerOrder))
	for _, id := range m.customerOrder {
		out = append(out, m.customers[id])
	}
	return out
}

// Drivers returns drivers in registration order.
func (m *MemoryStore) Drivers() []models.Driver {
	out := make([]models.Driver, 0, len(m.driverOrder))
	for _, id := range m.driverOrder {
		out = append(out, m.drivers[id])
	}
	return out
}

func (m *MemoryStore) Rides() []models.Ride {
	out := make([]models.Ride, 0, len(m.rideOrder))
	for _, id := range m.rideOrder {
		out = append(out, m.rides[id])
	}
	return out
}

// AvailableDrivers counts drivers that can still take a ride.
func (m *MemoryStore) AvailableDrivers() int {
	n := 0
	for _, d := range m.drivers {
		if d.Available {
			n++
		}
	}
	return n
}
