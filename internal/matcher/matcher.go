package matcher

import "github.com/example/taxi-ledger/internal/models"

// Policy picks the driver for a new ride from drivers in registration order.
type Policy interface {
	Select(drivers []models.Driver) (models.Driver, bool)
}

// FirstFit takes the first available driver. No proximity, rating or
// fairness is considered.
type FirstFit struct{}

func (FirstFit) Select(drivers []models.Driver) (models.Driver, bool) {
	for _, d := range drivers {
		if d.Available {
			return d, true
		}
	}
	return models.Driver{}, false
}
