package taxi

import (
	"fmt"
	"strings"

	"github.com/example/taxi-ledger/internal/models"
)

type Details struct {
	Ride     models.Ride     `json:"ride"`
	Customer models.Customer `json:"customer"`
	Driver   models.Driver   `json:"driver"`
	Currency string          `json:"currency"`
}

func (d Details) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ride #%d\n", d.Ride.ID)
	fmt.Fprintf(&b, "  Customer: %s (%s)\n", d.Customer.Name, d.Customer.Phone)
	fmt.Fprintf(&b, "  Driver:   %s (%s)\n", d.Driver.Name, d.Driver.Car)
	fmt.Fprintf(&b, "  Route:    %s -> %s\n", d.Ride.Start, d.Ride.End)
	fmt.Fprintf(&b, "  Distance: %.2f km\n", d.Ride.DistanceKm)
	fmt.Fprintf(&b, "  Price:    %.2f %s\n", d.Ride.Price, d.Currency)
	fmt.Fprintf(&b, "  Status:   %s\n", d.Ride.Status)
	fmt.Fprintf(&b, "  Map:      %s\n", d.Ride.MapPath)
	return b.String()
}
