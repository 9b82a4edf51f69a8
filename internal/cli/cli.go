// Package cli is the interactive menu in front of the taxi ledger.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/browser"

	httpapi "github.com/example/taxi-ledger/internal/http"
	"github.com/example/taxi-ledger/internal/models"
	"github.com/example/taxi-ledger/internal/taxi"
)

const menu = `
========================================
Libyan Taxi Ledger
========================================
1. Register customer
2. Register driver
3. Request ride
4. Show ride details
5. Open ride map
6. Exit
`

// Opener shows a ride's map to the user.
type Opener interface {
	Open(ride models.Ride) error
}

// BrowserOpener opens the map artifact in the default browser. When
// ServerAddr is set the map is opened through the map server instead.
type BrowserOpener struct {
	ServerAddr string
}

func (o BrowserOpener) Open(ride models.Ride) error {
	if o.ServerAddr != "" {
		return browser.OpenURL(httpapi.MapURL(o.ServerAddr, ride.ID))
	}
	path, err := filepath.Abs(ride.MapPath)
	if err != nil {
		return fmt.Errorf("resolve map path: %w", err)
	}
	return browser.OpenFile(path)
}

type App struct {
	sys    *taxi.System
	in     *bufio.Scanner
	out    io.Writer
	opener Opener
}

func New(sys *taxi.System, in io.Reader, out io.Writer, opener Opener) *App {
	return &App{sys: sys, in: bufio.NewScanner(in), out: out, opener: opener}
}

// Run shows the menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(a.out, menu)
		choice, ok := a.ask("Choose an option: ")
		if !ok {
			return a.in.Err()
		}
		var done bool
		switch choice {
		case "1":
			done = a.registerCustomer()
		case "2":
			done = a.registerDriver()
		case "3":
			done = a.requestRide(ctx)
		case "4":
			done = a.showDetails()
		case "5":
			done = a.openMap()
		case "6":
			fmt.Fprintln(a.out, "Thanks for using the taxi ledger!")
			return nil
		default:
			fmt.Fprintln(a.out, "Error: invalid choice")
		}
		if done {
			return a.in.Err()
		}
	}
}

// ask prints prompt and reads one trimmed line. It reports false at end of
// input.
func (a *App) ask(prompt string) (string, bool) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) askID(prompt string) (int, bool, bool) {
	v, ok := a.ask(prompt)
	if !ok {
		return 0, false, true
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %q is not a valid id\n", v)
		return 0, false, false
	}
	return id, true, false
}

func (a *App) registerCustomer() bool {
	name, ok := a.ask("Customer name: ")
	if !ok {
		return true
	}
	phone, ok := a.ask("Phone number: ")
	if !ok {
		return true
	}
	c := a.sys.RegisterCustomer(name, phone)
	fmt.Fprintf(a.out, "Customer #%d registered\n", c.ID)
	return false
}

func (a *App) registerDriver() bool {
	name, ok := a.ask("Driver name: ")
	if !ok {
		return true
	}
	car, ok := a.ask("Car plate: ")
	if !ok {
		return true
	}
	d := a.sys.RegisterDriver(name, car)
	fmt.Fprintf(a.out, "Driver #%d registered\n", d.ID)
	return false
}

func (a *App) requestRide(ctx context.Context) bool {
	customerID, ok, eof := a.askID("Customer id: ")
	if eof {
		return true
	}
	if !ok {
		return false
	}
	names := make([]string, 0, len(a.sys.Cities()))
	for _, c := range a.sys.Cities() {
		names = append(names, c.Name)
	}
	fmt.Fprintf(a.out, "Available cities: %s\n", strings.Join(names, ", "))
	start, ok := a.ask("Start city: ")
	if !ok {
		return true
	}
	end, ok := a.ask("Destination city: ")
	if !ok {
		return true
	}

	ride, err := a.sys.RequestRide(ctx, customerID, start, end)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return false
	}
	det, err := a.sys.RideDetails(ride.ID)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(a.out, "Ride #%d created with driver %s (%s)\n", ride.ID, det.Driver.Name, det.Driver.Car)
	fmt.Fprintf(a.out, "Distance: %.2f km, price: %.2f %s\n", ride.DistanceKm, ride.Price, a.sys.Currency())
	fmt.Fprintf(a.out, "Map saved to %s\n", ride.MapPath)
	return false
}

func (a *App) showDetails() bool {
	id, ok, eof := a.askID("Ride id: ")
	if eof {
		return true
	}
	if !ok {
		return false
	}
	det, err := a.sys.RideDetails(id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return false
	}
	fmt.Fprint(a.out, det.String())
	return false
}

func (a *App) openMap() bool {
	id, ok, eof := a.askID("Ride id: ")
	if eof {
		return true
	}
	if !ok {
		return false
	}
	ride, found := a.sys.Ride(id)
	if !found {
		fmt.Fprintf(a.out, "Error: %v\n", taxi.ErrUnknownRide)
		return false
	}
	if err := a.opener.Open(ride); err != nil {
		fmt.Fprintf(a.out, "Error: could not open map: %v\n", err)
		return false
	}
	fmt.Fprintf(a.out, "Opening map for ride #%d\n", ride.ID)
	return false
}
