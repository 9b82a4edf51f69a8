package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/taxi-ledger/internal/geo"
	"github.com/example/taxi-ledger/internal/logging"
	"github.com/example/taxi-ledger/internal/maprender"
	"github.com/example/taxi-ledger/internal/taxi"
)

func newTestServer(t *testing.T) (*Server, int) {
	t.Helper()
	sys := taxi.NewSystem(geo.LibyaCatalog(nil), taxi.Options{
		Renderer: maprender.NewHTMLRenderer(t.TempDir(), maprender.LibyaViewpoint),
	})
	c := sys.RegisterCustomer("Ali", "091")
	sys.RegisterDriver("Omar", "car")
	ride, err := sys.RequestRide(context.Background(), c.ID, "Tripoli", "Benghazi")
	if err != nil {
		t.Fatalf("request ride: %v", err)
	}
	return NewServer(sys, logging.Discard()), ride.ID
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header missing")
	}
}

func TestRideDetailsJSON(t *testing.T) {
	s, id := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rides/3", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var det taxi.Details
	if err := json.NewDecoder(rec.Body).Decode(&det); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if det.Ride.ID != id || det.Customer.Name != "Ali" || det.Driver.Name != "Omar" || det.Ride.Price != 977.43 {
		t.Fatalf("unexpected details %+v", det)
	}
}

func TestRideDetailsUnknown(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rides/1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ride not found") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestListRides(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rides", nil))
	var body struct {
		Rides []struct {
			ID int `json:"id"`
		} `json:"rides"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Rides) != 1 || body.Rides[0].ID != 3 {
		t.Fatalf("unexpected rides %+v", body.Rides)
	}
}

func TestRideMapServed(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rides/3/map", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "End: Benghazi") {
		t.Fatal("map page not served")
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rides/99/map", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown ride, got %d", rec.Code)
	}
}

func TestMapURL(t *testing.T) {
	cases := map[string]string{
		":8080":         "http://localhost:8080/rides/4/map",
		"0.0.0.0:9000":  "http://localhost:9000/rides/4/map",
		"10.0.0.5:8080": "http://10.0.0.5:8080/rides/4/map",
		"maps.local":    "http://maps.local/rides/4/map",
	}
	for addr, want := range cases {
		if got := MapURL(addr, 4); got != want {
			t.Errorf("MapURL(%q) = %q, want %q", addr, got, want)
		}
	}
}
