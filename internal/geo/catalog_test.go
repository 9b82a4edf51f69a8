package geo

import (
	"math"
	"testing"

	"github.com/example/taxi-ledger/internal/models"
)

func TestCatalogLookup(t *testing.T) {
	c := LibyaCatalog(nil)
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Tripoli", "Tripoli", true},
		{"  benghazi ", "Benghazi", true},
		{"AL ABYAR", "Al Abyar", true},
		{"طرابلس", "Tripoli", true},
		{"مصراتة", "Misrata", true},
		{"Cairo", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := c.Lookup(tc.in)
		if ok != tc.ok || got.Name != tc.want {
			t.Errorf("Lookup(%q) = %q,%v want %q,%v", tc.in, got.Name, ok, tc.want, tc.ok)
		}
	}
}

func TestCatalogNamesKeepSeedOrder(t *testing.T) {
	names := LibyaCatalog(nil).Names()
	if len(names) != 10 || names[0] != "Tripoli" || names[9] != "Al Abyar" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestCatalogDistanceSymmetric(t *testing.T) {
	for _, fn := range []DistanceFunc{GeodesicKm, HaversineKm} {
		c := LibyaCatalog(fn)
		names := c.Names()
		for _, a := range names {
			for _, b := range names {
				ab, ok1 := c.Distance(a, b)
				ba, ok2 := c.Distance(b, a)
				if !ok1 || !ok2 {
					t.Fatalf("lookup failed for %s/%s", a, b)
				}
				if ab != ba {
					t.Fatalf("distance(%s,%s)=%v != distance(%s,%s)=%v", a, b, ab, b, a, ba)
				}
			}
		}
	}
}

func TestCatalogDistanceUnknownCity(t *testing.T) {
	c := LibyaCatalog(nil)
	if _, ok := c.Distance("Tripoli", "Atlantis"); ok {
		t.Fatal("expected miss for unknown end city")
	}
	if _, ok := c.Distance("Atlantis", "Tripoli"); ok {
		t.Fatal("expected miss for unknown start city")
	}
}

func TestCatalogCustomCities(t *testing.T) {
	c := NewCatalog([]models.City{
		{Name: "A", Loc: models.Coord{Lat: 0, Lon: 0}},
		{Name: "B", Loc: models.Coord{Lat: 0, Lon: 1}},
	}, map[string]string{"alpha": "A", "ghost": "Z"}, HaversineKm)
	d, ok := c.Distance("alpha", "B")
	if !ok || math.Abs(d-111.19) > 0.01 {
		t.Fatalf("distance = %f,%v", d, ok)
	}
	if _, ok := c.Lookup("ghost"); ok {
		t.Fatal("alias to unknown city should be ignored")
	}
}
