package geo

import (
	"strings"

	"github.com/example/taxi-ledger/internal/models"
)

// Catalog is a static, read-only table of city coordinates.
type Catalog struct {
	cities   []models.City
	index    map[string]int
	distance DistanceFunc
}

// NewCatalog builds a catalog from cities, keeping their order. aliases maps
// extra names to a canonical city name; aliases for unknown cities are ignored.
func NewCatalog(cities []models.City, aliases map[string]string, distance DistanceFunc) *Catalog {
	if distance == nil {
		distance = GeodesicKm
	}
	c := &Catalog{
		cities:   append([]models.City(nil), cities...),
		index:    make(map[string]int, len(cities)+len(aliases)),
		distance: distance,
	}
	for i, city := range c.cities {
		c.index[normalize(city.Name)] = i
	}
	for alias, name := range aliases {
		if i, ok := c.index[normalize(name)]; ok {
			c.index[normalize(alias)] = i
		}
	}
	return c
}

// Lookup resolves a city by name or alias, ignoring case and surrounding
// whitespace.
func (c *Catalog) Lookup(name string) (models.City, bool) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return models.City{}, false
	}
	return c.cities[i], true
}

// Cities returns the catalog in seed order.
func (c *Catalog) Cities() []models.City {
	return append([]models.City(nil), c.cities...)
}

// Names returns canonical city names in seed order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.cities))
	for i, city := range c.cities {
		out[i] = city.Name
	}
	return out
}

// Distance returns the distance in km between two named cities, or false if
// either is unknown. The result does not depend on argument order.
func (c *Catalog) Distance(from, to string) (float64, bool) {
	a, ok := c.Lookup(from)
	if !ok {
		return 0, false
	}
	b, ok := c.Lookup(to)
	if !ok {
		return 0, false
	}
	p, q := a.Loc, b.Loc
	if less(q, p) {
		p, q = q, p
	}
	return c.distance(p, q), true
}

func less(a, b models.Coord) bool {
	if a.Lat != b.Lat {
		return a.Lat < b.Lat
	}
	return a.Lon < b.Lon
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
