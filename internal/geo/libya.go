package geo

import "github.com/example/taxi-ledger/internal/models"

var libyanCities = []models.City{
	{Name: "Tripoli", Loc: models.Coord{Lat: 32.8872, Lon: 13.1913}},
	{Name: "Benghazi", Loc: models.Coord{Lat: 32.1167, Lon: 20.0667}},
	{Name: "Misrata", Loc: models.Coord{Lat: 32.3783, Lon: 15.0906}},
	{Name: "Sabha", Loc: models.Coord{Lat: 27.0333, Lon: 14.4333}},
	{Name: "Tobruk", Loc: models.Coord{Lat: 32.0833, Lon: 23.9667}},
	{Name: "Zawiya", Loc: models.Coord{Lat: 32.7572, Lon: 12.7278}},
	{Name: "Ghat", Loc: models.Coord{Lat: 24.9647, Lon: 10.1683}},
	{Name: "Nalut", Loc: models.Coord{Lat: 31.8683, Lon: 10.9828}},
	{Name: "Derna", Loc: models.Coord{Lat: 32.7667, Lon: 22.6333}},
	{Name: "Al Abyar", Loc: models.Coord{Lat: 32.1833, Lon: 20.5833}},
}

var libyanAliases = map[string]string{
	"طرابلس":  "Tripoli",
	"بنغازي":  "Benghazi",
	"مصراتة":  "Misrata",
	"سبها":    "Sabha",
	"طبرق":    "Tobruk",
	"الزاوية": "Zawiya",
	"غات":     "Ghat",
	"نالوت":   "Nalut",
	"درنة":    "Derna",
	"الأبيار": "Al Abyar",
}

// LibyaCatalog returns the built-in catalog of Libyan cities.
func LibyaCatalog(distance DistanceFunc) *Catalog {
	return NewCatalog(libyanCities, libyanAliases, distance)
}
