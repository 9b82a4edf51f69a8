package geo

import (
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"

	"github.com/example/taxi-ledger/internal/models"
)

const (
	earthRadiusKm = 6371.0

	// WGS-84 ellipsoid
	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563
	wgs84B = wgs84A * (1 - wgs84F)

	vincentyMaxIter   = 200
	vincentyTolerance = 1e-12

	geohashPrecision = 6
)

// Method selects how the distance between two coordinates is computed.
type Method string

const (
	MethodGeodesic  Method = "geodesic"
	MethodHaversine Method = "haversine"
)

// DistanceFunc returns the distance in kilometres between two points.
type DistanceFunc func(a, b models.Coord) float64

// DistanceFor returns the distance function for m.
func DistanceFor(m Method) (DistanceFunc, error) {
	switch m {
	case MethodGeodesic, "":
		return GeodesicKm, nil
	case MethodHaversine:
		return HaversineKm, nil
	default:
		return nil, fmt.Errorf("unknown distance method %q", m)
	}
}

// HaversineKm is the great-circle distance on a sphere of mean Earth radius.
func HaversineKm(a, b models.Coord) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// GeodesicKm is the distance on the WGS-84 ellipsoid (Vincenty inverse).
// Nearly antipodal points where the iteration does not converge fall back to
// HaversineKm.
func GeodesicKm(a, b models.Coord) float64 {
	if a == b {
		return 0
	}
	L := toRad(b.Lon - a.Lon)
	u1 := math.Atan((1 - wgs84F) * math.Tan(toRad(a.Lat)))
	u2 := math.Atan((1 - wgs84F) * math.Tan(toRad(b.Lat)))
	sinU1, cosU1 := math.Sin(u1), math.Cos(u1)
	sinU2, cosU2 := math.Sin(u2), math.Cos(u2)

	lambda := L
	var sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM float64
	converged := false
	for i := 0; i < vincentyMaxIter; i++ {
		sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)
		sinSigma = math.Sqrt((cosU2*sinLambda)*(cosU2*sinLambda) +
			(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			return 0
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		cos2SigmaM = 0
		if cos2Alpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}
		c := wgs84F / 16 * cos2Alpha * (4 + wgs84F*(4-3*cos2Alpha))
		prev := lambda
		lambda = L + (1-c)*wgs84F*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return HaversineKm(a, b)
	}

	uSq := cos2Alpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
	return wgs84B * A * (sigma - deltaSigma) / 1000
}

// Geohash encodes c at city-level precision (~1.2km cells).
func Geohash(c models.Coord) string {
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, geohashPrecision)
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
