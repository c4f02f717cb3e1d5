package privatejets

import (
	"math"

	"github.com/skypies/geo"
)

// EarthRadiusKM is the mean radius of the Earth. Leg distances and emissions figures are
// all computed against it.
const EarthRadiusKM = 6371.0

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }

// GreatCircleKM is the haversine distance between two points. It is symmetric, and zero
// for identical points.
func GreatCircleKM(from, to geo.Latlong) float64 {
	if from.Lat == to.Lat && from.Long == to.Long {
		return 0.0
	}

	lat1, lat2 := deg2rad(from.Lat), deg2rad(to.Lat)
	dLat := lat2 - lat1
	dLong := deg2rad(to.Long - from.Long)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}
