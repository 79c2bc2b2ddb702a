package airports

import (
	"math"

	"github.com/ngmaloney/skycast/internal/models"
)

// HaversineDistance calculates distance in miles between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMiles = 3959.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// RouteDistance is the great-circle distance between two airports in miles
func RouteDistance(origin, dest models.AirportRecord) float64 {
	return HaversineDistance(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude)
}
