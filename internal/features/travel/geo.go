package travel

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm   = 6371.0
	roadFactor      = 1.25 // typical road indirection over great-circle distance
	averageSpeedKmh = 40.0 // city traffic average
)

// Haversine returns the great-circle distance in kilometres between two
// coordinates in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RoadDistanceKm applies the fixed winding correction to a great-circle
// distance.
func RoadDistanceKm(greatCircleKm float64) float64 {
	return greatCircleKm * roadFactor
}

// EstimateDrivingMinutes converts a road distance to whole minutes of driving
// at the assumed average speed.
func EstimateDrivingMinutes(roadDistanceKm float64) int {
	return int(math.Round(roadDistanceKm / averageSpeedKmh * 60))
}

// FormatDuration renders whole minutes as "N min(s)" under an hour and
// "H hour(s) M min(s)" from an hour up.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d %s", minutes, pluralMin(minutes))
	}

	hours := minutes / 60
	mins := minutes % 60

	hourWord := "hour"
	if hours > 1 {
		hourWord = "hours"
	}

	return fmt.Sprintf("%d %s %d %s", hours, hourWord, mins, pluralMin(mins))
}

func pluralMin(n int) string {
	if n == 1 {
		return "min"
	}
	return "mins"
}

// FormatDistance renders metres as kilometres with one decimal.
func FormatDistance(meters int) string {
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
