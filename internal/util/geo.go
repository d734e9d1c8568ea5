package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// HaversineDistance returns the great-circle distance in meters between two
// lat/lng points.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert coordinates from degrees to S2 points
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	// Calculate angle between points
	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	// Convert angle to distance on Earth's surface
	earthRadiusMeters := 6371000.0
	distanceMeters := angle.Radians() * earthRadiusMeters

	return distanceMeters
}

// LocalPlanar converts a lat/lng point to signed east/north offsets in meters
// from an origin point. Good enough for city-scale extracts where a proper
// projected CRS is out of scope.
func LocalPlanar(originLat, originLng, lat, lng float64) [2]float64 {
	east := HaversineDistance(originLat, originLng, originLat, lng)
	if lng < originLng {
		east = -east
	}

	north := HaversineDistance(originLat, originLng, lat, originLng)
	if lat < originLat {
		north = -north
	}

	return [2]float64{east, north}
}
