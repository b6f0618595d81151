package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/profleet/fleettrack/internal/pkg/models"
)

// CellPrecision is the geohash precision (~38m cells) used to collapse stationary fixes
const CellPrecision = 8

// GeoPoint represents a geographical point with latitude and longitude
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// EncodePoint converts a coordinate to a geohash string
func EncodePoint(latitude, longitude float64, precision uint) string {
	return geohash.EncodeWithPrecision(latitude, longitude, precision)
}

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(point1, point2 GeoPoint) float64 {
	// Earth's radius in kilometers
	const earthRadius = 6371.0

	lat1 := point1.Latitude * math.Pi / 180.0
	lon1 := point1.Longitude * math.Pi / 180.0
	lat2 := point2.Latitude * math.Pi / 180.0
	lon2 := point2.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// PathDistance sums the great-circle legs between consecutive points
func PathDistance(points []models.RoutePoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += CalculateDistance(
			GeoPoint{Latitude: points[i-1].Lat, Longitude: points[i-1].Lng},
			GeoPoint{Latitude: points[i].Lat, Longitude: points[i].Lng},
		)
	}
	return total
}

// NamedPointDistance is the great-circle distance between two named points, 0 when either lacks coordinates
func NamedPointDistance(from, to models.NamedPoint) float64 {
	if !from.HasCoordinates() || !to.HasCoordinates() {
		return 0
	}
	return CalculateDistance(
		GeoPoint{Latitude: *from.Lat, Longitude: *from.Lng},
		GeoPoint{Latitude: *to.Lat, Longitude: *to.Lng},
	)
}

// CollapseByCell drops consecutive points that share a geohash cell, keeping the last of each run.
// The first and last points are always kept.
func CollapseByCell(points []models.RoutePoint, precision uint) []models.RoutePoint {
	n := len(points)
	if n <= 2 {
		return points
	}

	cells := make([]string, n)
	for i, p := range points {
		cells[i] = EncodePoint(p.Lat, p.Lng, precision)
	}

	out := make([]models.RoutePoint, 0, n)
	out = append(out, points[0])
	for i := 1; i < n; i++ {
		if i+1 < n && cells[i+1] == cells[i] {
			continue
		}
		out = append(out, points[i])
	}
	return out
}

// StridePoints keeps at most max points sampled uniformly, always keeping the first and last
func StridePoints(points []models.RoutePoint, max int) []models.RoutePoint {
	if max <= 0 || len(points) <= max {
		return points
	}
	if max == 1 {
		return []models.RoutePoint{points[len(points)-1]}
	}

	out := make([]models.RoutePoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		out = append(out, points[int(math.Round(float64(i)*step))])
	}
	return out
}
