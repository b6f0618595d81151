package utils

import (
	"testing"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDistance(t *testing.T) {
	tests := []struct {
		name      string
		point1    GeoPoint
		point2    GeoPoint
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same point",
			point1:    GeoPoint{Latitude: 24.7136, Longitude: 46.6753},
			point2:    GeoPoint{Latitude: 24.7136, Longitude: 46.6753},
			expected:  0.0,
			tolerance: 0.001,
		},
		{
			name:      "Riyadh to Dammam (approximately)",
			point1:    GeoPoint{Latitude: 24.7136, Longitude: 46.6753},
			point2:    GeoPoint{Latitude: 26.4207, Longitude: 50.0888},
			expected:  392.0,
			tolerance: 10.0,
		},
		{
			name:      "One degree of latitude",
			point1:    GeoPoint{Latitude: 0, Longitude: 0},
			point2:    GeoPoint{Latitude: 1, Longitude: 0},
			expected:  111.19,
			tolerance: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CalculateDistance(tt.point1, tt.point2), tt.tolerance)
		})
	}
}

func TestEncodePoint(t *testing.T) {
	hash := EncodePoint(24.7136, 46.6753, 9)

	assert.Len(t, hash, 9)
	assert.Equal(t, hash[:CellPrecision], EncodePoint(24.7136, 46.6753, CellPrecision))
}

func routePoints(coords ...[2]float64) []models.RoutePoint {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	points := make([]models.RoutePoint, len(coords))
	for i, c := range coords {
		points[i] = models.RoutePoint{Lat: c[0], Lng: c[1], Timestamp: base.Add(time.Duration(i) * time.Minute)}
	}
	return points
}

func TestPathDistance(t *testing.T) {
	assert.Zero(t, PathDistance(nil))
	assert.Zero(t, PathDistance(routePoints([2]float64{24.7136, 46.6753})))

	points := routePoints([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0})
	assert.InDelta(t, 222.39, PathDistance(points), 0.2)
}

func TestNamedPointDistance(t *testing.T) {
	lat1, lng1, lat2, lng2 := 0.0, 0.0, 1.0, 0.0

	assert.InDelta(t, 111.19, NamedPointDistance(
		models.NamedPoint{Lat: &lat1, Lng: &lng1},
		models.NamedPoint{Lat: &lat2, Lng: &lng2},
	), 0.1)
	assert.Zero(t, NamedPointDistance(models.NamedPoint{Lat: &lat1, Lng: &lng1}, models.NamedPoint{Name: "Dammam"}))
}

func TestCollapseByCell(t *testing.T) {
	// three fixes parked in one spot between two moving fixes
	points := routePoints(
		[2]float64{24.7000, 46.6000},
		[2]float64{24.7136, 46.6753},
		[2]float64{24.7136, 46.67531},
		[2]float64{24.7136, 46.67532},
		[2]float64{24.8000, 46.7000},
	)

	collapsed := CollapseByCell(points, CellPrecision)

	require.Len(t, collapsed, 3)
	assert.Equal(t, points[0], collapsed[0])
	assert.Equal(t, points[3], collapsed[1])
	assert.Equal(t, points[4], collapsed[2])
}

func TestCollapseByCell_KeepsEndpointsWhenStationary(t *testing.T) {
	points := routePoints(
		[2]float64{24.7136, 46.6753},
		[2]float64{24.7136, 46.6753},
		[2]float64{24.7136, 46.6753},
	)

	collapsed := CollapseByCell(points, CellPrecision)

	require.Len(t, collapsed, 2)
	assert.Equal(t, points[0], collapsed[0])
	assert.Equal(t, points[2], collapsed[1])
}

func TestStridePoints(t *testing.T) {
	coords := make([][2]float64, 1000)
	for i := range coords {
		coords[i] = [2]float64{24 + float64(i)*0.001, 46}
	}
	points := routePoints(coords...)

	strided := StridePoints(points, 500)

	require.Len(t, strided, 500)
	assert.Equal(t, points[0], strided[0])
	assert.Equal(t, points[999], strided[499])
	for i := 1; i < len(strided); i++ {
		assert.True(t, strided[i].Timestamp.After(strided[i-1].Timestamp))
	}

	assert.Len(t, StridePoints(points[:10], 500), 10)
}
