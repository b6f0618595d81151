package usecase

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/services/tracking/mocks"
)

var testNow = time.Date(2026, 3, 1, 8, 10, 0, 0, time.UTC)

var (
	driverCaller   = models.Caller{UserID: "driver-1", Role: models.RoleDriver}
	otherDriver    = models.Caller{UserID: "driver-2", Role: models.RoleDriver}
	customerCaller = models.Caller{UserID: "cust-1", Role: models.RoleCustomer}
	otherCustomer  = models.Caller{UserID: "cust-2", Role: models.RoleCustomer}
	adminCaller    = models.Caller{UserID: "admin-1", Role: models.RoleAdmin}
)

type testDeps struct {
	repo  *mocks.MockTrackingRepo
	cache *mocks.MockLocationCache
	gw    *mocks.MockTrackingGW
	uc    *TrackingUC
}

func testConfig() *models.Config {
	return &models.Config{
		Tracking: models.TrackingConfig{
			MaxSamples:          10000,
			MaxRoutePoints:      500,
			PollInterval:        20 * time.Second,
			StaleGraceFactor:    3,
			StartGrace:          5 * time.Minute,
			MaxClockSkew:        5 * time.Minute,
			PlaceholderSpeedKmh: 50,
			SubscriberBuffer:    32,
			GeohashPrecision:    9,
		},
	}
}

func newTestDeps(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)
	deps := &testDeps{
		repo:  mocks.NewMockTrackingRepo(ctrl),
		cache: mocks.NewMockLocationCache(ctrl),
		gw:    mocks.NewMockTrackingGW(ctrl),
	}
	deps.uc = NewTrackingUC(testConfig(), deps.repo, deps.cache, deps.gw, WithClock(func() time.Time { return testNow }))
	return deps
}

func f64(v float64) *float64 { return &v }

func tp(t time.Time) *time.Time { return &t }

// riyadhTrip is an in-progress trip from Riyadh to Dammam assigned to driver-1 and booked by cust-1
func riyadhTrip() *models.Trip {
	return &models.Trip{
		ID:              "trip-1",
		TripNumber:      "TRP-0001",
		Status:          models.TripStatusInProgress,
		DriverID:        "driver-1",
		CustomerID:      "cust-1",
		FromCity:        "Riyadh",
		FromLat:         f64(24.7136),
		FromLng:         f64(46.6753),
		ToCity:          "Dammam",
		ToLat:           f64(26.4207),
		ToLng:           f64(50.0888),
		ScheduledDate:   testNow.Add(-time.Hour),
		ActualStartDate: tp(testNow.Add(-10 * time.Minute)),
		TrackingEnabled: true,
	}
}

func sampleAt(id string, lat, lng float64, at time.Time) *models.LocationSample {
	return &models.LocationSample{
		ID:         id,
		TripID:     "trip-1",
		DriverID:   "driver-1",
		Latitude:   lat,
		Longitude:  lng,
		Timestamp:  at,
		ReceivedAt: at.Add(time.Second),
	}
}
