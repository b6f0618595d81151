package tracking

import (
	"context"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/models"
)

// TrackingRepo is the append-only location sample store plus read access to trips
type TrackingRepo interface {
	// GetTrip returns the trip or an apperror NotFound
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	// InsertSample appends exactly one sample row
	InsertSample(ctx context.Context, sample *models.LocationSample) error
	// ListSamples returns at most limit of the trip's most recent samples in no guaranteed order
	ListSamples(ctx context.Context, tripID string, limit int) ([]*models.LocationSample, error)
	// TrackSummary aggregates the trip's whole log: distance, count and earliest fix
	TrackSummary(ctx context.Context, tripID string) (*models.TrackSummary, error)
	// LatestSample returns the most recent sample of a trip, nil when it has none
	LatestSample(ctx context.Context, tripID string) (*models.LocationSample, error)
	// LatestDriverSample returns the most recent sample reported by a driver, nil when none
	LatestDriverSample(ctx context.Context, driverID string) (*models.LocationSample, error)
}

// LocationCache keeps advisory last-known positions and the live-trip registry
type LocationCache interface {
	SetDriverLocation(ctx context.Context, location *models.DriverLocation) error
	GetDriverLocation(ctx context.Context, driverID string) (*models.DriverLocation, error)
	MarkTripLive(ctx context.Context, tripID string, lastSampleAt time.Time) error
	ListStaleTrips(ctx context.Context, before time.Time) ([]models.LiveTrip, error)
	RemoveLiveTrip(ctx context.Context, tripID string, lastSampleAt time.Time) error
}
