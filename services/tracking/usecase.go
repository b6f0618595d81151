package tracking

import (
	"context"

	"github.com/profleet/fleettrack/internal/pkg/models"
)

// TrackingUC defines the live trip tracking business logic
type TrackingUC interface {
	// IngestSample validates and stores one driver fix, then updates the cache and live feed
	IngestSample(ctx context.Context, caller models.Caller, req *models.IngestRequest) (*models.IngestResult, error)
	// AssembleRoute builds the ordered route of a trip for a permitted caller
	AssembleRoute(ctx context.Context, caller models.Caller, tripID string) (*models.RouteDescription, error)
	// LatestForTrip is the poll adapter for a trip
	LatestForTrip(ctx context.Context, caller models.Caller, tripID string) (*models.LatestPosition, error)
	// LatestForDriver is the poll adapter for a driver
	LatestForDriver(ctx context.Context, caller models.Caller, driverID string) (*models.LatestPosition, error)
	// AuthorizeTripView checks that the caller may watch a trip
	AuthorizeTripView(ctx context.Context, caller models.Caller, tripID string) error
	// AuthorizeDriverView checks that the caller may watch a driver
	AuthorizeDriverView(ctx context.Context, caller models.Caller, driverID string) error
	// SweepStale announces STALE for live trips that stopped reporting and returns how many
	SweepStale(ctx context.Context) (int, error)
}
