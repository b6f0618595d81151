package repository

import (
	"context"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/circuitbreaker"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/services/tracking"
)

type guardedCache struct {
	cache   tracking.LocationCache
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedLocationCache fails cache calls fast while Redis keeps failing, so an
// outage of the advisory cache does not add a timeout to every ingestion
func NewGuardedLocationCache(cache tracking.LocationCache, breaker *circuitbreaker.CircuitBreaker) tracking.LocationCache {
	return &guardedCache{
		cache:   cache,
		breaker: breaker,
	}
}

func (g *guardedCache) SetDriverLocation(ctx context.Context, location *models.DriverLocation) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.cache.SetDriverLocation(ctx, location)
	})
}

func (g *guardedCache) GetDriverLocation(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	var location *models.DriverLocation
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		location, err = g.cache.GetDriverLocation(ctx, driverID)
		return err
	})
	return location, err
}

func (g *guardedCache) MarkTripLive(ctx context.Context, tripID string, lastSampleAt time.Time) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.cache.MarkTripLive(ctx, tripID, lastSampleAt)
	})
}

func (g *guardedCache) ListStaleTrips(ctx context.Context, before time.Time) ([]models.LiveTrip, error) {
	var trips []models.LiveTrip
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		trips, err = g.cache.ListStaleTrips(ctx, before)
		return err
	})
	return trips, err
}

func (g *guardedCache) RemoveLiveTrip(ctx context.Context, tripID string, lastSampleAt time.Time) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.cache.RemoveLiveTrip(ctx, tripID, lastSampleAt)
	})
}
