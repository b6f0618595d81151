package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/profleet/fleettrack/internal/pkg/constants"
	"github.com/profleet/fleettrack/internal/pkg/database"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/services/tracking/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &database.RedisClient{Client: client}
}

func TestSetAndGetDriverLocation(t *testing.T) {
	mr, client := setupMiniredis(t)
	cache := repository.NewLocationCache(client)
	ctx := context.Background()

	heading := 270.0
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	err := cache.SetDriverLocation(ctx, &models.DriverLocation{
		DriverID:  "driver-1",
		TripID:    "trip-1",
		Latitude:  24.7136,
		Longitude: 46.6753,
		Heading:   &heading,
		Timestamp: ts,
	})
	require.NoError(t, err)

	key := fmt.Sprintf(constants.KeyDriverLocation, "driver-1")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, constants.DriverLocationTTL, mr.TTL(key))
	assert.Equal(t, "trip-1", mr.HGet(key, constants.FieldTripID))

	// the per-driver hash is the only key written
	assert.Equal(t, []string{key}, mr.Keys())

	location, err := cache.GetDriverLocation(ctx, "driver-1")
	require.NoError(t, err)
	require.NotNil(t, location)
	assert.Equal(t, 24.7136, location.Latitude)
	assert.Equal(t, ts, location.Timestamp)
	assert.Nil(t, location.Speed)
	require.NotNil(t, location.Heading)
	assert.Equal(t, 270.0, *location.Heading)
}

func TestSetDriverLocation_LastWriteWins(t *testing.T) {
	_, client := setupMiniredis(t)
	cache := repository.NewLocationCache(client)
	ctx := context.Background()

	speed := 10.0
	require.NoError(t, cache.SetDriverLocation(ctx, &models.DriverLocation{
		DriverID: "driver-1", TripID: "trip-1", Latitude: 24.7, Longitude: 46.6, Speed: &speed, Timestamp: time.Now(),
	}))
	require.NoError(t, cache.SetDriverLocation(ctx, &models.DriverLocation{
		DriverID: "driver-1", TripID: "trip-2", Latitude: 24.8, Longitude: 46.7, Timestamp: time.Now(),
	}))

	location, err := cache.GetDriverLocation(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, "trip-2", location.TripID)
	assert.Equal(t, 24.8, location.Latitude)
	assert.Nil(t, location.Speed)
}

func TestGetDriverLocation_Missing(t *testing.T) {
	_, client := setupMiniredis(t)
	cache := repository.NewLocationCache(client)

	location, err := cache.GetDriverLocation(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.Nil(t, location)
}

func TestLiveTripRegistry(t *testing.T) {
	_, client := setupMiniredis(t)
	cache := repository.NewLocationCache(client)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, cache.MarkTripLive(ctx, "trip-old", now.Add(-5*time.Minute)))
	require.NoError(t, cache.MarkTripLive(ctx, "trip-fresh", now.Add(-10*time.Second)))

	stale, err := cache.ListStaleTrips(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "trip-old", stale[0].TripID)
	assert.Equal(t, now.Add(-5*time.Minute), stale[0].LastSampleAt)

	// an older sample arriving late must not move the trip back in time
	require.NoError(t, cache.MarkTripLive(ctx, "trip-fresh", now.Add(-10*time.Minute)))
	stale, err = cache.ListStaleTrips(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	require.NoError(t, cache.RemoveLiveTrip(ctx, "trip-old", now.Add(-5*time.Minute)))
	stale, err = cache.ListStaleTrips(ctx, now)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "trip-fresh", stale[0].TripID)
}

func TestRemoveLiveTrip_KeepsTripMarkedAfterListing(t *testing.T) {
	_, client := setupMiniredis(t)
	cache := repository.NewLocationCache(client)
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, cache.MarkTripLive(ctx, "trip-1", t0))

	// the sweep lists the trip, then a fresh sample lands before it removes the entry
	stale, err := cache.ListStaleTrips(ctx, t0.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.NoError(t, cache.MarkTripLive(ctx, "trip-1", t0.Add(2*time.Minute)))
	require.NoError(t, cache.RemoveLiveTrip(ctx, stale[0].TripID, stale[0].LastSampleAt))

	// the trip is still registered, so it is announced once it goes quiet again
	stale, err = cache.ListStaleTrips(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "trip-1", stale[0].TripID)
	assert.Equal(t, t0.Add(2*time.Minute), stale[0].LastSampleAt)

	require.NoError(t, cache.RemoveLiveTrip(ctx, stale[0].TripID, stale[0].LastSampleAt))
	stale, err = cache.ListStaleTrips(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestCache_RedisDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	cache := repository.NewLocationCache(client)
	mr.Close()

	err := cache.SetDriverLocation(context.Background(), &models.DriverLocation{DriverID: "driver-1", Timestamp: time.Now()})
	assert.Error(t, err)

	_, err = cache.ListStaleTrips(context.Background(), time.Now())
	assert.Error(t, err)

	err = cache.RemoveLiveTrip(context.Background(), "trip-1", time.Now())
	assert.ErrorContains(t, err, "failed to remove live trip")
}
