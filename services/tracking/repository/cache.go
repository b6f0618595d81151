package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/profleet/fleettrack/internal/pkg/constants"
	"github.com/profleet/fleettrack/internal/pkg/database"
	"github.com/profleet/fleettrack/internal/pkg/models"
	nrpkg "github.com/profleet/fleettrack/internal/pkg/newrelic"
	"github.com/profleet/fleettrack/services/tracking"
)

type locationCache struct {
	redisClient *database.RedisClient
}

// NewLocationCache creates the Redis-backed driver location cache
func NewLocationCache(redisClient *database.RedisClient) tracking.LocationCache {
	return &locationCache{
		redisClient: redisClient,
	}
}

// SetDriverLocation overwrites the driver's cached position (last write wins)
func (c *locationCache) SetDriverLocation(ctx context.Context, location *models.DriverLocation) error {
	defer nrpkg.StartRedisSegment(ctx, "driver:location", "HSET")()

	key := fmt.Sprintf(constants.KeyDriverLocation, location.DriverID)
	fields := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(location.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(location.Longitude, 'f', -1, 64),
		constants.FieldTimestamp: strconv.FormatInt(location.Timestamp.UnixMilli(), 10),
		constants.FieldTripID:    location.TripID,
	}
	if location.Speed != nil {
		fields[constants.FieldSpeed] = strconv.FormatFloat(*location.Speed, 'f', -1, 64)
	}
	if location.Heading != nil {
		fields[constants.FieldHeading] = strconv.FormatFloat(*location.Heading, 'f', -1, 64)
	}

	_, err := c.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, constants.DriverLocationTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache driver location: %w", err)
	}
	return nil
}

// GetDriverLocation returns the cached position, nil when the driver has none
func (c *locationCache) GetDriverLocation(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	defer nrpkg.StartRedisSegment(ctx, "driver:location", "HGETALL")()

	values, err := c.redisClient.HGetAll(ctx, fmt.Sprintf(constants.KeyDriverLocation, driverID))
	if err != nil {
		return nil, fmt.Errorf("failed to get driver location: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	location := &models.DriverLocation{DriverID: driverID, TripID: values[constants.FieldTripID]}
	if location.Latitude, err = strconv.ParseFloat(values[constants.FieldLatitude], 64); err != nil {
		return nil, fmt.Errorf("invalid cached latitude: %w", err)
	}
	if location.Longitude, err = strconv.ParseFloat(values[constants.FieldLongitude], 64); err != nil {
		return nil, fmt.Errorf("invalid cached longitude: %w", err)
	}
	ms, err := strconv.ParseInt(values[constants.FieldTimestamp], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached timestamp: %w", err)
	}
	location.Timestamp = time.UnixMilli(ms).UTC()
	location.Speed = parseOptionalFloat(values[constants.FieldSpeed])
	location.Heading = parseOptionalFloat(values[constants.FieldHeading])

	return location, nil
}

// MarkTripLive records the latest sample time of a trip in the live-trip registry.
// Scores only move forward so a late-arriving old sample cannot make a trip look stale.
func (c *locationCache) MarkTripLive(ctx context.Context, tripID string, lastSampleAt time.Time) error {
	defer nrpkg.StartRedisSegment(ctx, constants.KeyLiveTrips, "ZADD")()

	err := c.redisClient.Client.ZAddArgs(ctx, constants.KeyLiveTrips, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(lastSampleAt.UnixMilli()), Member: tripID}},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to mark trip live: %w", err)
	}
	return nil
}

// ListStaleTrips returns registered trips whose last sample is older than before
func (c *locationCache) ListStaleTrips(ctx context.Context, before time.Time) ([]models.LiveTrip, error) {
	defer nrpkg.StartRedisSegment(ctx, constants.KeyLiveTrips, "ZRANGEBYSCORE")()

	members, err := c.redisClient.ZRangeByScoreWithScores(ctx, constants.KeyLiveTrips,
		"-inf", "("+strconv.FormatInt(before.UnixMilli(), 10))
	if err != nil {
		return nil, fmt.Errorf("failed to list live trips: %w", err)
	}

	trips := make([]models.LiveTrip, 0, len(members))
	for _, member := range members {
		tripID, ok := member.Member.(string)
		if !ok {
			continue
		}
		trips = append(trips, models.LiveTrip{
			TripID:       tripID,
			LastSampleAt: time.UnixMilli(int64(member.Score)).UTC(),
		})
	}
	return trips, nil
}

// RemoveLiveTrip drops a trip from the live-trip registry if its entry still holds
// lastSampleAt. A trip marked live again by a newer sample stays registered.
func (c *locationCache) RemoveLiveTrip(ctx context.Context, tripID string, lastSampleAt time.Time) error {
	defer nrpkg.StartRedisSegment(ctx, constants.KeyLiveTrips, "EVALSHA")()

	if _, err := c.redisClient.ZRemIfScore(ctx, constants.KeyLiveTrips, tripID, lastSampleAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to remove live trip: %w", err)
	}
	return nil
}

func parseOptionalFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
