package usecase

import (
	"context"
	"strings"

	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
)

// LatestForTrip returns the trip's latest sample and display state for polling clients
func (uc *TrackingUC) LatestForTrip(ctx context.Context, caller models.Caller, tripID string) (*models.LatestPosition, error) {
	trip, err := uc.loadAuthorizedTrip(ctx, caller, tripID)
	if err != nil {
		return nil, err
	}

	position := &models.LatestPosition{
		TripID:              trip.ID,
		DriverID:            trip.DriverID,
		PollIntervalSeconds: uc.pollIntervalSeconds(),
	}
	if !trip.TrackingEnabled {
		position.TrackingState = models.TrackingStateUnavailable
		return position, nil
	}

	sample, err := uc.repo.LatestSample(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if sample != nil {
		position.Sample = sample
		position.LastSampleAt = &sample.Timestamp
	}
	position.TrackingState = uc.deriveState(trip, position.LastSampleAt)

	return position, nil
}

// LatestForDriver returns a driver's last known position, preferring the cache and
// falling back to the sample log
func (uc *TrackingUC) LatestForDriver(ctx context.Context, caller models.Caller, driverID string) (*models.LatestPosition, error) {
	driverID = strings.TrimSpace(driverID)
	if err := uc.AuthorizeDriverView(ctx, caller, driverID); err != nil {
		return nil, err
	}

	position := &models.LatestPosition{
		DriverID:            driverID,
		TrackingState:       models.TrackingStateNoSamples,
		PollIntervalSeconds: uc.pollIntervalSeconds(),
	}

	location, err := uc.cache.GetDriverLocation(ctx, driverID)
	if err != nil {
		logger.WarnCtx(ctx, "Driver location cache unavailable, reading sample log",
			logger.String("driver_id", driverID),
			logger.Err(err))
	}

	if location == nil {
		sample, err := uc.repo.LatestDriverSample(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if sample == nil {
			return position, nil
		}
		position.Sample = sample
		location = &models.DriverLocation{
			DriverID:  driverID,
			TripID:    sample.TripID,
			Latitude:  sample.Latitude,
			Longitude: sample.Longitude,
			Speed:     sample.Speed,
			Heading:   sample.Heading,
			Timestamp: sample.Timestamp,
		}
	}

	position.Location = location
	position.TripID = location.TripID
	position.LastSampleAt = &location.Timestamp
	position.TrackingState = uc.freshness(location.Timestamp)

	if location.TripID != "" {
		trip, err := uc.repo.GetTrip(ctx, location.TripID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to load trip of driver position",
				logger.String("driver_id", driverID),
				logger.String("trip_id", location.TripID),
				logger.Err(err))
		} else {
			position.TrackingState = uc.deriveState(trip, position.LastSampleAt)
		}
	}

	return position, nil
}

// AuthorizeTripView checks that the caller may watch a trip's live feed
func (uc *TrackingUC) AuthorizeTripView(ctx context.Context, caller models.Caller, tripID string) error {
	_, err := uc.loadAuthorizedTrip(ctx, caller, tripID)
	return err
}

// AuthorizeDriverView checks that the caller may watch a driver's live feed
func (uc *TrackingUC) AuthorizeDriverView(ctx context.Context, caller models.Caller, driverID string) error {
	if strings.TrimSpace(driverID) == "" {
		return apperror.Validation("driverId is required")
	}
	return authorizeDriver(caller, driverID)
}

// SweepStale announces trips that stopped reporting. Each trip is announced once and
// removed from the live registry; its next sample registers it again.
func (uc *TrackingUC) SweepStale(ctx context.Context) (int, error) {
	cutoff := uc.now().Add(-uc.cfg.Tracking.StaleAfter())

	stale, err := uc.cache.ListStaleTrips(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	announced := 0
	for _, live := range stale {
		trip, err := uc.repo.GetTrip(ctx, live.TripID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				uc.removeLiveTrip(ctx, live)
			} else {
				logger.WarnCtx(ctx, "Failed to load trip during staleness sweep",
					logger.String("trip_id", live.TripID),
					logger.Err(err))
			}
			continue
		}

		lastSampleAt := live.LastSampleAt
		event := &models.StateEvent{
			TripID:       trip.ID,
			DriverID:     trip.DriverID,
			State:        uc.deriveState(trip, &lastSampleAt),
			LastSampleAt: &lastSampleAt,
		}
		if err := uc.gateway.PublishState(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish tracking state",
				logger.String("trip_id", trip.ID),
				logger.Err(err))
			continue
		}

		uc.removeLiveTrip(ctx, live)
		announced++
	}

	return announced, nil
}

func (uc *TrackingUC) loadAuthorizedTrip(ctx context.Context, caller models.Caller, tripID string) (*models.Trip, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, apperror.Validation("tripId is required")
	}

	return uc.tripForCaller(ctx, caller, tripID)
}

// removeLiveTrip drops the entry only while it still holds the score that was swept,
// so a sample that arrived meanwhile keeps the trip registered
func (uc *TrackingUC) removeLiveTrip(ctx context.Context, live models.LiveTrip) {
	if err := uc.cache.RemoveLiveTrip(ctx, live.TripID, live.LastSampleAt); err != nil {
		logger.WarnCtx(ctx, "Failed to remove trip from live registry",
			logger.String("trip_id", live.TripID),
			logger.Err(err))
	}
}

func (uc *TrackingUC) pollIntervalSeconds() int {
	return int(uc.cfg.Tracking.PollInterval.Seconds())
}
