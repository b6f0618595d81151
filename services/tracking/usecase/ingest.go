package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/internal/utils"
)

// IngestSample validates and appends one sample. Only the insert can fail the call;
// cache and live feed updates are best-effort.
func (uc *TrackingUC) IngestSample(ctx context.Context, caller models.Caller, req *models.IngestRequest) (*models.IngestResult, error) {
	now := uc.now().UTC()

	if !caller.IsDriver() {
		return nil, apperror.Authorization("%s %s may not report locations", caller.Role, caller.UserID)
	}

	recordedAt, err := uc.validateIngest(req, now)
	if err != nil {
		return nil, err
	}

	trip, err := uc.tripForCaller(ctx, caller, req.TripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsTrackable() {
		return nil, apperror.TripState("trip %s does not accept location samples (status %s, tracking enabled %t)",
			trip.ID, trip.Status, trip.TrackingEnabled)
	}

	sample := &models.LocationSample{
		ID:         uuid.NewString(),
		TripID:     trip.ID,
		DriverID:   caller.UserID,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Speed:      req.Speed,
		Heading:    req.Heading,
		Geohash:    utils.EncodePoint(*req.Latitude, *req.Longitude, uc.cfg.Tracking.GeohashPrecision),
		Timestamp:  recordedAt,
		ReceivedAt: now,
	}

	if err := uc.repo.InsertSample(ctx, sample); err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			err = apperror.TransientStorage(err, "failed to store location sample")
		}
		return nil, err
	}

	uc.updateCache(ctx, sample)
	uc.publishSample(ctx, sample)

	return &models.IngestResult{
		ID:        sample.ID,
		StoredAt:  now,
		Timestamp: recordedAt,
	}, nil
}

// validateIngest checks the payload and returns the sample time, defaulting to now
func (uc *TrackingUC) validateIngest(req *models.IngestRequest, now time.Time) (time.Time, error) {
	if req == nil {
		return time.Time{}, apperror.Validation("request body is required")
	}
	req.TripID = strings.TrimSpace(req.TripID)
	if req.TripID == "" {
		return time.Time{}, apperror.Validation("tripId is required")
	}

	if req.Latitude == nil {
		return time.Time{}, apperror.Validation("latitude is required")
	}
	if !isFinite(*req.Latitude) || *req.Latitude < -90 || *req.Latitude > 90 {
		return time.Time{}, apperror.Validation("latitude must be between -90 and 90")
	}
	if req.Longitude == nil {
		return time.Time{}, apperror.Validation("longitude is required")
	}
	if !isFinite(*req.Longitude) || *req.Longitude < -180 || *req.Longitude > 180 {
		return time.Time{}, apperror.Validation("longitude must be between -180 and 180")
	}
	if req.Speed != nil && (!isFinite(*req.Speed) || *req.Speed < 0) {
		return time.Time{}, apperror.Validation("speed must be a non-negative number")
	}
	if req.Heading != nil && (!isFinite(*req.Heading) || *req.Heading < 0 || *req.Heading > 360) {
		return time.Time{}, apperror.Validation("heading must be between 0 and 360")
	}

	if req.Timestamp == nil || req.Timestamp.IsZero() {
		return now, nil
	}
	recordedAt := req.Timestamp.UTC()
	if recordedAt.After(now.Add(uc.cfg.Tracking.MaxClockSkew)) {
		return time.Time{}, apperror.Validation("timestamp is too far in the future")
	}
	return recordedAt, nil
}

func (uc *TrackingUC) updateCache(ctx context.Context, sample *models.LocationSample) {
	err := uc.cache.SetDriverLocation(ctx, &models.DriverLocation{
		DriverID:  sample.DriverID,
		TripID:    sample.TripID,
		Latitude:  sample.Latitude,
		Longitude: sample.Longitude,
		Speed:     sample.Speed,
		Heading:   sample.Heading,
		Timestamp: sample.Timestamp,
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to update driver location cache",
			logger.String("driver_id", sample.DriverID),
			logger.String("trip_id", sample.TripID),
			logger.Err(err))
	}

	if err := uc.cache.MarkTripLive(ctx, sample.TripID, sample.Timestamp); err != nil {
		logger.WarnCtx(ctx, "Failed to register live trip",
			logger.String("trip_id", sample.TripID),
			logger.Err(err))
	}
}

func (uc *TrackingUC) publishSample(ctx context.Context, sample *models.LocationSample) {
	if err := uc.gateway.PublishSample(ctx, &models.SampleEvent{TripID: sample.TripID, Sample: *sample}); err != nil {
		logger.WarnCtx(ctx, "Failed to publish location sample to live feed",
			logger.String("trip_id", sample.TripID),
			logger.String("sample_id", sample.ID),
			logger.Err(err))
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
