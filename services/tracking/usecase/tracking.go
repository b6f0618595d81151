package usecase

import (
	"context"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/services/tracking"
)

// TrackingUC implements tracking.TrackingUC
type TrackingUC struct {
	cfg     *models.Config
	repo    tracking.TrackingRepo
	cache   tracking.LocationCache
	gateway tracking.TrackingGW
	now     func() time.Time
}

// Option customizes a TrackingUC
type Option func(*TrackingUC)

// WithClock replaces the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(uc *TrackingUC) {
		uc.now = now
	}
}

// NewTrackingUC creates the tracking use case
func NewTrackingUC(
	cfg *models.Config,
	repo tracking.TrackingRepo,
	cache tracking.LocationCache,
	gateway tracking.TrackingGW,
	opts ...Option,
) *TrackingUC {
	uc := &TrackingUC{
		cfg:     cfg,
		repo:    repo,
		cache:   cache,
		gateway: gateway,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

var _ tracking.TrackingUC = (*TrackingUC)(nil)

// authorizeTrip enforces who may see a trip: admins any, drivers their assigned trips,
// customers the trips they booked
func authorizeTrip(caller models.Caller, trip *models.Trip) error {
	switch {
	case caller.IsAdmin():
		return nil
	case caller.IsDriver() && trip.DriverID != "" && trip.DriverID == caller.UserID:
		return nil
	case caller.IsCustomer() && trip.CustomerID != "" && trip.CustomerID == caller.UserID:
		return nil
	}
	return apperror.Authorization("%s %s may not access trip %s", caller.Role, caller.UserID, trip.ID)
}

// tripForCaller loads a trip the caller may see. For non-admins a missing trip is
// reported exactly like a foreign one, so trip IDs cannot be enumerated.
func (uc *TrackingUC) tripForCaller(ctx context.Context, caller models.Caller, tripID string) (*models.Trip, error) {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound && !caller.IsAdmin() {
			return nil, apperror.Authorization("%s %s may not access trip %s", caller.Role, caller.UserID, tripID)
		}
		return nil, err
	}
	if err := authorizeTrip(caller, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// authorizeDriver lets admins watch any driver and drivers watch themselves
func authorizeDriver(caller models.Caller, driverID string) error {
	if caller.IsAdmin() || (caller.IsDriver() && caller.UserID == driverID) {
		return nil
	}
	return apperror.Authorization("%s %s may not access driver %s", caller.Role, caller.UserID, driverID)
}

// deriveState computes the display state of a trip from its status and the age of its latest sample
func (uc *TrackingUC) deriveState(trip *models.Trip, lastSampleAt *time.Time) models.TrackingState {
	switch {
	case !trip.TrackingEnabled:
		return models.TrackingStateUnavailable
	case trip.IsEnded():
		return models.TrackingStateEnded
	case lastSampleAt == nil:
		return models.TrackingStateNoSamples
	}
	return uc.freshness(*lastSampleAt)
}

func (uc *TrackingUC) freshness(lastSampleAt time.Time) models.TrackingState {
	if uc.now().Sub(lastSampleAt) > uc.cfg.Tracking.StaleAfter() {
		return models.TrackingStateStale
	}
	return models.TrackingStateLive
}
