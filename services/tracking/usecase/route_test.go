package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeSamples are the fixes of a two minute drive out of Riyadh, returned newest first
func threeSamples(base time.Time) []*models.LocationSample {
	return []*models.LocationSample{
		sampleAt("s3", 24.7336, 46.6953, base.Add(120*time.Second)),
		sampleAt("s2", 24.7236, 46.6853, base.Add(60*time.Second)),
		sampleAt("s1", 24.7136, 46.6753, base),
	}
}

func TestAssembleRoute_ThreeSampleTrip(t *testing.T) {
	d := newTestDeps(t)
	base := testNow.Add(-2 * time.Minute)
	trip := riyadhTrip()
	trip.ActualStartDate = tp(base.Add(-time.Minute))

	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", 10000).Return(threeSamples(base), nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	require.Len(t, desc.Route.Points, 3)
	assert.Equal(t, base, desc.Route.Points[0].Timestamp)
	assert.Equal(t, base.Add(60*time.Second), desc.Route.Points[1].Timestamp)
	assert.Equal(t, base.Add(120*time.Second), desc.Route.Points[2].Timestamp)
	assert.Greater(t, desc.Route.EstimatedDistanceKm, 0.0)
	assert.InDelta(t, 2.0, desc.Route.EstimatedDurationMinutes, 0.001)

	assert.Equal(t, "Riyadh", desc.Route.StartPoint.Name)
	assert.Equal(t, 24.7136, *desc.Route.StartPoint.Lat)
	assert.Equal(t, 46.6753, *desc.Route.StartPoint.Lng)
	assert.Equal(t, lastPositionName, desc.Route.EndPoint.Name)
	assert.Equal(t, 24.7336, *desc.Route.EndPoint.Lat)

	assert.Equal(t, models.TrackingStateLive, desc.TrackingState)
	assert.True(t, desc.TrackingAvailable)
	assert.Equal(t, 3, desc.SampleCount)
	assert.False(t, desc.Downsampled)
	require.NotNil(t, desc.LastSampleAt)
	assert.Equal(t, base.Add(120*time.Second), *desc.LastSampleAt)
}

func TestAssembleRoute_SortsOutOfOrderSamples(t *testing.T) {
	d := newTestDeps(t)
	base := testNow.Add(-10 * time.Minute)

	// same device time for b and c: arrival order decides
	a := sampleAt("a", 24.70, 46.60, base)
	b := sampleAt("b", 24.71, 46.61, base.Add(time.Minute))
	c := sampleAt("c", 24.72, 46.62, base.Add(time.Minute))
	c.ReceivedAt = b.ReceivedAt.Add(time.Second)
	e := sampleAt("e", 24.73, 46.63, base.Add(2*time.Minute))

	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).
		Return([]*models.LocationSample{e, c, a, b}, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), adminCaller, "trip-1")

	require.NoError(t, err)
	require.Len(t, desc.Route.Points, 4)
	assert.Equal(t, 24.70, desc.Route.Points[0].Lat)
	assert.Equal(t, 24.71, desc.Route.Points[1].Lat)
	assert.Equal(t, 24.72, desc.Route.Points[2].Lat)
	assert.Equal(t, 24.73, desc.Route.Points[3].Lat)
	for i := 1; i < len(desc.Route.Points); i++ {
		assert.False(t, desc.Route.Points[i].Timestamp.Before(desc.Route.Points[i-1].Timestamp))
	}
}

func TestAssembleRoute_DistanceGrowsWithSamples(t *testing.T) {
	base := testNow.Add(-time.Minute)
	all := []*models.LocationSample{
		sampleAt("s1", 24.7136, 46.6753, base),
		sampleAt("s2", 24.7236, 46.6853, base.Add(10*time.Second)),
		sampleAt("s3", 24.7336, 46.6953, base.Add(20*time.Second)),
		sampleAt("s4", 24.7336, 46.6953, base.Add(30*time.Second)),
		sampleAt("s5", 24.7436, 46.7053, base.Add(40*time.Second)),
	}

	previous := 0.0
	for n := 0; n <= len(all); n++ {
		d := newTestDeps(t)
		d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
		d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).
			Return(append([]*models.LocationSample(nil), all[:n]...), nil)

		desc, err := d.uc.AssembleRoute(context.Background(), driverCaller, "trip-1")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, desc.Route.EstimatedDistanceKm, previous, "after %d samples", n)
		previous = desc.Route.EstimatedDistanceKm
	}
	assert.Greater(t, previous, 0.0)
}

func TestAssembleRoute_NoSamplesUsesPlannedRoute(t *testing.T) {
	d := newTestDeps(t)
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(nil, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.Equal(t, "Riyadh", desc.Route.StartPoint.Name)
	assert.Equal(t, "Dammam", desc.Route.EndPoint.Name)
	assert.NotNil(t, desc.Route.Points)
	assert.Empty(t, desc.Route.Points)
	// nothing travelled yet; the duration assumes 50 km/h over the ~392 km straight leg
	assert.Zero(t, desc.Route.EstimatedDistanceKm)
	assert.InDelta(t, 392.0/50*60, desc.Route.EstimatedDurationMinutes, 12)
	assert.Equal(t, models.TrackingStateNoSamples, desc.TrackingState)
	assert.Nil(t, desc.LastSampleAt)
	assert.Zero(t, desc.SampleCount)
}

func TestAssembleRoute_DestinationWithoutCoordinates(t *testing.T) {
	d := newTestDeps(t)
	trip := riyadhTrip()
	trip.ToLat, trip.ToLng = nil, nil
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return([]*models.LocationSample{}, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.Equal(t, desc.Route.StartPoint, desc.Route.EndPoint)
	assert.Zero(t, desc.Route.EstimatedDistanceKm)
	assert.Zero(t, desc.Route.EstimatedDurationMinutes)
}

func TestAssembleRoute_TrackingDisabled(t *testing.T) {
	d := newTestDeps(t)
	trip := riyadhTrip()
	trip.TrackingEnabled = false
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.False(t, desc.TrackingAvailable)
	assert.Equal(t, models.TrackingStateUnavailable, desc.TrackingState)
	assert.Empty(t, desc.Route.Points)
	assert.Equal(t, "Riyadh", desc.Route.StartPoint.Name)
	assert.Equal(t, "Dammam", desc.Route.EndPoint.Name)
}

func TestAssembleRoute_DeliveredTripEndsAtDestination(t *testing.T) {
	d := newTestDeps(t)
	trip := riyadhTrip()
	trip.Status = models.TripStatusDelivered
	trip.DeliveredDate = tp(testNow.Add(-time.Hour))
	base := testNow.Add(-3 * time.Hour)
	trip.ActualStartDate = tp(base)

	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(threeSamples(base), nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.Equal(t, models.TrackingStateEnded, desc.TrackingState)
	assert.Equal(t, "Dammam", desc.Route.EndPoint.Name)
	assert.Equal(t, 26.4207, *desc.Route.EndPoint.Lat)
	assert.Len(t, desc.Route.Points, 3)
}

func TestAssembleRoute_LateTrackingStartsAtOrigin(t *testing.T) {
	d := newTestDeps(t)
	trip := riyadhTrip()
	base := testNow.Add(-2 * time.Minute)
	trip.ActualStartDate = tp(base.Add(-30 * time.Minute))

	samples := []*models.LocationSample{
		sampleAt("s1", 25.10, 47.10, base),
		sampleAt("s2", 25.11, 47.11, base.Add(time.Minute)),
	}
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(samples, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.Equal(t, 24.7136, *desc.Route.StartPoint.Lat)
	assert.Equal(t, 46.6753, *desc.Route.StartPoint.Lng)
	// the polyline itself only holds reported fixes
	assert.Equal(t, 25.10, desc.Route.Points[0].Lat)
}

func TestAssembleRoute_StartsAtFirstSampleWithinGrace(t *testing.T) {
	d := newTestDeps(t)
	trip := riyadhTrip()
	base := testNow.Add(-2 * time.Minute)
	trip.ActualStartDate = tp(base.Add(-4 * time.Minute))

	samples := []*models.LocationSample{sampleAt("s1", 25.10, 47.10, base)}
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(samples, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.Equal(t, "Riyadh", desc.Route.StartPoint.Name)
	assert.Equal(t, 25.10, *desc.Route.StartPoint.Lat)
	assert.Zero(t, desc.Route.EstimatedDistanceKm)
	assert.Zero(t, desc.Route.EstimatedDurationMinutes)
}

func TestAssembleRoute_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		caller  models.Caller
		allowed bool
	}{
		{name: "admin", caller: adminCaller, allowed: true},
		{name: "assigned driver", caller: driverCaller, allowed: true},
		{name: "booking customer", caller: customerCaller, allowed: true},
		{name: "other driver", caller: otherDriver, allowed: false},
		{name: "other customer", caller: otherCustomer, allowed: false},
		{name: "unknown role", caller: models.Caller{UserID: "driver-1", Role: "dispatcher"}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
			if tt.allowed {
				d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(nil, nil)
			}

			desc, err := d.uc.AssembleRoute(context.Background(), tt.caller, "trip-1")

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "trip-1", desc.TripID)
				return
			}
			assert.Nil(t, desc)
			assert.ErrorIs(t, err, apperror.ErrAuthorization)
		})
	}
}

func TestAssembleRoute_Errors(t *testing.T) {
	t.Run("missing trip id", func(t *testing.T) {
		d := newTestDeps(t)
		_, err := d.uc.AssembleRoute(context.Background(), adminCaller, " ")
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("unknown trip", func(t *testing.T) {
		d := newTestDeps(t)
		d.repo.EXPECT().GetTrip(gomock.Any(), "nope").Return(nil, apperror.NotFound("trip nope not found"))
		_, err := d.uc.AssembleRoute(context.Background(), adminCaller, "nope")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("unknown trip looks forbidden to non-admins", func(t *testing.T) {
		for _, caller := range []models.Caller{driverCaller, customerCaller} {
			d := newTestDeps(t)
			d.repo.EXPECT().GetTrip(gomock.Any(), "nope").Return(nil, apperror.NotFound("trip nope not found"))
			_, missing := d.uc.AssembleRoute(context.Background(), caller, "nope")

			d = newTestDeps(t)
			trip := riyadhTrip()
			trip.DriverID, trip.CustomerID = "driver-9", "cust-9"
			d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
			_, foreign := d.uc.AssembleRoute(context.Background(), caller, "trip-1")

			assert.ErrorIs(t, missing, apperror.ErrAuthorization, caller.Role)
			assert.ErrorIs(t, foreign, apperror.ErrAuthorization, caller.Role)
			assert.Equal(t, apperror.PublicMessage(foreign), apperror.PublicMessage(missing))
		}
	})

	t.Run("sample log unavailable", func(t *testing.T) {
		d := newTestDeps(t)
		d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
		d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).
			Return(nil, apperror.TransientStorage(errors.New("timeout"), "failed to list samples"))
		_, err := d.uc.AssembleRoute(context.Background(), adminCaller, "trip-1")
		assert.ErrorIs(t, err, apperror.ErrTransientStorage)
	})
}

func TestAssembleRoute_FreshnessFollowsClock(t *testing.T) {
	tests := []struct {
		name  string
		age   time.Duration
		state models.TrackingState
	}{
		{name: "just reported", age: 0, state: models.TrackingStateLive},
		{name: "at the grace limit", age: time.Minute, state: models.TrackingStateLive},
		{name: "past the grace limit", age: 61 * time.Second, state: models.TrackingStateStale},
		{name: "an hour silent", age: time.Hour, state: models.TrackingStateStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
			d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).
				Return([]*models.LocationSample{sampleAt("s1", 24.7, 46.6, testNow.Add(-tt.age))}, nil)

			desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

			require.NoError(t, err)
			assert.Equal(t, tt.state, desc.TrackingState)
		})
	}
}

func TestAssembleRoute_DownsamplesLongTracks(t *testing.T) {
	d := newTestDeps(t)
	base := testNow.Add(-1000 * time.Second)

	samples := make([]*models.LocationSample, 0, 1000)
	for i := 0; i < 1000; i++ {
		samples = append(samples, sampleAt(fmt.Sprintf("s%04d", i), 24.0+float64(i)*0.001, 46.6, base.Add(time.Duration(i)*time.Second)))
	}
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(samples, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	points := desc.Route.Points
	require.Len(t, points, 500)
	assert.True(t, desc.Downsampled)
	assert.Equal(t, 1000, desc.SampleCount)
	assert.Equal(t, base, points[0].Timestamp)
	assert.Equal(t, base.Add(999*time.Second), points[len(points)-1].Timestamp)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Timestamp.After(points[i-1].Timestamp))
	}
	// estimates come from the full track, not the thinned polyline
	assert.InDelta(t, 111.0, desc.Route.EstimatedDistanceKm, 1.5)
	assert.InDelta(t, 999.0/60, desc.Route.EstimatedDurationMinutes, 0.001)
}

func TestAssembleRoute_ShortTracksKeepEveryPoint(t *testing.T) {
	d := newTestDeps(t)
	base := testNow.Add(-time.Minute)

	// stationary fixes are kept when under the point cap
	samples := []*models.LocationSample{
		sampleAt("s1", 24.7136, 46.6753, base),
		sampleAt("s2", 24.7136, 46.6753, base.Add(10*time.Second)),
		sampleAt("s3", 24.7136, 46.6753, base.Add(20*time.Second)),
	}
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", gomock.Any()).Return(samples, nil)

	desc, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	require.NoError(t, err)
	assert.Len(t, desc.Route.Points, 3)
	assert.False(t, desc.Downsampled)
	assert.Zero(t, desc.Route.EstimatedDistanceKm)
}

func TestAssembleRoute_CappedReadKeepsWholeLogEstimates(t *testing.T) {
	base := testNow.Add(-10 * time.Minute)
	// a straight northbound track, 0.001 degrees (~111 m) per fix
	all := make([]*models.LocationSample, 0, 8)
	for i := 0; i < 8; i++ {
		all = append(all, sampleAt(fmt.Sprintf("s%d", i), 24.0+float64(i)*0.001, 46.6, base.Add(time.Duration(i)*time.Minute)))
	}
	summarize := func(samples []*models.LocationSample) *models.TrackSummary {
		points := make([]models.RoutePoint, len(samples))
		for i, s := range samples {
			points[i] = models.RoutePoint{Lat: s.Latitude, Lng: s.Longitude, Timestamp: s.Timestamp}
		}
		first := samples[0]
		return &models.TrackSummary{
			SampleCount:     len(samples),
			DistanceKm:      utils.PathDistance(points),
			FirstLatitude:   f64(first.Latitude),
			FirstLongitude:  f64(first.Longitude),
			FirstRecordedAt: tp(first.Timestamp),
		}
	}

	const limit = 3
	previous := 0.0
	for n := 0; n <= len(all); n++ {
		d := newTestDeps(t)
		d.uc.cfg.Tracking.MaxSamples = limit

		window := all[:n]
		if n > limit {
			window = all[n-limit : n]
		}
		d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
		d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", limit).
			Return(append([]*models.LocationSample(nil), window...), nil)
		if n >= limit {
			d.repo.EXPECT().TrackSummary(gomock.Any(), "trip-1").Return(summarize(all[:n]), nil)
		}

		desc, err := d.uc.AssembleRoute(context.Background(), adminCaller, "trip-1")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, desc.Route.EstimatedDistanceKm, previous, "after %d samples", n)
		previous = desc.Route.EstimatedDistanceKm
		if n > limit {
			assert.Len(t, desc.Route.Points, limit)
			assert.Equal(t, n, desc.SampleCount)
			assert.True(t, desc.Downsampled)
			assert.InDelta(t, float64(n-1), desc.Route.EstimatedDurationMinutes, 0.001)
		}
	}
	assert.InDelta(t, 0.778, previous, 0.01)
}

func TestAssembleRoute_CappedReadSummaryUnavailable(t *testing.T) {
	d := newTestDeps(t)
	d.uc.cfg.Tracking.MaxSamples = 1
	d.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(riyadhTrip(), nil)
	d.repo.EXPECT().ListSamples(gomock.Any(), "trip-1", 1).
		Return([]*models.LocationSample{sampleAt("s1", 24.7, 46.6, testNow)}, nil)
	d.repo.EXPECT().TrackSummary(gomock.Any(), "trip-1").
		Return(nil, apperror.TransientStorage(errors.New("timeout"), "failed to summarize location samples"))

	_, err := d.uc.AssembleRoute(context.Background(), customerCaller, "trip-1")

	assert.ErrorIs(t, err, apperror.ErrTransientStorage)
}
