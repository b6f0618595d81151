package usecase

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/internal/utils"
)

// lastPositionName labels an end point taken from the latest sample
const lastPositionName = "Last reported position"

// AssembleRoute builds the route of a trip for any permitted role. Samples are read
// bounded and re-sorted here; storage order is never trusted.
func (uc *TrackingUC) AssembleRoute(ctx context.Context, caller models.Caller, tripID string) (*models.RouteDescription, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, apperror.Validation("tripId is required")
	}

	trip, err := uc.tripForCaller(ctx, caller, tripID)
	if err != nil {
		return nil, err
	}

	desc := &models.RouteDescription{
		TripID:            trip.ID,
		TripNumber:        trip.TripNumber,
		Status:            trip.Status,
		TrackingAvailable: trip.TrackingEnabled,
		Route:             uc.plannedRoute(trip),
	}

	if !trip.TrackingEnabled {
		desc.TrackingState = models.TrackingStateUnavailable
		return desc, nil
	}

	samples, err := uc.repo.ListSamples(ctx, trip.ID, uc.cfg.Tracking.MaxSamples)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		desc.TrackingState = uc.deriveState(trip, nil)
		return desc, nil
	}

	sortSamples(samples)

	first, last := samples[0], samples[len(samples)-1]
	points := make([]models.RoutePoint, len(samples))
	for i, s := range samples {
		points[i] = models.RoutePoint{Lat: s.Latitude, Lng: s.Longitude, Timestamp: s.Timestamp}
	}
	distance := utils.PathDistance(points)
	count := len(samples)

	// A capped read only holds the newest window; estimates come from the whole log
	// so they never shrink as the trip grows.
	if len(samples) >= uc.cfg.Tracking.MaxSamples {
		summary, err := uc.repo.TrackSummary(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		logger.WarnCtx(ctx, "Route read hit the sample cap, polyline holds the newest samples only",
			logger.String("trip_id", trip.ID),
			logger.Int("max_samples", uc.cfg.Tracking.MaxSamples),
			logger.Int("sample_count", summary.SampleCount))
		if start := summary.FirstSample(); start != nil {
			first = start
			distance = summary.DistanceKm
			count = summary.SampleCount
		}
	}

	desc.Route = models.Route{
		StartPoint:               uc.startPoint(trip, first),
		EndPoint:                 uc.endPoint(trip, last),
		Points:                   uc.downsample(points),
		EstimatedDistanceKm:      round3(distance),
		EstimatedDurationMinutes: round3(last.Timestamp.Sub(first.Timestamp).Minutes()),
	}
	desc.SampleCount = count
	desc.Downsampled = len(desc.Route.Points) < count

	lastSampleAt := last.Timestamp
	desc.LastSampleAt = &lastSampleAt
	desc.TrackingState = uc.deriveState(trip, &lastSampleAt)

	return desc, nil
}

// plannedRoute is the route before any sample exists. Nothing has been travelled yet, so the
// distance is zero; the duration is a placeholder from the straight origin-destination leg.
func (uc *TrackingUC) plannedRoute(trip *models.Trip) models.Route {
	origin, destination := trip.Origin(), trip.Destination()

	end := origin
	if destination.HasCoordinates() {
		end = destination
	}

	duration := 0.0
	if speed := uc.cfg.Tracking.PlaceholderSpeedKmh; speed > 0 {
		duration = utils.NamedPointDistance(origin, destination) / speed * 60
	}

	return models.Route{
		StartPoint:               origin,
		EndPoint:                 end,
		Points:                   []models.RoutePoint{},
		EstimatedDistanceKm:      0,
		EstimatedDurationMinutes: round3(duration),
	}
}

// startPoint is the first sample, or the declared origin when tracking began well after departure
func (uc *TrackingUC) startPoint(trip *models.Trip, first *models.LocationSample) models.NamedPoint {
	origin := trip.Origin()
	if trip.ActualStartDate != nil && origin.HasCoordinates() &&
		first.Timestamp.Sub(*trip.ActualStartDate) > uc.cfg.Tracking.StartGrace {
		return origin
	}
	return samplePoint(origin.Name, first)
}

// endPoint is the latest sample, or the declared destination once the trip is delivered
func (uc *TrackingUC) endPoint(trip *models.Trip, last *models.LocationSample) models.NamedPoint {
	destination := trip.Destination()
	if trip.Status == models.TripStatusDelivered && destination.HasCoordinates() {
		return destination
	}
	return samplePoint(lastPositionName, last)
}

// downsample caps the polyline: stationary runs collapse first, then a uniform stride applies
func (uc *TrackingUC) downsample(points []models.RoutePoint) []models.RoutePoint {
	max := uc.cfg.Tracking.MaxRoutePoints
	if max <= 0 || len(points) <= max {
		return points
	}
	collapsed := utils.CollapseByCell(points, utils.CellPrecision)
	return utils.StridePoints(collapsed, max)
}

// sortSamples orders by device time; ties fall back to arrival time, then ID
func sortSamples(samples []*models.LocationSample) {
	sort.SliceStable(samples, func(i, j int) bool {
		a, b := samples[i], samples[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.Before(b.ReceivedAt)
		}
		return a.ID < b.ID
	})
}

func samplePoint(name string, s *models.LocationSample) models.NamedPoint {
	lat, lng := s.Latitude, s.Longitude
	return models.NamedPoint{Name: name, Lat: &lat, Lng: &lng}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
