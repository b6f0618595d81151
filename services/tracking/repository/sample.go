package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/models"
	nrpkg "github.com/profleet/fleettrack/internal/pkg/newrelic"
	"github.com/profleet/fleettrack/services/tracking"
)

const sampleColumns = `id, trip_id, driver_id, latitude, longitude, speed, heading, geohash, recorded_at, received_at`

type trackingRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewTrackingRepository creates the Postgres-backed sample store
func NewTrackingRepository(cfg *models.Config, db *sqlx.DB) tracking.TrackingRepo {
	return &trackingRepo{
		cfg: cfg,
		db:  db,
	}
}

// GetTrip reads the tracking view of a trip
func (r *trackingRepo) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	defer nrpkg.StartPostgresSegment(ctx, "trips", "SELECT")()

	query := `
		SELECT id, trip_number, status,
			COALESCE(driver_id, '') AS driver_id, COALESCE(customer_id, '') AS customer_id,
			from_city, from_lat, from_lng, to_city, to_lat, to_lng,
			scheduled_date, actual_start_date, delivered_date, tracking_enabled
		FROM trips
		WHERE id = $1
	`

	var trip models.Trip
	if err := r.db.GetContext(ctx, &trip, query, tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("trip %s not found", tripID)
		}
		return nil, apperror.TransientStorage(err, "failed to load trip")
	}

	return &trip, nil
}

// InsertSample appends one sample. There is no dedup; retries produce additional rows.
func (r *trackingRepo) InsertSample(ctx context.Context, sample *models.LocationSample) error {
	defer nrpkg.StartPostgresSegment(ctx, "location_samples", "INSERT")()

	query := `
		INSERT INTO location_samples (` + sampleColumns + `)
		VALUES (:id, :trip_id, :driver_id, :latitude, :longitude, :speed, :heading, :geohash, :recorded_at, :received_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, sample); err != nil {
		return apperror.TransientStorage(err, "failed to store location sample")
	}
	return nil
}

// ListSamples returns the most recent samples of a trip, newest first
func (r *trackingRepo) ListSamples(ctx context.Context, tripID string, limit int) ([]*models.LocationSample, error) {
	defer nrpkg.StartPostgresSegment(ctx, "location_samples", "SELECT")()

	query := `
		SELECT ` + sampleColumns + `
		FROM location_samples
		WHERE trip_id = $1
		ORDER BY recorded_at DESC, received_at DESC, id DESC
		LIMIT $2
	`

	samples := []*models.LocationSample{}
	if err := r.db.SelectContext(ctx, &samples, query, tripID, limit); err != nil {
		return nil, apperror.TransientStorage(err, "failed to list location samples")
	}
	return samples, nil
}

// TrackSummary folds the trip's entire log in the database: the haversine legs between
// consecutive samples in device-time order, plus the count and the earliest fix.
// Earth radius matches utils.CalculateDistance.
func (r *trackingRepo) TrackSummary(ctx context.Context, tripID string) (*models.TrackSummary, error) {
	defer nrpkg.StartPostgresSegment(ctx, "location_samples", "SELECT")()

	query := `
		WITH ordered AS (
			SELECT latitude, longitude, recorded_at,
				LAG(latitude) OVER w AS prev_latitude,
				LAG(longitude) OVER w AS prev_longitude,
				ROW_NUMBER() OVER w AS rn
			FROM location_samples
			WHERE trip_id = $1
			WINDOW w AS (ORDER BY recorded_at, received_at, id)
		)
		SELECT
			COUNT(*) AS sample_count,
			COALESCE(SUM(
				2 * 6371.0 * ASIN(LEAST(1.0, SQRT(
					POWER(SIN(RADIANS(latitude - prev_latitude) / 2), 2) +
					COS(RADIANS(prev_latitude)) * COS(RADIANS(latitude)) *
					POWER(SIN(RADIANS(longitude - prev_longitude) / 2), 2)
				)))
			), 0) AS distance_km,
			MAX(latitude) FILTER (WHERE rn = 1) AS first_latitude,
			MAX(longitude) FILTER (WHERE rn = 1) AS first_longitude,
			MIN(recorded_at) AS first_recorded_at
		FROM ordered
	`

	var summary models.TrackSummary
	if err := r.db.GetContext(ctx, &summary, query, tripID); err != nil {
		return nil, apperror.TransientStorage(err, "failed to summarize location samples")
	}
	return &summary, nil
}

// LatestSample returns the newest sample of a trip, nil when it has none
func (r *trackingRepo) LatestSample(ctx context.Context, tripID string) (*models.LocationSample, error) {
	defer nrpkg.StartPostgresSegment(ctx, "location_samples", "SELECT")()

	query := `
		SELECT ` + sampleColumns + `
		FROM location_samples
		WHERE trip_id = $1
		ORDER BY recorded_at DESC, received_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, tripID)
}

// LatestDriverSample returns the newest sample reported by a driver, nil when none
func (r *trackingRepo) LatestDriverSample(ctx context.Context, driverID string) (*models.LocationSample, error) {
	defer nrpkg.StartPostgresSegment(ctx, "location_samples", "SELECT")()

	query := `
		SELECT ` + sampleColumns + `
		FROM location_samples
		WHERE driver_id = $1
		ORDER BY recorded_at DESC, received_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, driverID)
}

func (r *trackingRepo) getOne(ctx context.Context, query string, arg string) (*models.LocationSample, error) {
	var sample models.LocationSample
	if err := r.db.GetContext(ctx, &sample, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.TransientStorage(err, "failed to load latest sample")
	}
	return &sample, nil
}
