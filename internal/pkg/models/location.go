package models

import "time"

// LocationSample is one GPS fix reported by a driver device during a trip.
// Samples are append-only and never reordered or edited once stored.
type LocationSample struct {
	ID         string    `json:"id" db:"id"`
	TripID     string    `json:"tripId" db:"trip_id"`
	DriverID   string    `json:"driverId" db:"driver_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Speed      *float64  `json:"speed,omitempty" db:"speed"`     // km/h
	Heading    *float64  `json:"heading,omitempty" db:"heading"` // degrees clockwise from north
	Geohash    string    `json:"geohash" db:"geohash"`
	Timestamp  time.Time `json:"timestamp" db:"recorded_at"` // device time
	ReceivedAt time.Time `json:"receivedAt" db:"received_at"`
}

// IngestRequest is the payload a driver device posts for each fix
type IngestRequest struct {
	TripID    string     `json:"tripId"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Speed     *float64   `json:"speed,omitempty"`
	Heading   *float64   `json:"heading,omitempty"`
}

// IngestResult acknowledges a stored sample
type IngestResult struct {
	ID        string    `json:"id"`
	StoredAt  time.Time `json:"storedAt"`
	Timestamp time.Time `json:"timestamp"`
}

// DriverLocation is the cached last-known position of a driver.
// It is advisory only; the sample log is authoritative.
type DriverLocation struct {
	DriverID  string    `json:"driverId"`
	TripID    string    `json:"tripId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LiveTrip is an entry of the live-trip registry used by the staleness sweep
type LiveTrip struct {
	TripID       string
	LastSampleAt time.Time
}

// TrackSummary aggregates a trip's whole sample log, independent of any read cap
type TrackSummary struct {
	SampleCount     int        `db:"sample_count"`
	DistanceKm      float64    `db:"distance_km"`
	FirstLatitude   *float64   `db:"first_latitude"`
	FirstLongitude  *float64   `db:"first_longitude"`
	FirstRecordedAt *time.Time `db:"first_recorded_at"`
}

// FirstSample is the earliest fix of the log, nil when the trip has none
func (s *TrackSummary) FirstSample() *LocationSample {
	if s == nil || s.FirstLatitude == nil || s.FirstLongitude == nil || s.FirstRecordedAt == nil {
		return nil
	}
	return &LocationSample{
		Latitude:  *s.FirstLatitude,
		Longitude: *s.FirstLongitude,
		Timestamp: *s.FirstRecordedAt,
	}
}
