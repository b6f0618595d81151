package models

import "time"

// TrackingState is the display state a map client derives its live indicator from
type TrackingState string

const (
	TrackingStateNoSamples   TrackingState = "NO_SAMPLES"
	TrackingStateLive        TrackingState = "LIVE"
	TrackingStateStale       TrackingState = "STALE"
	TrackingStateEnded       TrackingState = "ENDED"
	TrackingStateUnavailable TrackingState = "UNAVAILABLE"
)

// RoutePoint is one vertex of the route polyline
type RoutePoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Route is the assembled polyline with its endpoints and estimates
type Route struct {
	StartPoint               NamedPoint   `json:"startPoint"`
	EndPoint                 NamedPoint   `json:"endPoint"`
	Points                   []RoutePoint `json:"points"`
	EstimatedDistanceKm      float64      `json:"estimatedDistanceKm"`
	EstimatedDurationMinutes float64      `json:"estimatedDurationMinutes"`
}

// RouteDescription is the route query response. It is derived on every request and never stored.
type RouteDescription struct {
	TripID            string        `json:"tripId"`
	TripNumber        string        `json:"tripNumber"`
	Status            TripStatus    `json:"status"`
	Route             Route         `json:"route"`
	TrackingAvailable bool          `json:"trackingAvailable"`
	TrackingState     TrackingState `json:"trackingState"`
	LastSampleAt      *time.Time    `json:"lastSampleAt"`
	SampleCount       int           `json:"sampleCount"`
	Downsampled       bool          `json:"downsampled"`
}

// LatestPosition is the poll adapter response
type LatestPosition struct {
	TripID              string          `json:"tripId,omitempty"`
	DriverID            string          `json:"driverId,omitempty"`
	Sample              *LocationSample `json:"sample"`
	Location            *DriverLocation `json:"location,omitempty"`
	TrackingState       TrackingState   `json:"trackingState"`
	LastSampleAt        *time.Time      `json:"lastSampleAt"`
	PollIntervalSeconds int             `json:"pollIntervalSeconds"`
}
