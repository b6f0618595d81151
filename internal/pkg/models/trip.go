package models

import "time"

// TripStatus represents the current status of a trip
type TripStatus string

const (
	TripStatusPending    TripStatus = "PENDING"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusDelivered  TripStatus = "DELIVERED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Trip is the read-only view of a trip owned by the wider fleet application
type Trip struct {
	ID              string     `json:"id" db:"id"`
	TripNumber      string     `json:"tripNumber" db:"trip_number"`
	Status          TripStatus `json:"status" db:"status"`
	DriverID        string     `json:"driverId" db:"driver_id"`
	CustomerID      string     `json:"customerId" db:"customer_id"`
	FromCity        string     `json:"fromCity" db:"from_city"`
	FromLat         *float64   `json:"fromLat,omitempty" db:"from_lat"`
	FromLng         *float64   `json:"fromLng,omitempty" db:"from_lng"`
	ToCity          string     `json:"toCity" db:"to_city"`
	ToLat           *float64   `json:"toLat,omitempty" db:"to_lat"`
	ToLng           *float64   `json:"toLng,omitempty" db:"to_lng"`
	ScheduledDate   time.Time  `json:"scheduledDate" db:"scheduled_date"`
	ActualStartDate *time.Time `json:"actualStartDate,omitempty" db:"actual_start_date"`
	DeliveredDate   *time.Time `json:"deliveredDate,omitempty" db:"delivered_date"`
	TrackingEnabled bool       `json:"trackingEnabled" db:"tracking_enabled"`
}

// NamedPoint is a labelled coordinate; coordinates may be unknown for declared cities
type NamedPoint struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// HasCoordinates reports whether both coordinates are known
func (p NamedPoint) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// Origin returns the declared departure city
func (t *Trip) Origin() NamedPoint {
	return NamedPoint{Name: t.FromCity, Lat: t.FromLat, Lng: t.FromLng}
}

// Destination returns the declared arrival city
func (t *Trip) Destination() NamedPoint {
	return NamedPoint{Name: t.ToCity, Lat: t.ToLat, Lng: t.ToLng}
}

// IsTrackable reports whether the trip currently accepts location samples
func (t *Trip) IsTrackable() bool {
	return t.Status == TripStatusInProgress && t.TrackingEnabled
}

// IsEnded reports whether the trip reached a terminal status
func (t *Trip) IsEnded() bool {
	return t.Status == TripStatusDelivered || t.Status == TripStatusCancelled
}
