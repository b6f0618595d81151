package models

import (
	"encoding/json"
	"time"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SampleEvent carries a newly ingested sample to live viewers
type SampleEvent struct {
	TripID string         `json:"tripId"`
	Sample LocationSample `json:"sample"`
}

// StateEvent announces a tracking state change of a trip
type StateEvent struct {
	TripID       string        `json:"tripId"`
	DriverID     string        `json:"driverId,omitempty"`
	State        TrackingState `json:"state"`
	LastSampleAt *time.Time    `json:"lastSampleAt,omitempty"`
}
