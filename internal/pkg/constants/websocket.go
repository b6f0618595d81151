package constants

// WebSocket event types
const (
	EventError          = "error"
	EventTrackingSample = "tracking_sample"
	EventTrackingState  = "tracking_state"
)

// WebSocket error codes
const (
	// ErrorFeedLagging tells a viewer it missed live events and should reload the route
	ErrorFeedLagging = "feed_lagging"
)
