package constants

// NATS Subjects
const (
	SubjectTrackingSample    = "tracking.sample.%s" // Format: tracking.sample.{trip_id}
	SubjectTrackingSampleAll = "tracking.sample.>"
	SubjectTrackingState     = "tracking.state.%s" // Format: tracking.state.{trip_id}
	SubjectTrackingStateAll  = "tracking.state.>"
)
