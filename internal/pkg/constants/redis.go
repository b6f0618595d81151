package constants

import "time"

// Redis key formats
const (
	KeyDriverLocation = "driver:location:%s"  // Format: driver:location:{driver_id}
	KeyLiveTrips      = "tracking:live_trips" // Sorted set of trip IDs scored by last sample time (unix ms)
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
	FieldTripID    = "trip_id"
	FieldSpeed     = "speed"
	FieldHeading   = "heading"
)

// DriverLocationTTL is how long a cached driver position survives without updates
const DriverLocationTTL = 24 * time.Hour
