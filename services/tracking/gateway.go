package tracking

import (
	"context"

	"github.com/profleet/fleettrack/internal/pkg/models"
)

// TrackingGW publishes live feed events. Delivery is at-most-once and best-effort.
type TrackingGW interface {
	PublishSample(ctx context.Context, event *models.SampleEvent) error
	PublishState(ctx context.Context, event *models.StateEvent) error
}
