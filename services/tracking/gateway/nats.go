package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/profleet/fleettrack/internal/pkg/constants"
	"github.com/profleet/fleettrack/internal/pkg/models"
	nrpkg "github.com/profleet/fleettrack/internal/pkg/newrelic"
	"github.com/profleet/fleettrack/services/tracking"
)

type natsTrackingGW struct {
	nc *nats.Conn
}

// NewNATSTrackingGW publishes live feed events on NATS so every service instance can fan them out
func NewNATSTrackingGW(nc *nats.Conn) tracking.TrackingGW {
	return &natsTrackingGW{
		nc: nc,
	}
}

// PublishSample publishes a sample event on tracking.sample.{tripId}
func (g *natsTrackingGW) PublishSample(ctx context.Context, event *models.SampleEvent) error {
	return g.publish(ctx, fmt.Sprintf(constants.SubjectTrackingSample, event.TripID), event)
}

// PublishState publishes a state event on tracking.state.{tripId}
func (g *natsTrackingGW) PublishState(ctx context.Context, event *models.StateEvent) error {
	return g.publish(ctx, fmt.Sprintf(constants.SubjectTrackingState, event.TripID), event)
}

func (g *natsTrackingGW) publish(ctx context.Context, subject string, event interface{}) error {
	defer nrpkg.StartPublishSegment(ctx, subject)()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tracking event: %w", err)
	}

	if err := g.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish tracking event: %w", err)
	}
	return nil
}
