package gateway

import (
	"context"

	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/services/tracking"
	"github.com/profleet/fleettrack/services/tracking/feed"
)

type localTrackingGW struct {
	hub *feed.Hub
}

// NewLocalTrackingGW hands events straight to the in-process hub. Used when no NATS URL is configured.
func NewLocalTrackingGW(hub *feed.Hub) tracking.TrackingGW {
	return &localTrackingGW{
		hub: hub,
	}
}

// PublishSample delivers a sample event to local viewers
func (g *localTrackingGW) PublishSample(ctx context.Context, event *models.SampleEvent) error {
	g.hub.PublishSample(event)
	return nil
}

// PublishState delivers a state event to local viewers
func (g *localTrackingGW) PublishState(ctx context.Context, event *models.StateEvent) error {
	g.hub.PublishState(event)
	return nil
}
