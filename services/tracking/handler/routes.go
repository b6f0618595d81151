package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/middleware"
	"github.com/profleet/fleettrack/internal/pkg/models"
	natspkg "github.com/profleet/fleettrack/internal/pkg/nats"
	pkgws "github.com/profleet/fleettrack/internal/pkg/websocket"
	"github.com/profleet/fleettrack/services/tracking"
	"github.com/profleet/fleettrack/services/tracking/feed"
	httpHandler "github.com/profleet/fleettrack/services/tracking/handler/http"
	natsHandler "github.com/profleet/fleettrack/services/tracking/handler/nats"
	"github.com/profleet/fleettrack/services/tracking/handler/scheduler"
	wsHandler "github.com/profleet/fleettrack/services/tracking/handler/websocket"
)

// Handler combines all handlers for the tracking service
type Handler struct {
	trackingHTTP *httpHandler.TrackingHandler
	trackingWS   *wsHandler.FeedHandler
	trackingNATS *natsHandler.RelayHandler
	sweeper      *scheduler.StaleSweeper
	cfg          *models.Config
}

// NewHandler creates a new combined handler. natsClient may be nil when events
// are published straight to the local hub.
func NewHandler(
	trackingUC tracking.TrackingUC,
	hub *feed.Hub,
	natsClient *natspkg.Client,
	cfg *models.Config,
) *Handler {
	h := &Handler{
		trackingHTTP: httpHandler.NewTrackingHandler(trackingUC),
		trackingWS:   wsHandler.NewFeedHandler(trackingUC, hub, pkgws.NewManager(cfg.JWT)),
		sweeper:      scheduler.NewStaleSweeper(trackingUC, cfg.Tracking.StaleSweepSpec),
		cfg:          cfg,
	}
	if natsClient != nil {
		h.trackingNATS = natsHandler.NewRelayHandler(natsClient, hub)
	}
	return h
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// the websocket handler authenticates itself so refusals happen before the upgrade
	e.GET("/ws/tracking", h.trackingWS.HandleWebSocket)

	jwtAuth := middleware.JWTAuthMiddleware(h.cfg.JWT)

	trackingGroup := e.Group("/tracking", jwtAuth)
	trackingGroup.POST("", h.trackingHTTP.IngestSample, middleware.RequireRoles(models.RoleDriver))
	trackingGroup.GET("", h.trackingHTTP.GetRoute)
	trackingGroup.GET("/latest", h.trackingHTTP.GetLatestForTrip)
	trackingGroup.GET("/drivers/:id/location", h.trackingHTTP.GetLatestForDriver,
		middleware.RequireRoles(models.RoleDriver, models.RoleAdmin))

	e.GET("/trips/:id/route", h.trackingHTTP.GetRoute, jwtAuth)
}

// InitNATSConsumers starts relaying events from other instances
func (h *Handler) InitNATSConsumers() error {
	if h.trackingNATS == nil {
		return nil
	}
	return h.trackingNATS.InitNATSConsumers()
}

// StartScheduler starts the staleness sweep
func (h *Handler) StartScheduler() error {
	return h.sweeper.Start()
}

// Shutdown stops background consumers and the scheduler
func (h *Handler) Shutdown(ctx context.Context) error {
	if h.trackingNATS != nil {
		h.trackingNATS.Close()
	}
	return h.sweeper.Stop(ctx)
}
