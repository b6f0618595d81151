package websocket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/apperror"
	"github.com/profleet/fleettrack/internal/pkg/constants"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
	pkgws "github.com/profleet/fleettrack/internal/pkg/websocket"
	"github.com/profleet/fleettrack/services/tracking"
	"github.com/profleet/fleettrack/services/tracking/feed"
)

const defaultPingInterval = 30 * time.Second

// FeedHandler streams live tracking events to websocket viewers
type FeedHandler struct {
	trackingUC   tracking.TrackingUC
	hub          *feed.Hub
	wsManager    *pkgws.Manager
	pingInterval time.Duration
}

// NewFeedHandler creates a new websocket feed handler
func NewFeedHandler(trackingUC tracking.TrackingUC, hub *feed.Hub, wsManager *pkgws.Manager) *FeedHandler {
	return &FeedHandler{
		trackingUC:   trackingUC,
		hub:          hub,
		wsManager:    wsManager,
		pingInterval: defaultPingInterval,
	}
}

// HandleWebSocket handles GET /ws/tracking?tripId= or ?driverId=
func (h *FeedHandler) HandleWebSocket(c echo.Context) error {
	ctx := c.Request().Context()
	tripID := strings.TrimSpace(c.QueryParam("tripId"))
	driverID := strings.TrimSpace(c.QueryParam("driverId"))

	var subject string
	authorize := func(caller models.Caller) error {
		switch {
		case tripID != "" && driverID != "":
			return apperror.Validation("subscribe to either tripId or driverId, not both")
		case tripID != "":
			subject = feed.TripSubject(tripID)
			return h.trackingUC.AuthorizeTripView(ctx, caller, tripID)
		case driverID != "":
			subject = feed.DriverSubject(driverID)
			return h.trackingUC.AuthorizeDriverView(ctx, caller, driverID)
		}
		return apperror.Validation("tripId or driverId is required")
	}

	return h.wsManager.HandleConnection(c, authorize, func(client *pkgws.Client) error {
		return h.stream(ctx, client, subject)
	})
}

// stream relays hub events to the client until either side goes away
func (h *FeedHandler) stream(ctx context.Context, client *pkgws.Client, subject string) error {
	sub := h.hub.Subscribe(subject)
	defer sub.Close()

	logger.Info("Live feed viewer connected",
		logger.String("client_id", client.ID),
		logger.String("user_id", client.Caller.UserID),
		logger.String("subject", subject),
		logger.Int("viewers", h.wsManager.ClientCount()))

	pongWait := 2 * h.pingInterval
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// viewers only listen; reading detects the close
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := client.Conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	defer func() {
		logger.Info("Live feed viewer disconnected",
			logger.String("client_id", client.ID),
			logger.String("subject", subject),
			logger.Int64("dropped", sub.Dropped()))
	}()

	// events this viewer has already been told it missed
	var reported int64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-disconnected:
			return nil
		case msg, ok := <-sub.C:
			if !ok {
				return nil
			}
			if dropped := sub.Dropped(); dropped > reported {
				missed := dropped - reported
				reported = dropped
				if err := h.wsManager.SendErrorMessage(client, constants.ErrorFeedLagging,
					fmt.Sprintf("%d live events were dropped, reload the route for the full path", missed)); err != nil {
					return nil
				}
			}
			if err := h.wsManager.SendMessage(client, msg.Event, msg.Data); err != nil {
				logger.Debug("Failed to write live feed event",
					logger.String("client_id", client.ID),
					logger.Err(err))
				return nil
			}
		case <-ticker.C:
			if err := h.wsManager.SendPing(client); err != nil {
				return nil
			}
		}
	}
}
