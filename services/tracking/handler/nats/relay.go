package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/profleet/fleettrack/internal/pkg/constants"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
	natspkg "github.com/profleet/fleettrack/internal/pkg/nats"
	"github.com/profleet/fleettrack/services/tracking/feed"
)

// RelayHandler fans tracking events published by any service instance out to
// the viewers connected to this one
type RelayHandler struct {
	natsClient *natspkg.Client
	hub        *feed.Hub
	subs       []*nats.Subscription
}

// NewRelayHandler creates a new tracking relay
func NewRelayHandler(client *natspkg.Client, hub *feed.Hub) *RelayHandler {
	return &RelayHandler{
		natsClient: client,
		hub:        hub,
		subs:       make([]*nats.Subscription, 0, 2),
	}
}

// InitNATSConsumers subscribes to every tracking subject
func (h *RelayHandler) InitNATSConsumers() error {
	logger.Info("Initializing NATS consumers for tracking relay")

	sub, err := h.natsClient.Subscribe(constants.SubjectTrackingSampleAll, h.handleSample)
	if err != nil {
		return fmt.Errorf("failed to subscribe to tracking samples: %w", err)
	}
	h.subs = append(h.subs, sub)

	sub, err = h.natsClient.Subscribe(constants.SubjectTrackingStateAll, h.handleState)
	if err != nil {
		h.Close()
		return fmt.Errorf("failed to subscribe to tracking states: %w", err)
	}
	h.subs = append(h.subs, sub)

	return nil
}

// Close removes the relay subscriptions
func (h *RelayHandler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe tracking relay",
				logger.String("subject", sub.Subject),
				logger.Err(err))
		}
	}
	h.subs = h.subs[:0]
}

func (h *RelayHandler) handleSample(msg *nats.Msg) {
	var event models.SampleEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to unmarshal tracking sample",
			logger.String("subject", msg.Subject),
			logger.Err(err))
		return
	}
	h.hub.PublishSample(&event)
}

func (h *RelayHandler) handleState(msg *nats.Msg) {
	var event models.StateEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to unmarshal tracking state",
			logger.String("subject", msg.Subject),
			logger.Err(err))
		return
	}
	h.hub.PublishState(&event)
}
