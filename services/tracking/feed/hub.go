// Package feed fans live tracking events out to in-process viewers.
// Delivery is best-effort: a viewer whose buffer is full misses the event
// and publishers never block.
package feed

import (
	"sync"
	"sync/atomic"

	"github.com/profleet/fleettrack/internal/pkg/constants"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/models"
)

// TripSubject is the subject viewers of a trip subscribe to
func TripSubject(tripID string) string {
	return "trip:" + tripID
}

// DriverSubject is the subject viewers of a driver subscribe to
func DriverSubject(driverID string) string {
	return "driver:" + driverID
}

// Message is one event delivered to a subscriber
type Message struct {
	Event string
	Data  interface{}
}

// Subscription receives the events of one subject until closed
type Subscription struct {
	C <-chan Message

	id      uint64
	subject string
	ch      chan Message
	hub     *Hub
	once    sync.Once
	dropped atomic.Int64
}

// Dropped returns how many events this subscriber missed because its buffer was full
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Close unsubscribes and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub is the in-process registry of live viewers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[uint64]*Subscription
	nextID      uint64
	bufferSize  int
}

// NewHub creates a hub whose subscribers buffer up to bufferSize events
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Hub{
		subscribers: make(map[string]map[uint64]*Subscription),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a viewer for a subject
func (h *Hub) Subscribe(subject string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan Message, h.bufferSize)
	sub := &Subscription{C: ch, id: h.nextID, subject: subject, ch: ch, hub: h}

	if h.subscribers[subject] == nil {
		h.subscribers[subject] = make(map[uint64]*Subscription)
	}
	h.subscribers[subject][sub.id] = sub
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.subscribers[sub.subject]; ok {
		delete(subs, sub.id)
		if len(subs) == 0 {
			delete(h.subscribers, sub.subject)
		}
	}
	// closed under the write lock so no Publish can be sending on it
	close(sub.ch)
}

// Publish delivers msg to every subscriber of subject without blocking and
// returns how many subscribers received it
func (h *Hub) Publish(subject string, msg Message) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, sub := range h.subscribers[subject] {
		select {
		case sub.ch <- msg:
			delivered++
		default:
			sub.dropped.Add(1)
			logger.Debug("Live feed subscriber buffer full, dropping event",
				logger.String("subject", subject),
				logger.String("event", msg.Event))
		}
	}
	return delivered
}

// PublishSample delivers a sample to viewers of its trip and of its driver
func (h *Hub) PublishSample(event *models.SampleEvent) {
	msg := Message{Event: constants.EventTrackingSample, Data: event}
	h.Publish(TripSubject(event.TripID), msg)
	if event.Sample.DriverID != "" {
		h.Publish(DriverSubject(event.Sample.DriverID), msg)
	}
}

// PublishState delivers a state change to viewers of the trip and its driver
func (h *Hub) PublishState(event *models.StateEvent) {
	msg := Message{Event: constants.EventTrackingState, Data: event}
	h.Publish(TripSubject(event.TripID), msg)
	if event.DriverID != "" {
		h.Publish(DriverSubject(event.DriverID), msg)
	}
}

// SubscriberCount returns the number of viewers of a subject
func (h *Hub) SubscriberCount(subject string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[subject])
}
