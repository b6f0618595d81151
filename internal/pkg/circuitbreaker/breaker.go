package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/logger"
)

// ErrOpen is returned without calling the protected function while the breaker is open
var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen // a single probe is in flight or allowed
)

var stateNames = map[State]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Config tunes a breaker. IsFailure decides which errors count; nil counts every error.
type Config struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
	IsFailure        func(err error) bool
}

// DefaultConfig opens after 5 consecutive failures and probes again after 10s
func DefaultConfig(name string) Config {
	return Config{Name: name, FailureThreshold: 5, OpenTimeout: 10 * time.Second}
}

// CircuitBreaker fails fast once a dependency keeps failing
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	state    State
	failures uint32
	openedAt time.Time
	probing  bool
}

func New(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 1
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// Execute runs fn unless the breaker is open. fn's error is returned unchanged.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !cb.admit() {
		return ErrOpen
	}
	err := fn(ctx)
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) admit() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.transition(StateHalfOpen)
	}
	switch {
	case cb.state == StateOpen:
		return false
	case cb.state == StateHalfOpen && cb.probing:
		return false
	case cb.state == StateHalfOpen:
		cb.probing = true
	}
	return true
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.probing = false
	if !cb.cfg.IsFailure(err) {
		cb.failures = 0
		cb.transition(StateClosed)
		return
	}

	cb.failures++
	if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
		cb.openedAt = cb.now()
		cb.transition(StateOpen)
	}
}

// transition must be called with mu held
func (cb *CircuitBreaker) transition(next State) {
	if cb.state == next {
		return
	}
	logger.Warn("Circuit breaker transition",
		logger.String("breaker", cb.cfg.Name),
		logger.String("from", cb.state.String()),
		logger.String("to", next.String()),
		logger.Int("failures", int(cb.failures)))
	cb.state = next
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}
