package services

import (
	"errors"
	"sync"
	"time"

	"sol-wallet/internal/config"
	"sol-wallet/internal/models"
)

var (
	ErrCircuitBreakerOpen = errors.New("ledger circuit breaker is open")
)

const (
	StateClosed models.CircuitBreakerState = iota
	StateOpen
	StateHalfOpen
)

// StateChangeFunc is called, outside the breaker lock, after every state transition.
type StateChangeFunc func(from, to models.CircuitBreakerState)

// CircuitBreaker guards calls to the ledger node. After MaxFailures consecutive
// failures it opens and rejects work until ResetTimeout has passed, then lets
// traffic through half-open until HalfOpenMaxSucc successes close it again.
type CircuitBreaker struct {
	mu                sync.Mutex
	config            config.CircuitBreakerConfig
	state             models.CircuitBreakerState
	failures          int
	halfOpenSuccesses int
	openedAt          time.Time
	now               func() time.Time
	onStateChange     StateChangeFunc
}

func NewCircuitBreaker(cfg config.CircuitBreakerConfig, onStateChange StateChangeFunc) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 1
	}
	if cfg.HalfOpenMaxSucc <= 0 {
		cfg.HalfOpenMaxSucc = 1
	}

	return &CircuitBreaker{
		config:        cfg,
		state:         StateClosed,
		now:           time.Now,
		onStateChange: onStateChange,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	from, to := cb.state, cb.state
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.ResetTimeout {
		cb.state = StateHalfOpen
		cb.halfOpenSuccesses = 0
		to = cb.state
	}
	open := cb.state == StateOpen
	cb.mu.Unlock()

	cb.notify(from, to)
	return open
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	from := cb.state
	switch cb.state {
	case StateHalfOpen:
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses >= cb.config.HalfOpenMaxSucc {
			cb.close()
		}
	case StateClosed:
		cb.failures = 0
	}
	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	from := cb.state
	switch cb.state {
	case StateHalfOpen:
		cb.open()
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.open()
		}
	}
	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
}

func (cb *CircuitBreaker) GetState() models.CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	from := cb.state
	cb.close()
	cb.mu.Unlock()

	cb.notify(from, StateClosed)
}

func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

func (cb *CircuitBreaker) open() {
	cb.state = StateOpen
	cb.openedAt = cb.now()
	cb.halfOpenSuccesses = 0
}

func (cb *CircuitBreaker) close() {
	cb.state = StateClosed
	cb.failures = 0
	cb.halfOpenSuccesses = 0
}

func (cb *CircuitBreaker) notify(from, to models.CircuitBreakerState) {
	if from != to && cb.onStateChange != nil {
		cb.onStateChange(from, to)
	}
}
