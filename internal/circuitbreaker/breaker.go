// Package circuitbreaker stops calling a failing dependency for a while
// after repeated errors.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker opens after maxFailures consecutive errors and lets a single
// trial call through once resetTimeout has passed.
type Breaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

func New(name string, maxFailures int, resetTimeout time.Duration) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
	}
}

// Execute calls fn unless the circuit is open, in which case it returns
// ErrCircuitOpen without calling it.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrCircuitOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		b.lastFailure = b.now()
		if b.state == HalfOpen || b.failures >= b.maxFailures {
			b.transition(Open)
		}
		return err
	}

	b.failures = 0
	b.transition(Closed)
	return nil
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Open {
		return true
	}
	if b.now().Sub(b.lastFailure) > b.resetTimeout {
		b.transition(HalfOpen)
		return true
	}
	return false
}

// transition must be called with mu held.
func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	log.Info().
		Str("breaker", b.name).
		Stringer("from", b.state).
		Stringer("to", to).
		Int("failures", b.failures).
		Msg("Circuit breaker state changed")
	b.state = to
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
