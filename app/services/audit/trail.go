// Package audit records governance events: who asked which module to do
// what. The trail is an in-memory, capacity-bounded log; persistence lives
// behind other services and is out of scope here.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is one recorded governance action.
type Event struct {
	ID        string    `json:"id"`
	Component string    `json:"component"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	At        time.Time `json:"at"`
}

// Trail is a capacity-bounded, append-only event log. Safe for concurrent
// use.
type Trail struct {
	logger    *zap.Logger
	component string
	capacity  int

	mu     sync.Mutex
	events []Event
}

// NewTrail creates a trail stamped with component. capacity bounds the
// retained events; the oldest are dropped beyond it. capacity <= 0 means
// unbounded.
func NewTrail(logger *zap.Logger, component string, capacity int) *Trail {
	return &Trail{
		logger:    logger,
		component: component,
		capacity:  capacity,
	}
}

// Record appends an event and returns it.
func (t *Trail) Record(actor, action, subject string) Event {
	ev := Event{
		ID:        uuid.NewString(),
		Component: t.component,
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		At:        time.Now().UTC(),
	}

	t.mu.Lock()
	t.events = append(t.events, ev)
	if t.capacity > 0 && len(t.events) > t.capacity {
		t.events = t.events[len(t.events)-t.capacity:]
	}
	t.mu.Unlock()

	t.logger.Info("audit event",
		zap.String("id", ev.ID),
		zap.String("actor", actor),
		zap.String("action", action),
		zap.String("subject", subject))
	return ev
}

// Events returns a copy of the retained events, oldest first.
func (t *Trail) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len returns the number of retained events.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}
