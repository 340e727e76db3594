// Package observabilitytest provides an observer that records events for
// assertions in tests.
package observabilitytest

import (
	"context"
	"slices"
	"sync"

	"github.com/nebula-edge/nebula/observability"
)

// Recorder keeps every event it receives. Safe for concurrent use; events
// from the inference goroutine and the caller interleave freely.
type Recorder struct {
	mu     sync.Mutex
	events []observability.Event
}

func (r *Recorder) OnEvent(ctx context.Context, event observability.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []observability.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Types returns the recorded event types in arrival order.
func (r *Recorder) Types() []observability.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]observability.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t observability.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
