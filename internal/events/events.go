// Package events announces report and project changes to downstream
// consumers over a topic exchange.
package events

import (
	"context"
	"sync"
	"time"
)

const (
	RoutingReportSubmitted = "report.submitted"
	RoutingReportDeleted   = "report.deleted"
	RoutingProjectComplete = "project.completed"
)

// Event is the JSON body published for every routing key.
type Event struct {
	RoutingKey string    `json:"routingKey"`
	ProjectID  string    `json:"projectId"`
	Week       int       `json:"week,omitempty"`
	ActorID    string    `json:"actorId,omitempty"`
	Progress   int       `json:"progress,omitempty"`
	Created    bool      `json:"created,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Keys lists the routing keys in publish order.
func (r *Recorder) Keys() []string {
	evs := r.Events()
	keys := make([]string, len(evs))
	for i, ev := range evs {
		keys[i] = ev.RoutingKey
	}
	return keys
}

var (
	_ Publisher = Noop{}
	_ Publisher = (*Recorder)(nil)
	_ Publisher = (*AMQPPublisher)(nil)
)
