// Package events carries board changes to whoever listens: a message broker in
// production, nothing or a recorder otherwise.
package events

import (
	"context"
	"sync"
	"time"
)

const (
	LoadPosted        = "load.posted"
	InterestExpressed = "interest.expressed"
	InterestRemoved   = "interest.removed"
	LoadsScanned      = "loads.scanned"
)

type Event struct {
	Type       string    `json:"type"`
	LoadID     string    `json:"load_id,omitempty"`
	DriverID   string    `json:"driver_id,omitempty"`
	OwnerID    string    `json:"owner_id,omitempty"`
	LoadIDs    []string  `json:"load_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type noop struct{}

func NewNoop() Publisher { return noop{} }

func (noop) Publish(context.Context, Event) error { return nil }
func (noop) Close() error                         { return nil }

// Recorder keeps every published event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
