package journal

import (
	"context"
	"sync"
	"time"

	"github.com/matiasleandrokruk/journalprompts/internal/infra/eventbus"
)

// Stats aggregates pipeline outcomes received from the event bus.
type Stats struct {
	mu        sync.Mutex
	served    int
	generated int
	fallback  int
	attempts  int
	byReason  map[string]int
	lastAt    time.Time
}

// StatsSnapshot is a point-in-time copy of Stats, shaped for JSON.
type StatsSnapshot struct {
	Served     int            `json:"served"`
	Generated  int            `json:"generated"`
	Fallback   int            `json:"fallback"`
	Attempts   int            `json:"attempts"`
	ByReason   map[string]int `json:"by_reason"`
	LastServed *time.Time     `json:"last_served,omitempty"`
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{byReason: make(map[string]int)}
}

// Subscribe registers for TopicOutcome. Call it before serving requests so
// no outcome is published ahead of the subscription.
func (s *Stats) Subscribe(bus eventbus.EventBus) <-chan eventbus.Event {
	return bus.Subscribe(TopicOutcome)
}

// Start consumes events from ch until ctx is done or the channel closes.
func (s *Stats) Start(ctx context.Context, ch <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			o, ok := evt.Payload.(Outcome)
			if !ok {
				continue
			}
			s.Record(o)
		}
	}
}

// Record adds one outcome to the counters.
func (s *Stats) Record(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.served++
	s.attempts += o.Attempts
	if o.Fallback {
		s.fallback++
		s.byReason[o.Reason]++
	} else {
		s.generated++
	}
	if o.At.After(s.lastAt) {
		s.lastAt = o.At
	}
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := StatsSnapshot{
		Served:    s.served,
		Generated: s.generated,
		Fallback:  s.fallback,
		Attempts:  s.attempts,
		ByReason:  make(map[string]int, len(s.byReason)),
	}
	for k, v := range s.byReason {
		out.ByReason[k] = v
	}
	if !s.lastAt.IsZero() {
		t := s.lastAt
		out.LastServed = &t
	}
	return out
}
