package api

import (
	"context"
	"log"
	"sync"
	"time"

	"wireworld/internal/app"
	"wireworld/internal/transport/websocket"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"
)

// Status is the JSON summary of the board.
type Status struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Generation uint64         `json:"generation"`
	Running    bool           `json:"running"`
	Census     map[string]int `json:"census"`
}

// Session serializes access to one Controller shared by HTTP handlers, the
// run loop and websocket publishing.
type Session struct {
	mu   sync.Mutex
	ctrl *app.Controller
	hub  *websocket.Hub
}

// NewSession wraps ctrl. hub may be nil, in which case nothing is published.
func NewSession(ctrl *app.Controller, hub *websocket.Hub) *Session {
	s := &Session{ctrl: ctrl, hub: hub}
	ctrl.OnChange(s.publish)
	return s
}

// Do runs fn with exclusive access to the controller.
func (s *Session) Do(fn func(c *app.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ctrl)
}

// Status returns the current board summary.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Snapshot returns a message carrying the full current pattern.
func (s *Session) Snapshot() *websocket.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageLocked("snapshot", true)
}

// Run ticks the controller until ctx is cancelled. Steps only happen while
// the controller is running. A SetTPS on the controller takes effect from
// the next tick.
func (s *Session) Run(ctx context.Context) {
	s.mu.Lock()
	interval := s.ctrl.Interval()
	s.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if next := s.tick(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// tick advances the controller once and returns its current interval.
func (s *Session) tick() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Tick()
	return s.ctrl.Interval()
}

func (s *Session) statusLocked() Status {
	g := s.ctrl.Grid()
	return Status{
		Width:      g.Width(),
		Height:     g.Height(),
		Generation: g.Generation(),
		Running:    s.ctrl.Running(),
		Census:     censusMap(g.Census()),
	}
}

func (s *Session) messageLocked(event string, withPattern bool) *websocket.Message {
	st := s.statusLocked()
	msg := &websocket.Message{
		Event:      event,
		Generation: st.Generation,
		Running:    st.Running,
		Census:     st.Census,
	}
	if withPattern {
		text, err := mcell.EncodeGrid(s.ctrl.Grid())
		if err != nil {
			log.Printf("Failed to encode snapshot: %v", err)
		}
		msg.Pattern = text
	}
	return msg
}

// publish runs under s.mu, from inside a controller call.
func (s *Session) publish(ev app.Event) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(s.messageLocked(string(ev.Kind), ev.Kind != app.EventStep))
}

func censusMap(counts [wireworld.NumStates]int) map[string]int {
	out := make(map[string]int, wireworld.NumStates)
	for _, st := range wireworld.States() {
		out[st.String()] = counts[st]
	}
	return out
}
