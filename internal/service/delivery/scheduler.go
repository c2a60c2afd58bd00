// Package delivery holds agent replies back for a simulated typing delay.
package delivery

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"
)

// Config bounds the typing delay.
type Config struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	PerChar  time.Duration
}

// Delay is proportional to the reply length, clamped to [MinDelay, MaxDelay].
func (c Config) Delay(text string) time.Duration {
	d := time.Duration(utf8.RuneCountInString(text)) * c.PerChar
	if d < c.MinDelay {
		d = c.MinDelay
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// Scheduler runs deliveries after the typing delay. Each scheduled delivery
// runs at most once and is dropped if its context ends or its session is
// cancelled first.
type Scheduler struct {
	cfg Config

	mu      sync.Mutex
	nextID  uint64
	pending map[string]map[uint64]context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler with the given delay bounds.
func NewScheduler(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		pending: make(map[string]map[uint64]context.CancelFunc),
	}
}

// Delay reports how long text would be held back.
func (s *Scheduler) Delay(text string) time.Duration {
	return s.cfg.Delay(text)
}

// Schedule calls deliver once the delay for text has elapsed. The returned
// channel receives true if deliver ran and false if it was discarded.
func (s *Scheduler) Schedule(ctx context.Context, sessionID, text string, deliver func(context.Context)) <-chan bool {
	done := make(chan bool, 1)
	ctx, cancel := context.WithCancel(ctx)
	id := s.track(sessionID, cancel)
	delay := s.cfg.Delay(text)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.untrack(sessionID, id)
		defer cancel()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			done <- false
		case <-timer.C:
			if ctx.Err() != nil {
				done <- false
				return
			}
			deliver(ctx)
			done <- true
		}
	}()

	return done
}

// Cancel discards every pending delivery for sessionID and returns how many were dropped.
func (s *Scheduler) Cancel(sessionID string) int {
	s.mu.Lock()
	cancels := s.pending[sessionID]
	delete(s.pending, sessionID)
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	return len(cancels)
}

// Pending returns the number of deliveries still waiting for sessionID.
func (s *Scheduler) Pending(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[sessionID])
}

// Wait blocks until every scheduled delivery has finished or been discarded.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) track(sessionID string, cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if s.pending[sessionID] == nil {
		s.pending[sessionID] = make(map[uint64]context.CancelFunc)
	}
	s.pending[sessionID][s.nextID] = cancel
	return s.nextID
}

func (s *Scheduler) untrack(sessionID string, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, ok := s.pending[sessionID]; ok {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(s.pending, sessionID)
		}
	}
}
