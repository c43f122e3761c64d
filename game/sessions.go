// File: game/sessions.go
package game

import (
	"errors"
	"sync"
)

// ErrUnknownSession is returned for score operations on a session that was
// never registered or has already been unregistered.
var ErrUnknownSession = errors.New("unknown session")

// ErrSendQueueFull is returned by Session.Send when the frame was dropped
// because the client is not keeping up.
var ErrSendQueueFull = errors.New("send queue full")

// Session is a connected client as seen by the game. Implementations are
// owned by the transport and must be comparable (typically a pointer), since
// the registry keys scores by the handle itself. Send must not block.
type Session interface {
	ID() string
	Send(payload string) error
}

// Sessions tracks connected sessions, their scores and the broadcast order.
type Sessions struct {
	mu      sync.RWMutex
	scores  map[Session]int
	targets []Session // registration order
}

func NewSessions() *Sessions {
	return &Sessions{scores: make(map[Session]int)}
}

// Register adds s with a score of 0. It reports false, and changes nothing,
// if s is already registered.
func (r *Sessions) Register(s Session) bool {
	return r.RegisterWith(s, nil)
}

// RegisterWith is Register with a hook that runs under the registry lock
// just before s is added, and only if s is new. No broadcast can see s
// before onAdd returns. onAdd must not block or call back into r.
func (r *Sessions) RegisterWith(s Session, onAdd func(Session)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scores[s]; exists {
		return false
	}
	if onAdd != nil {
		onAdd(s)
	}
	r.scores[s] = 0
	r.targets = append(r.targets, s)
	return true
}

// Unregister removes s and discards its score. It reports whether s was present.
func (r *Sessions) Unregister(s Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scores[s]; !exists {
		return false
	}
	delete(r.scores, s)
	for i, t := range r.targets {
		if t == s {
			last := len(r.targets) - 1
			copy(r.targets[i:], r.targets[i+1:])
			r.targets[last] = nil
			r.targets = r.targets[:last]
			break
		}
	}
	return true
}

// AdjustScore adds delta to the score of s and returns the new score.
func (r *Sessions) AdjustScore(s Session, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, exists := r.scores[s]
	if !exists {
		return 0, ErrUnknownSession
	}
	score += delta
	r.scores[s] = score
	return score, nil
}

// ResetScore sets the score of s to 0.
func (r *Sessions) ResetScore(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scores[s]; !exists {
		return ErrUnknownSession
	}
	r.scores[s] = 0
	return nil
}

func (r *Sessions) Score(s Session) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	score, exists := r.scores[s]
	if !exists {
		return 0, ErrUnknownSession
	}
	return score, nil
}

func (r *Sessions) Contains(s Session) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.scores[s]
	return exists
}

// Targets returns a copy of the broadcast list taken at call time.
func (r *Sessions) Targets() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Session, len(r.targets))
	copy(out, r.targets)
	return out
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}
