// File: game/test_utils_test.go
package game

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lguibr/fruitfall/utils"
	"github.com/stretchr/testify/require"
)

var errDeliveryFailed = errors.New("delivery failed")

var sessionCounter atomic.Int64

// MockSession records every payload sent to it.
type MockSession struct {
	id   string
	fail atomic.Bool

	mu   sync.Mutex
	sent []string
}

func NewMockSession() *MockSession {
	return &MockSession{id: fmt.Sprintf("mock-%d", sessionCounter.Add(1))}
}

func (s *MockSession) ID() string { return s.id }

func (s *MockSession) Send(payload string) error {
	if s.fail.Load() {
		return errDeliveryFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, payload)
	return nil
}

func (s *MockSession) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *MockSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

// scriptedRand returns queued values in order, then falls back to 0.
type scriptedRand struct {
	mu     sync.Mutex
	values []int
}

func newScriptedRand(values ...int) *scriptedRand {
	return &scriptedRand{values: values}
}

func (r *scriptedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

// spawnAt queues the draws that make the next Spawn produce an object at x
// with the given kind under the default 2/5 penalty ratio.
func (r *scriptedRand) spawnAt(x int, kind Kind) *scriptedRand {
	r.mu.Lock()
	defer r.mu.Unlock()
	kindDraw := 4 // >= 2: reward
	if kind == Penalty {
		kindDraw = 0
	}
	r.values = append(r.values, x, kindDraw)
	return r
}

// recordingPublisher captures snapshots pushed by the clock.
type recordingPublisher struct {
	mu       sync.Mutex
	payloads []string
}

func (p *recordingPublisher) PushSnapshot(payload string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
}

func (p *recordingPublisher) Payloads() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.payloads))
	copy(out, p.payloads)
	return out
}

func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.TickPeriod = 10 * time.Millisecond
	return cfg
}

func waitUntil(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}
