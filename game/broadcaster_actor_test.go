// File: game/broadcaster_actor_test.go
package game

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/lguibr/fruitfall/bollywood"
	"github.com/stretchr/testify/assert"
)

func TestBroadcast_IsolatesFailures(t *testing.T) {
	sessions := NewSessions()
	a, broken, c := NewMockSession(), NewMockSession(), NewMockSession()
	broken.fail.Store(true)
	sessions.Register(a)
	sessions.Register(broken)
	sessions.Register(c)

	delivered := Broadcast(sessions, "1,2,3,;", slog.Default())

	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{"1,2,3,;"}, a.Sent())
	assert.Equal(t, []string{"1,2,3,;"}, c.Sent())
}

// queueFullSession behaves like a client whose send queue is saturated.
type queueFullSession struct{ id string }

func (s queueFullSession) ID() string        { return s.id }
func (s queueFullSession) Send(string) error { return ErrSendQueueFull }

func TestBroadcast_SlowSessionLogsQuietly(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sessions := NewSessions()
	healthy := NewMockSession()
	sessions.Register(queueFullSession{id: "slow"})
	sessions.Register(healthy)

	for i := 0; i < 5; i++ {
		Broadcast(sessions, "1,2,3,;", logger)
	}
	assert.Empty(t, buf.String(), "a full queue is not worth a warning per tick")
	assert.Len(t, healthy.Sent(), 5)

	broken := NewMockSession()
	broken.fail.Store(true)
	sessions.Register(broken)
	Broadcast(sessions, "1,2,3,;", logger)
	assert.Contains(t, buf.String(), "failed to deliver snapshot")
}

func TestBroadcast_NoSessions(t *testing.T) {
	assert.Zero(t, Broadcast(NewSessions(), "", slog.Default()))
}

func TestBroadcaster_DeliversIdenticalPayloadToAll(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(time.Second)

	sessions := NewSessions()
	a, b := NewMockSession(), NewMockSession()
	sessions.Register(a)
	sessions.Register(b)

	broadcaster := NewBroadcaster(engine, sessions, nil)
	assert.NotNil(t, broadcaster.PID())
	broadcaster.PushSnapshot("0,10,13,;")
	broadcaster.PushSnapshot("0,10,26,;")

	waitUntil(t, func() bool { return len(a.Sent()) == 2 && len(b.Sent()) == 2 }, "both sessions should receive both frames")
	assert.Equal(t, a.Sent(), b.Sent())
	assert.Equal(t, []string{"0,10,13,;", "0,10,26,;"}, a.Sent())
}

func TestBroadcaster_SkipsUnregisteredSessions(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(time.Second)

	sessions := NewSessions()
	stay, leave := NewMockSession(), NewMockSession()
	sessions.Register(stay)
	sessions.Register(leave)
	sessions.Unregister(leave)

	NewBroadcaster(engine, sessions, nil).PushSnapshot("frame;")

	waitUntil(t, func() bool { return len(stay.Sent()) == 1 }, "registered session gets the frame")
	assert.Empty(t, leave.Sent())
}
