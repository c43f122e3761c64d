// File: server/session.go
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/lguibr/fruitfall/bollywood"
	"github.com/lguibr/fruitfall/game"
	"golang.org/x/net/websocket"
)

// ErrSessionClosed is returned by Send after the connection has gone away.
var ErrSessionClosed = errors.New("session closed")

// outboundFrame is a text frame queued for the session's writer actor.
type outboundFrame struct {
	payload string
}

// Session is the game.Session for one WebSocket connection. Frames are handed
// to a dedicated writer actor, so Send never waits on the network.
type Session struct {
	id        string
	conn      *websocket.Conn
	engine    *bollywood.Engine
	writerPID *bollywood.PID
	closed    atomic.Bool
	dropped   atomic.Uint64
}

func (s *Session) ID() string { return s.id }

// Send queues payload for delivery without blocking.
func (s *Session) Send(payload string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.engine.Send(s.writerPID, outboundFrame{payload: payload}, nil) {
		s.dropped.Add(1)
		return game.ErrSendQueueFull
	}
	return nil
}

// Dropped reports how many frames were discarded because the queue was full.
func (s *Session) Dropped() uint64 { return s.dropped.Load() }

// close stops the writer; frames still queued are discarded.
func (s *Session) close() {
	if s.closed.CompareAndSwap(false, true) {
		s.engine.Stop(s.writerPID)
	}
}

// newSession spawns the writer actor for conn.
func (s *Server) newSession(conn *websocket.Conn) (*Session, error) {
	id := fmt.Sprintf("session-%d@%s", s.sessionID.Add(1), remoteAddr(conn))
	props := bollywood.NewProps(newSessionWriterProducer(conn, s.cfg.WriteTimeout, s.logger.With("session", id))).
		WithMailboxSize(s.cfg.SendBuffer)
	pid := s.engine.Spawn(props)
	if pid == nil {
		return nil, fmt.Errorf("spawn writer for %s: engine stopping", id)
	}
	return &Session{id: id, conn: conn, engine: s.engine, writerPID: pid}, nil
}

// sessionWriter owns all writes to one connection.
type sessionWriter struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	logger       *slog.Logger
	failed       bool
}

func newSessionWriterProducer(conn *websocket.Conn, writeTimeout time.Duration, logger *slog.Logger) bollywood.Producer {
	return func() bollywood.Actor {
		return &sessionWriter{conn: conn, writeTimeout: writeTimeout, logger: logger}
	}
}

// Receive handles messages for the sessionWriter.
func (w *sessionWriter) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("panic recovered in session writer", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	switch msg := ctx.Message().(type) {
	case outboundFrame:
		w.write(msg.payload)
	case bollywood.Started, bollywood.Stopping, bollywood.Stopped:
	default:
		w.logger.Warn("session writer got unknown message", "type", fmt.Sprintf("%T", msg))
	}
}

func (w *sessionWriter) write(payload string) {
	// After one failed write the connection is treated as dead; the read loop
	// notices the close and unregisters the session.
	if w.failed {
		return
	}
	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if err := websocket.Message.Send(w.conn, payload); err != nil {
		w.failed = true
		w.logger.Warn("write failed, closing connection", "error", err)
		_ = w.conn.Close()
	}
}

func remoteAddr(conn *websocket.Conn) string {
	if conn == nil {
		return "unknown"
	}
	if req := conn.Request(); req != nil && req.RemoteAddr != "" {
		return req.RemoteAddr
	}
	return "unknown"
}
