// File: server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"runtime/debug"

	"golang.org/x/net/websocket"
)

// HandleGame registers the connection with the game and pumps its inbound
// frames until the client goes away.
func (s *Server) HandleGame() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		session, err := s.newSession(ws)
		if err != nil {
			s.logger.Warn("rejecting connection", "remote", remoteAddr(ws), "error", err)
			_ = ws.Close()
			return
		}
		logger := s.logger.With("session", session.ID())

		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered in connection handler", "panic", r, "stack", string(debug.Stack()))
			}
			s.game.Disconnect(session)
			session.close()
			_ = ws.Close()
			logger.Debug("connection closed", "dropped_frames", session.Dropped())
		}()

		s.game.Connect(session)
		s.readLoop(session, ws)
	}
}

// readLoop forwards every text frame to the game until a read fails.
func (s *Server) readLoop(session *Session, ws *websocket.Conn) {
	logger := s.logger.With("session", session.ID())
	for {
		var text string
		if err := websocket.Message.Receive(ws, &text); err != nil {
			if isClosedErr(err) {
				logger.Debug("client closed connection")
			} else {
				logger.Warn("read failed", "error", err)
			}
			return
		}
		s.game.Message(session, text)
	}
}

func isClosedErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrUnexpectedEOF)
}

// HandleState serves the current world and session count as JSON.
func (s *Server) HandleState() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered in state handler", "panic", rec, "stack", string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := json.Marshal(s.game.State())
		if err != nil {
			s.logger.Error("failed to marshal state", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			s.logger.Debug("failed to write state response", "error", err)
		}
	}
}
