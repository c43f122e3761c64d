// File: server/server.go
package server

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/lguibr/fruitfall/bollywood"
	"github.com/lguibr/fruitfall/game"
	"github.com/lguibr/fruitfall/utils"
	"golang.org/x/net/websocket"
)

// GamePath is where clients open their WebSocket.
const GamePath = "/game"

// StatePath serves the JSON state view.
const StatePath = "/state"

// Server adapts WebSocket connections to the game's connect/message/disconnect callbacks.
type Server struct {
	game      *game.Game
	engine    *bollywood.Engine
	cfg       utils.Config
	logger    *slog.Logger
	sessionID atomic.Uint64
}

func New(g *game.Game, engine *bollywood.Engine, cfg utils.Config, logger *slog.Logger) *Server {
	return &Server{
		game:   g,
		engine: engine,
		cfg:    cfg,
		logger: utils.OrDefault(logger).With("component", "server"),
	}
}

// Handler returns the HTTP routes served by the process.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(GamePath, websocket.Handler(s.HandleGame()))
	mux.HandleFunc(StatePath, s.HandleState())
	return mux
}
