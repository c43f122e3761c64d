// File: main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lguibr/fruitfall/bollywood"
	"github.com/lguibr/fruitfall/game"
	"github.com/lguibr/fruitfall/server"
	"github.com/lguibr/fruitfall/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fruitfall:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return err
	}
	logger := utils.NewLogger(cfg, os.Stdout)

	engine := bollywood.NewEngine(bollywood.WithLogger(logger))
	g := game.New(cfg, engine, logger)
	wsServer := server.New(g, engine, cfg, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: wsServer.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "game", server.GamePath, "state", server.StatePath)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			g.Close(cfg.ShutdownTimeout)
			engine.Shutdown(cfg.ShutdownTimeout)
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", "error", err)
	}
	g.Close(cfg.ShutdownTimeout)
	engine.Shutdown(cfg.ShutdownTimeout)
	logger.Info("stopped")
	return nil
}
