// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by LoadConfig.
const EnvPrefix = "FRUIT_"

// Config holds all configurable game parameters.
type Config struct {
	// Server
	Addr            string        `env:"ADDR"`             // Listen address for the HTTP/WebSocket server
	SendBuffer      int           `env:"SEND_BUFFER"`      // Outbound frames queued per session before dropping
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`    // Deadline for a single frame write to a client
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"` // Grace period for draining on SIGINT/SIGTERM

	// Timing
	TickPeriod time.Duration `env:"TICK_PERIOD"` // Time between spawn/advance/cull/broadcast steps

	// World
	SpawnCap     int `env:"SPAWN_CAP"`     // Maximum live objects after a spawn
	SpawnWidth   int `env:"SPAWN_WIDTH"`   // Objects spawn at x in [0, SpawnWidth)
	FallStep     int `env:"FALL_STEP"`     // Units an object falls per tick
	CullBound    int `env:"CULL_BOUND"`    // Objects with y above this are removed
	HitTolerance int `env:"HIT_TOLERANCE"` // Per-axis distance under which a click hits an object

	// Penalty objects spawn with probability PenaltyNumerator/PenaltyDenominator.
	PenaltyNumerator   int `env:"PENALTY_NUM"`
	PenaltyDenominator int `env:"PENALTY_DEN"`

	// Logging
	LogLevel  slog.Level `env:"LOG_LEVEL"`
	LogFormat string     `env:"LOG_FORMAT"` // "text" or "json"
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		Addr:            ":3001",
		SendBuffer:      64,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,

		TickPeriod: 700 * time.Millisecond,

		SpawnCap:     10,
		SpawnWidth:   1000,
		FallStep:     13,
		CullBound:    500,
		HitTolerance: 50,

		PenaltyNumerator:   2,
		PenaltyDenominator: 5,

		LogLevel:  slog.LevelInfo,
		LogFormat: "text",
	}
}

// LoadConfig starts from DefaultConfig, loads the given dotenv files (".env"
// when none are named; missing files are skipped) and then applies FRUIT_*
// environment overrides.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first parameter that would make the game misbehave.
func (c Config) Validate() error {
	switch {
	case c.TickPeriod <= 0:
		return fmt.Errorf("invalid config: tick period must be positive, got %s", c.TickPeriod)
	case c.SpawnCap <= 0:
		return fmt.Errorf("invalid config: spawn cap must be positive, got %d", c.SpawnCap)
	case c.SpawnWidth <= 0:
		return fmt.Errorf("invalid config: spawn width must be positive, got %d", c.SpawnWidth)
	case c.FallStep <= 0:
		return fmt.Errorf("invalid config: fall step must be positive, got %d", c.FallStep)
	case c.CullBound <= 0:
		return fmt.Errorf("invalid config: cull bound must be positive, got %d", c.CullBound)
	case c.HitTolerance <= 0:
		return fmt.Errorf("invalid config: hit tolerance must be positive, got %d", c.HitTolerance)
	case c.PenaltyDenominator <= 0:
		return fmt.Errorf("invalid config: penalty denominator must be positive, got %d", c.PenaltyDenominator)
	case c.PenaltyNumerator < 0 || c.PenaltyNumerator > c.PenaltyDenominator:
		return fmt.Errorf("invalid config: penalty ratio %d/%d outside [0,1]", c.PenaltyNumerator, c.PenaltyDenominator)
	case c.SendBuffer <= 0:
		return fmt.Errorf("invalid config: send buffer must be positive, got %d", c.SendBuffer)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("invalid config: log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
