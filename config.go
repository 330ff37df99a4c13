package reach

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds world-wide tuning. Zero fields fall back to DefaultConfig
// values in NewWorld.
type Config struct {
	// Debug enables verbose diagnostics on the world logger.
	Debug bool `env:"REACH_DEBUG" envDefault:"false"`
	// SnapTimeout is how long a snap interactor's element must sit idle
	// before the fallback interactable is forced as candidate.
	SnapTimeout time.Duration `env:"REACH_SNAP_TIMEOUT" envDefault:"3s"`
	// EaseDuration is the default duration of eased snap movements.
	EaseDuration time.Duration `env:"REACH_EASE_DURATION" envDefault:"250ms"`
	// GrabDistance is the default reach of nearest-candidate scorers.
	GrabDistance float64 `env:"REACH_GRAB_DISTANCE" envDefault:"0.15"`
}

const (
	defaultSnapTimeout  = 3 * time.Second
	defaultEaseDuration = 250 * time.Millisecond
	defaultGrabDistance = 0.15
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		SnapTimeout:  defaultSnapTimeout,
		EaseDuration: defaultEaseDuration,
		GrabDistance: defaultGrabDistance,
	}
}

// LoadConfigFromEnv reads Config from REACH_* environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.SnapTimeout <= 0 {
		c.SnapTimeout = defaultSnapTimeout
	}
	if c.EaseDuration <= 0 {
		c.EaseDuration = defaultEaseDuration
	}
	if c.GrabDistance <= 0 {
		c.GrabDistance = defaultGrabDistance
	}
	return c
}
