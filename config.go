package orrery

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const epochFormat = "2006-01-02"

// Config carries the clock and view tuning of a system. Zero values are not
// meaningful; start from DefaultConfig or LoadConfig.
type Config struct {
	// TickRate is the nominal scheduler cadence in ticks per real second.
	TickRate float64
	// BaseTimeStep is the simulated days advanced per tick at unit scale.
	BaseTimeStep float64
	// MaxSpeed multiplies the squared speed factor into the time scale.
	MaxSpeed float64
	// MaxSpeedFactor bounds SetSpeedFactor.
	MaxSpeedFactor float64
	// MinZoom and MaxZoom bound SetZoom.
	MinZoom, MaxZoom float64
	// Epoch is the simulated date at elapsed day zero.
	Epoch time.Time
}

// DefaultConfig returns the tuning the app ships with: sixty ticks per
// second, a tenth of a simulated day per tick at full unit speed, and the
// J2000-ish epoch the catalog phases were picked against.
func DefaultConfig() Config {
	return Config{
		TickRate:       60,
		BaseTimeStep:   0.01,
		MaxSpeed:       10,
		MaxSpeedFactor: 5,
		MinZoom:        0.2,
		MaxZoom:        8,
		Epoch:          time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// LoadConfig reads a TOML file and merges it over the defaults. Keys live
// under [clock] and [view]; any key absent from the file keeps its default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("clock.tick_rate", cfg.TickRate)
	v.SetDefault("clock.base_step", cfg.BaseTimeStep)
	v.SetDefault("clock.max_speed", cfg.MaxSpeed)
	v.SetDefault("clock.max_speed_factor", cfg.MaxSpeedFactor)
	v.SetDefault("view.min_zoom", cfg.MinZoom)
	v.SetDefault("view.max_zoom", cfg.MaxZoom)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg.TickRate = v.GetFloat64("clock.tick_rate")
	cfg.BaseTimeStep = v.GetFloat64("clock.base_step")
	cfg.MaxSpeed = v.GetFloat64("clock.max_speed")
	cfg.MaxSpeedFactor = v.GetFloat64("clock.max_speed_factor")
	cfg.MinZoom = v.GetFloat64("view.min_zoom")
	cfg.MaxZoom = v.GetFloat64("view.max_zoom")
	// A date-only round-trip through the default would drop its noon
	// component; only an explicit key replaces the epoch.
	if v.IsSet("clock.epoch") {
		epoch, err := time.Parse(epochFormat, v.GetString("clock.epoch"))
		if err != nil {
			return cfg, fmt.Errorf("parsing clock.epoch: %w", err)
		}
		cfg.Epoch = epoch
	}
	if cfg.TickRate <= 0 || cfg.BaseTimeStep <= 0 || cfg.MaxSpeed <= 0 {
		return cfg, fmt.Errorf("config %s: clock rates must be positive", path)
	}
	if cfg.MinZoom <= 0 || cfg.MaxZoom < cfg.MinZoom {
		return cfg, fmt.Errorf("config %s: zoom bounds are inverted", path)
	}
	return cfg, nil
}
