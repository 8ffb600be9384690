package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimConfig holds the simulation parameters.
type SimConfig struct {
	TickSeconds        float64 `mapstructure:"tickSeconds"`
	HitToleranceMeters float64 `mapstructure:"hitToleranceMeters"`
	FieldWidthMeters   float64 `mapstructure:"fieldWidthMeters"`
	Terrain            string  `mapstructure:"terrain"` // hills | flat
	TerrainSeed        int64   `mapstructure:"terrainSeed"`
	MaxTicksPerFlight  int     `mapstructure:"maxTicksPerFlight"`
}

// HowitzerConfig holds the default aiming state.
type HowitzerConfig struct {
	MuzzleVelocity   float64 `mapstructure:"muzzleVelocity"`
	ElevationDegrees float64 `mapstructure:"elevationDegrees"`
	MinElevationDeg  float64 `mapstructure:"minElevationDegrees"`
	MaxElevationDeg  float64 `mapstructure:"maxElevationDegrees"`
}

// ServerConfig holds listen addresses for the control and metrics surfaces.
type ServerConfig struct {
	APIAddr     string `mapstructure:"apiAddr"`
	MetricsAddr string `mapstructure:"metricsAddr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full simulator configuration.
type Config struct {
	Sim      SimConfig      `mapstructure:"sim"`
	Howitzer HowitzerConfig `mapstructure:"howitzer"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads configuration with the precedence defaults < YAML file < env.
// path may be empty, in which case only defaults and HOWITZER_* environment
// variables apply. A missing file at a non-empty path is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("sim.tickSeconds", 0.5)
	v.SetDefault("sim.hitToleranceMeters", 175.0)
	v.SetDefault("sim.fieldWidthMeters", 30000.0)
	v.SetDefault("sim.terrain", "hills")
	v.SetDefault("sim.terrainSeed", 1)
	v.SetDefault("sim.maxTicksPerFlight", 10000)

	v.SetDefault("howitzer.muzzleVelocity", 827.0)
	v.SetDefault("howitzer.elevationDegrees", 45.0)
	v.SetDefault("howitzer.minElevationDegrees", 0.0)
	v.SetDefault("howitzer.maxElevationDegrees", 85.0)

	v.SetDefault("server.apiAddr", ":8087")
	v.SetDefault("server.metricsAddr", ":9090")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("HOWITZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.TickSeconds <= 0 {
		return fmt.Errorf("sim.tickSeconds %v must be positive", c.Sim.TickSeconds)
	}
	if c.Sim.HitToleranceMeters <= 0 {
		return fmt.Errorf("sim.hitToleranceMeters %v must be positive", c.Sim.HitToleranceMeters)
	}
	if c.Sim.FieldWidthMeters <= 0 {
		return fmt.Errorf("sim.fieldWidthMeters %v must be positive", c.Sim.FieldWidthMeters)
	}
	switch c.Sim.Terrain {
	case "hills", "flat":
	default:
		return fmt.Errorf("sim.terrain %q must be hills or flat", c.Sim.Terrain)
	}
	if c.Howitzer.MuzzleVelocity <= 0 {
		return fmt.Errorf("howitzer.muzzleVelocity %v must be positive", c.Howitzer.MuzzleVelocity)
	}
	if c.Howitzer.MinElevationDeg > c.Howitzer.MaxElevationDeg {
		return fmt.Errorf("howitzer elevation bounds [%v, %v] are inverted",
			c.Howitzer.MinElevationDeg, c.Howitzer.MaxElevationDeg)
	}
	return nil
}
