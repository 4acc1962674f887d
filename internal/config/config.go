// Package config provides configuration management for forcegraph.
//
// Config file locations (priority order):
//  1. $FORCEGRAPH_CONFIG
//  2. ./forcegraph.yaml
//  3. $XDG_CONFIG_HOME/forcegraph/config.yaml
//  4. ~/.config/forcegraph/config.yaml
//  5. /etc/forcegraph/config.yaml
//
// A file only needs the keys it changes. Everything absent keeps its
// documented default; everything present is validated and never clamped.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"forcegraph/internal/domain"
	"forcegraph/internal/force"
	"forcegraph/internal/simulation"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	opts := simulation.DefaultOptions()
	distance := opts.LinkDistance.Constant

	return &Config{
		Version: 1,
		Layout: LayoutConfig{
			LinkDistance:            LinkDistanceConfig{Constant: &distance},
			LinkStrengthCoefficient: opts.LinkStrengthCoefficient,
			LinkBias:                string(opts.LinkBias),
			ChargeStrength:          opts.ChargeStrength,
			ChargeDistanceMin:       opts.ChargeDistanceMin,
			ChargeTheta:             opts.ChargeTheta,
			CenterX:                 opts.CenterX,
			CenterY:                 opts.CenterY,
			CenterStrength:          opts.CenterStrength,
			AlphaDecay:              opts.AlphaDecay,
			AlphaMin:                opts.AlphaMin,
			AlphaTargetOnDrag:       opts.AlphaTargetOnDrag,
			VelocityDecay:           opts.VelocityDecay,
			DragPinPolicy:           string(opts.DragPinPolicy),
			MaxDegree:               opts.MaxDegree,
			InitialLayout:           string(opts.InitialLayout),
			Seed:                    opts.Seed,
			InitialRadius:           opts.InitialRadius,
		},
		Server: ServerConfig{
			Addr:          ":3000",
			FrameInterval: Duration(16 * time.Millisecond),
			MaxSessions:   64,
		},
		Database: DatabaseConfig{Path: "./forcegraph.db"},
		Batch: BatchConfig{
			Ticks:       300,
			MaxDuration: Duration(10 * time.Second),
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = "./forcegraph.db"
	}
}

// Validate checks every section. The first offending field is reported as a
// *domain.ConfigurationError.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return domain.NewConfigurationError("version", "unsupported version %d", c.Version)
	}
	opts, err := c.Layout.Options()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return domain.NewConfigurationError("server.addr", "is empty")
	}
	if c.Server.FrameInterval.Duration() <= 0 {
		return domain.NewConfigurationError("server.frame_interval", "%s must be positive", c.Server.FrameInterval.Duration())
	}
	if c.Server.MaxSessions <= 0 {
		return domain.NewConfigurationError("server.max_sessions", "%d must be positive", c.Server.MaxSessions)
	}
	if c.Batch.Ticks < 0 {
		return domain.NewConfigurationError("batch.ticks", "%d is negative", c.Batch.Ticks)
	}
	if c.Batch.MaxDuration.Duration() < 0 {
		return domain.NewConfigurationError("batch.max_duration", "%s is negative", c.Batch.MaxDuration.Duration())
	}
	return nil
}

// Options converts the layout section into simulation options
func (l LayoutConfig) Options() (simulation.Options, error) {
	distance, err := l.LinkDistance.linkDistance()
	if err != nil {
		return simulation.Options{}, err
	}

	return simulation.Options{
		LinkDistance:            distance,
		LinkStrengthCoefficient: l.LinkStrengthCoefficient,
		LinkBias:                force.Bias(l.LinkBias),
		ChargeStrength:          l.ChargeStrength,
		ChargeDistanceMin:       l.ChargeDistanceMin,
		ChargeTheta:             l.ChargeTheta,
		CenterX:                 l.CenterX,
		CenterY:                 l.CenterY,
		CenterStrength:          l.CenterStrength,
		AlphaDecay:              l.AlphaDecay,
		AlphaMin:                l.AlphaMin,
		AlphaTargetOnDrag:       l.AlphaTargetOnDrag,
		VelocityDecay:           l.VelocityDecay,
		DragPinPolicy:           simulation.PinPolicy(l.DragPinPolicy),
		MaxDegree:               l.MaxDegree,
		InitialLayout:           simulation.Placement(l.InitialLayout),
		Seed:                    l.Seed,
		InitialRadius:           l.InitialRadius,
	}, nil
}

func (d LinkDistanceConfig) linkDistance() (force.LinkDistance, error) {
	switch {
	case d.Constant != nil && d.Mapping != nil:
		return force.LinkDistance{}, domain.NewConfigurationError("link_distance", "set either constant or mapping, not both")
	case d.Constant != nil:
		return force.ConstantDistance(*d.Constant), nil
	case d.Mapping != nil:
		m := d.Mapping
		return force.LinkDistance{Mapping: &force.DistanceMapping{
			DistanceMin: m.DistanceMin,
			DistanceMax: m.DistanceMax,
			WeightMin:   m.WeightMin,
			WeightMax:   m.WeightMax,
		}}, nil
	default:
		return force.LinkDistance{}, domain.NewConfigurationError("link_distance", "needs a constant or a mapping")
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	l := c.Layout
	distance := "mapped"
	if l.LinkDistance.Constant != nil {
		distance = fmt.Sprintf("%g", *l.LinkDistance.Constant)
	}

	summary := fmt.Sprintf("Link distance: %s, charge: %g, center: (%g, %g)\n",
		distance, l.ChargeStrength, l.CenterX, l.CenterY)
	summary += fmt.Sprintf("Alpha decay: %.4f, min: %g, velocity decay: %g, drag pin: %s\n",
		l.AlphaDecay, l.AlphaMin, l.VelocityDecay, l.DragPinPolicy)
	summary += fmt.Sprintf("Server: %s, frame interval: %s, batch ticks: %d",
		c.Server.Addr, c.Server.FrameInterval.Duration(), c.Batch.Ticks)

	return summary
}
