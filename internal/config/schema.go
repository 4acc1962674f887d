package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Layout   LayoutConfig   `yaml:"layout"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Batch    BatchConfig    `yaml:"batch"`
}

// LayoutConfig holds the physics options of every new simulation
type LayoutConfig struct {
	LinkDistance            LinkDistanceConfig `yaml:"link_distance"`
	LinkStrengthCoefficient float64            `yaml:"link_strength_coefficient"`
	LinkBias                string             `yaml:"link_bias"`

	ChargeStrength    float64 `yaml:"charge_strength"`
	ChargeDistanceMin float64 `yaml:"charge_distance_min"`
	ChargeTheta       float64 `yaml:"charge_theta"` // 0 = exact all-pairs

	CenterX        float64 `yaml:"center_x"`
	CenterY        float64 `yaml:"center_y"`
	CenterStrength float64 `yaml:"center_strength"`

	AlphaDecay        float64 `yaml:"alpha_decay"`
	AlphaMin          float64 `yaml:"alpha_min"`
	AlphaTargetOnDrag float64 `yaml:"alpha_target_on_drag"`
	VelocityDecay     float64 `yaml:"velocity_decay"`

	DragPinPolicy string `yaml:"drag_pin_policy"` // release, retain
	MaxDegree     int    `yaml:"max_degree"`

	InitialLayout string  `yaml:"initial_layout"` // phyllotaxis, random
	Seed          int64   `yaml:"seed"`
	InitialRadius float64 `yaml:"initial_radius"`
}

// LinkDistanceConfig is either a constant or a weight mapping.
// A bare number is accepted as shorthand for {constant: N}.
type LinkDistanceConfig struct {
	Constant *float64              `yaml:"constant,omitempty"`
	Mapping  *DistanceMappingConfig `yaml:"mapping,omitempty"`
}

// DistanceMappingConfig maps the weight domain onto [distance_min, distance_max]
type DistanceMappingConfig struct {
	DistanceMin float64  `yaml:"distance_min"`
	DistanceMax float64  `yaml:"distance_max"`
	WeightMin   *float64 `yaml:"weight_min,omitempty"` // nil = smallest link weight
	WeightMax   *float64 `yaml:"weight_max,omitempty"` // nil = largest link weight
}

// UnmarshalYAML implements yaml.Unmarshaler. The decoded value replaces the
// default entirely so constant and mapping never mix across sources.
func (d *LinkDistanceConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var c float64
		if err := value.Decode(&c); err != nil {
			return err
		}
		*d = LinkDistanceConfig{Constant: &c}
		return nil
	}

	type plain LinkDistanceConfig
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = LinkDistanceConfig(p)
	return nil
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr          string   `yaml:"addr"`
	FrameInterval Duration `yaml:"frame_interval"`
	MaxSessions   int      `yaml:"max_sessions"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BatchConfig caps batch pre-settling
type BatchConfig struct {
	Ticks       int      `yaml:"ticks"`
	MaxDuration Duration `yaml:"max_duration"` // 0 = no wall-clock cap
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
