package simulation

import (
	"math"

	"forcegraph/internal/domain"
	"forcegraph/internal/force"
)

// PinPolicy decides what drag-end does with a node's fixed position
type PinPolicy string

const (
	// PinRelease clears fx/fy on drag-end; the node rejoins free dynamics
	PinRelease PinPolicy = "release"
	// PinRetain keeps fx/fy on drag-end; the node stays where it was dropped
	PinRetain PinPolicy = "retain"
)

// Valid reports whether p is a known policy
func (p PinPolicy) Valid() bool {
	return p == PinRelease || p == PinRetain
}

// Placement selects how nodes without an input position are seeded
type Placement string

const (
	// PlacePhyllotaxis spirals nodes outward from the center point
	PlacePhyllotaxis Placement = "phyllotaxis"
	// PlaceRandom scatters nodes uniformly over a disc using Seed
	PlaceRandom Placement = "random"
)

// Valid reports whether p is a known placement
func (p Placement) Valid() bool {
	return p == PlacePhyllotaxis || p == PlaceRandom
}

// DefaultAlphaDecay cools alpha from 1 to 0.001 in 300 ticks
var DefaultAlphaDecay = 1 - math.Pow(0.001, 1.0/300)

// Options configure one simulation
type Options struct {
	LinkDistance            force.LinkDistance
	LinkStrengthCoefficient float64
	LinkBias                force.Bias

	ChargeStrength    float64
	ChargeDistanceMin float64
	ChargeTheta       float64

	CenterX        float64
	CenterY        float64
	CenterStrength float64

	AlphaDecay        float64
	AlphaMin          float64
	AlphaTargetOnDrag float64
	VelocityDecay     float64

	DragPinPolicy PinPolicy
	MaxDegree     int

	InitialLayout Placement
	Seed          int64
	InitialRadius float64
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		LinkDistance:            force.ConstantDistance(30),
		LinkStrengthCoefficient: 1,
		LinkBias:                force.BiasEven,
		ChargeStrength:          -30,
		ChargeDistanceMin:       1,
		ChargeTheta:             0,
		CenterStrength:          1,
		AlphaDecay:              DefaultAlphaDecay,
		AlphaMin:                0.001,
		AlphaTargetOnDrag:       0.3,
		VelocityDecay:           0.4,
		DragPinPolicy:           PinRelease,
		MaxDegree:               1,
		InitialLayout:           PlacePhyllotaxis,
		Seed:                    1,
		InitialRadius:           10,
	}
}

// Validate rejects out-of-range options. Nothing is clamped.
func (o Options) Validate() error {
	if err := o.LinkDistance.Validate(); err != nil {
		return err
	}
	if !(o.LinkStrengthCoefficient >= 0) || !finite(o.LinkStrengthCoefficient) {
		return domain.NewConfigurationError("link_strength_coefficient", "%v must be finite and non-negative", o.LinkStrengthCoefficient)
	}
	if !o.LinkBias.Valid() {
		return domain.NewConfigurationError("link_bias", "unknown bias %q", o.LinkBias)
	}
	if !finite(o.ChargeStrength) {
		return domain.NewConfigurationError("charge_strength", "%v is not finite", o.ChargeStrength)
	}
	if !(o.ChargeDistanceMin > 0) || !finite(o.ChargeDistanceMin) {
		return domain.NewConfigurationError("charge_distance_min", "%v must be positive", o.ChargeDistanceMin)
	}
	if !(o.ChargeTheta >= 0) || !finite(o.ChargeTheta) {
		return domain.NewConfigurationError("charge_theta", "%v must be finite and non-negative", o.ChargeTheta)
	}
	if !finite(o.CenterX) || !finite(o.CenterY) {
		return domain.NewConfigurationError("center", "(%v, %v) is not finite", o.CenterX, o.CenterY)
	}
	if !(o.CenterStrength >= 0) || !finite(o.CenterStrength) {
		return domain.NewConfigurationError("center_strength", "%v must be finite and non-negative", o.CenterStrength)
	}
	if !(o.AlphaDecay > 0 && o.AlphaDecay <= 1) {
		return domain.NewConfigurationError("alpha_decay", "%v is outside (0, 1]", o.AlphaDecay)
	}
	if !unit(o.AlphaMin) {
		return domain.NewConfigurationError("alpha_min", "%v is outside [0, 1]", o.AlphaMin)
	}
	if !unit(o.AlphaTargetOnDrag) {
		return domain.NewConfigurationError("alpha_target_on_drag", "%v is outside [0, 1]", o.AlphaTargetOnDrag)
	}
	if !unit(o.VelocityDecay) {
		return domain.NewConfigurationError("velocity_decay", "%v is outside [0, 1]", o.VelocityDecay)
	}
	if !o.DragPinPolicy.Valid() {
		return domain.NewConfigurationError("drag_pin_policy", "unknown policy %q", o.DragPinPolicy)
	}
	if o.MaxDegree < 0 {
		return domain.NewConfigurationError("max_degree", "%d is negative", o.MaxDegree)
	}
	if !o.InitialLayout.Valid() {
		return domain.NewConfigurationError("initial_layout", "unknown layout %q", o.InitialLayout)
	}
	if !(o.InitialRadius > 0) || math.IsInf(o.InitialRadius, 1) {
		return domain.NewConfigurationError("initial_radius", "%v must be positive", o.InitialRadius)
	}
	return nil
}

// forces builds the standard registry: link, charge, center
func (o Options) forces() *force.Registry {
	r := force.NewRegistry()
	r.Set("link", force.NewLinkForce(o.LinkDistance, o.LinkStrengthCoefficient, o.LinkBias))

	charge := force.NewManyBodyForce(o.ChargeStrength)
	charge.DistanceMin = o.ChargeDistanceMin
	charge.Theta = o.ChargeTheta
	r.Set("charge", charge)

	center := force.NewCenterForce(o.CenterX, o.CenterY)
	center.Strength = o.CenterStrength
	r.Set("center", center)
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
