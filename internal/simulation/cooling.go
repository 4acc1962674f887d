package simulation

import "forcegraph/internal/domain"

// Cooling is the alpha scheduler. Each tick alpha moves a fraction Decay of
// the way toward Target; with Target 0 that is plain multiplicative decay.
type Cooling struct {
	alpha  float64
	target float64
	decay  float64
	min    float64
}

// NewCooling starts a scheduler at alpha 1 with target 0
func NewCooling(decay, min float64) *Cooling {
	return &Cooling{alpha: 1, decay: decay, min: min}
}

// Alpha returns the current temperature
func (c *Cooling) Alpha() float64 {
	return c.alpha
}

// Target returns the value alpha is pulled toward
func (c *Cooling) Target() float64 {
	return c.target
}

// Settled reports alpha <= alphaMin
func (c *Cooling) Settled() bool {
	return c.alpha <= c.min
}

// Reheating reports whether the target holds alpha above alphaMin
func (c *Cooling) Reheating() bool {
	return c.target > c.min
}

// next returns the alpha the coming tick will run at, without committing it
func (c *Cooling) next() float64 {
	return c.alpha + (c.target-c.alpha)*c.decay
}

// SetAlpha overrides the current temperature
func (c *Cooling) SetAlpha(a float64) error {
	if !unit(a) {
		return domain.NewConfigurationError("alpha", "%v is outside [0, 1]", a)
	}
	c.alpha = a
	return nil
}

// SetTarget changes the value alpha converges to
func (c *Cooling) SetTarget(t float64) error {
	if !unit(t) {
		return domain.NewConfigurationError("alpha_target", "%v is outside [0, 1]", t)
	}
	c.target = t
	return nil
}
