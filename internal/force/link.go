package force

import (
	"math"

	"forcegraph/internal/domain"
)

// Bias selects how a link's correction is split between its endpoints
type Bias string

const (
	// BiasEven splits every correction 50/50
	BiasEven Bias = "even"
	// BiasDegree moves the lower-degree endpoint more
	BiasDegree Bias = "degree"
)

// Valid reports whether b is a known bias
func (b Bias) Valid() bool {
	return b == BiasEven || b == BiasDegree
}

// DistanceMapping maps link weights linearly onto [DistanceMin, DistanceMax].
// A nil weight bound is taken from the minimum or maximum weight over all links.
type DistanceMapping struct {
	DistanceMin float64
	DistanceMax float64
	WeightMin   *float64
	WeightMax   *float64
}

// LinkDistance is either a constant target distance or a weight mapping
type LinkDistance struct {
	Constant float64
	Mapping  *DistanceMapping
}

// ConstantDistance returns a LinkDistance with the same target for every link
func ConstantDistance(d float64) LinkDistance {
	return LinkDistance{Constant: d}
}

// MappedDistance returns a LinkDistance mapping the links' weight domain onto [dMin, dMax]
func MappedDistance(dMin, dMax float64) LinkDistance {
	return LinkDistance{Mapping: &DistanceMapping{DistanceMin: dMin, DistanceMax: dMax}}
}

// Validate rejects negative or non-finite distances and inverted ranges
func (d LinkDistance) Validate() error {
	if d.Mapping == nil {
		if !nonNegative(d.Constant) {
			return domain.NewConfigurationError("link_distance", "constant distance %v must be finite and non-negative", d.Constant)
		}
		return nil
	}

	m := d.Mapping
	if !nonNegative(m.DistanceMin) || !nonNegative(m.DistanceMax) {
		return domain.NewConfigurationError("link_distance", "distance range [%v, %v] must be finite and non-negative", m.DistanceMin, m.DistanceMax)
	}
	if m.DistanceMin > m.DistanceMax {
		return domain.NewConfigurationError("link_distance", "distance_min %v exceeds distance_max %v", m.DistanceMin, m.DistanceMax)
	}
	for _, w := range []*float64{m.WeightMin, m.WeightMax} {
		if w != nil && (math.IsNaN(*w) || math.IsInf(*w, 0)) {
			return domain.NewConfigurationError("link_distance", "weight bound %v is not finite", *w)
		}
	}
	if m.WeightMin != nil && m.WeightMax != nil && *m.WeightMin > *m.WeightMax {
		return domain.NewConfigurationError("link_distance", "weight_min %v exceeds weight_max %v", *m.WeightMin, *m.WeightMax)
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// resolve returns the per-weight distance function for the given links
func (d LinkDistance) resolve(links []domain.Link) func(w float64) float64 {
	if d.Mapping == nil {
		c := d.Constant
		return func(float64) float64 { return c }
	}

	m := *d.Mapping
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range links {
		lo = math.Min(lo, l.Weight)
		hi = math.Max(hi, l.Weight)
	}
	if m.WeightMin != nil {
		lo = *m.WeightMin
	}
	if m.WeightMax != nil {
		hi = *m.WeightMax
	}

	return func(w float64) float64 {
		if !(hi > lo) {
			return (m.DistanceMin + m.DistanceMax) / 2
		}
		t := (w - lo) / (hi - lo)
		return m.DistanceMin + t*(m.DistanceMax-m.DistanceMin)
	}
}

// LinkForce is a spring along every link. Each tick it adds velocity toward
// closing the gap between the current and target separation, split between
// the endpoints by Bias. The strength of a link is Coefficient divided by the
// smaller endpoint degree, so hubs are not over-constrained.
type LinkForce struct {
	Distance    LinkDistance
	Coefficient float64
	Bias        Bias

	distances []float64
	strengths []float64
	biases    []float64
}

// NewLinkForce creates a link force. Call Initialize before Apply.
func NewLinkForce(distance LinkDistance, coefficient float64, bias Bias) *LinkForce {
	return &LinkForce{
		Distance:    distance,
		Coefficient: coefficient,
		Bias:        bias,
	}
}

// Initialize computes per-link target distance, strength and bias
func (f *LinkForce) Initialize(g *domain.Graph) error {
	if err := f.Distance.Validate(); err != nil {
		return err
	}
	if f.Coefficient < 0 || math.IsNaN(f.Coefficient) {
		return domain.NewConfigurationError("link_strength_coefficient", "%v is negative", f.Coefficient)
	}
	if f.Bias == "" {
		f.Bias = BiasEven
	}
	if !f.Bias.Valid() {
		return domain.NewConfigurationError("link_bias", "unknown bias %q", f.Bias)
	}

	links := g.Links()
	distanceOf := f.Distance.resolve(links)

	f.distances = make([]float64, len(links))
	f.strengths = make([]float64, len(links))
	f.biases = make([]float64, len(links))

	for i, l := range links {
		d := distanceOf(l.Weight)
		if d < 0 {
			return domain.NewConfigurationError("link_distance", "weight %v maps to negative distance %v", l.Weight, d)
		}
		f.distances[i] = d

		srcDeg := g.Node(l.Source).Degree
		dstDeg := g.Node(l.Target).Degree
		f.strengths[i] = f.Coefficient / float64(min(srcDeg, dstDeg))

		f.biases[i] = 0.5
		if f.Bias == BiasDegree {
			f.biases[i] = float64(srcDeg) / float64(srcDeg+dstDeg)
		}
	}
	return nil
}

// TargetDistance returns the resolved target separation of link i
func (f *LinkForce) TargetDistance(i int) float64 {
	return f.distances[i]
}

// Apply implements Force
func (f *LinkForce) Apply(g *domain.Graph, dv []domain.Vector) {
	nodes := g.Nodes()
	for i, l := range g.Links() {
		if l.Source == l.Target {
			continue
		}
		src, dst := &nodes[l.Source], &nodes[l.Target]

		// Separation after this tick's momentum
		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist == 0 {
			dx, dy = jiggle(l.Source, l.Target)
			dist = math.Sqrt(dx*dx + dy*dy)
		}

		k := (dist - f.distances[i]) / dist * f.strengths[i]
		dx *= k
		dy *= k

		b := f.biases[i]
		dv[l.Target].X -= dx * b
		dv[l.Target].Y -= dy * b
		dv[l.Source].X += dx * (1 - b)
		dv[l.Source].Y += dy * (1 - b)
	}
}
