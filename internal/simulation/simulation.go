// Package simulation is the layout engine instance: it owns one graph, its
// force registry, the cooling scheduler and the drag/pin and visibility state.
//
// A Simulation has no goroutines of its own. Hosts drive it one tick at a
// time through Step (or Advance, which respects Start/Stop), or in bulk
// through Run and RunFor. Physics are identical regardless of caller. A
// Simulation is not safe for concurrent use; hosts serialize access.
package simulation

import (
	"context"
	"errors"
	"fmt"

	"forcegraph/internal/domain"
	"forcegraph/internal/force"
	"forcegraph/internal/visibility"
)

// ErrNonFiniteDelta is returned when a tick's accumulated deltas contain NaN or
// infinity. The tick is discarded and no node state changes.
var ErrNonFiniteDelta = errors.New("force produced a non-finite velocity delta")

// Simulation is one independent layout engine
type Simulation struct {
	graph   *domain.Graph
	opts    Options
	forces  *force.Registry
	cooling *Cooling
	filter  *visibility.Filter

	dv       []domain.Vector
	tick     int
	running  bool
	dragging map[int]struct{}

	tickListeners []func(domain.Frame)
	endListeners  []func()
}

// New validates opts, seeds initial positions and binds the standard forces
// (link, charge, center) to g. The simulation starts at alpha 1, stopped.
func New(g *domain.Graph, opts Options) (*Simulation, error) {
	if g == nil {
		return nil, domain.NewInputError("", "graph is nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	filter, err := visibility.New(g, opts.MaxDegree)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		graph:    g,
		opts:     opts,
		forces:   opts.forces(),
		cooling:  NewCooling(opts.AlphaDecay, opts.AlphaMin),
		filter:   filter,
		dv:       make([]domain.Vector, g.Len()),
		dragging: make(map[int]struct{}),
	}

	place(g, opts)
	if err := s.forces.Initialize(g); err != nil {
		return nil, err
	}
	return s, nil
}

// Graph returns the simulated graph
func (s *Simulation) Graph() *domain.Graph {
	return s.graph
}

// Options returns the options the simulation was built with
func (s *Simulation) Options() Options {
	return s.opts
}

// Tick returns how many ticks have run
func (s *Simulation) Tick() int {
	return s.tick
}

// Alpha returns the current temperature
func (s *Simulation) Alpha() float64 {
	return s.cooling.Alpha()
}

// AlphaTarget returns the value alpha is converging to
func (s *Simulation) AlphaTarget() float64 {
	return s.cooling.Target()
}

// SetAlpha overrides alpha. Raising it above alphaMin reheats a settled layout.
func (s *Simulation) SetAlpha(a float64) error {
	return s.cooling.SetAlpha(a)
}

// SetAlphaTarget changes the cooling target
func (s *Simulation) SetAlphaTarget(t float64) error {
	return s.cooling.SetTarget(t)
}

// Settled reports alpha <= alphaMin
func (s *Simulation) Settled() bool {
	return s.cooling.Settled()
}

// Running reports whether Advance will tick
func (s *Simulation) Running() bool {
	return s.running
}

// Start resumes continuous mode. Positions, velocities and alpha are kept.
func (s *Simulation) Start() {
	s.running = true
}

// Stop pauses continuous mode at the current tick boundary
func (s *Simulation) Stop() {
	s.running = false
}

// OnTick registers fn to receive a frame after every applied tick
func (s *Simulation) OnTick(fn func(domain.Frame)) {
	s.tickListeners = append(s.tickListeners, fn)
}

// OnEnd registers fn to run when a tick leaves the simulation settled
func (s *Simulation) OnEnd(fn func()) {
	s.endListeners = append(s.endListeners, fn)
}

// Forces returns the registered force names in application order
func (s *Simulation) Forces() []string {
	return s.forces.Names()
}

// SetForce installs f under name, replacing any force already there in place.
// A nil f removes the force. Forces that need topology are initialized first.
func (s *Simulation) SetForce(name string, f force.Force) error {
	if name == "" {
		return domain.NewConfigurationError("force", "name is empty")
	}
	if init, ok := f.(force.Initializer); ok {
		if err := init.Initialize(s.graph); err != nil {
			return fmt.Errorf("initialize force %s: %w", name, err)
		}
	}
	s.forces.Set(name, f)
	return nil
}

// RemoveForce drops the named force, reporting whether it existed
func (s *Simulation) RemoveForce(name string) bool {
	return s.forces.Remove(name)
}

// Step runs one tick. It reports false without touching state when the
// simulation is settled and not reheating. A tick whose forces fail leaves
// positions, velocities, alpha and the tick count unchanged.
func (s *Simulation) Step() (bool, error) {
	if s.cooling.Settled() && !s.cooling.Reheating() {
		s.running = false
		return false, nil
	}

	alpha := s.cooling.next()
	if err := s.accumulate(); err != nil {
		return false, err
	}

	s.cooling.alpha = alpha
	integrate(s.graph.Nodes(), s.dv, alpha, s.opts.VelocityDecay)
	s.tick++

	if len(s.tickListeners) > 0 {
		frame := s.Snapshot()
		for _, fn := range s.tickListeners {
			fn(frame)
		}
	}

	if s.cooling.Settled() && !s.cooling.Reheating() {
		s.running = false
		for _, fn := range s.endListeners {
			fn()
		}
	}
	return true, nil
}

// Advance is the continuous-mode entry point: one tick if running, else nothing
func (s *Simulation) Advance() (bool, error) {
	if !s.running {
		return false, nil
	}
	return s.Step()
}

// Run executes up to n ticks synchronously, stopping early once settled.
// It ignores Start/Stop and returns the number of ticks applied.
func (s *Simulation) Run(n int) (int, error) {
	return s.RunFor(context.Background(), n)
}

// RunFor is Run with cancellation checked between ticks. A host uses it to
// cap batch pre-settling by wall-clock time.
func (s *Simulation) RunFor(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, domain.NewConfigurationError("ticks", "%d is negative", n)
	}
	ran := 0
	for ran < n {
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		ok, err := s.Step()
		if err != nil {
			return ran, err
		}
		if !ok {
			break
		}
		ran++
	}
	return ran, nil
}

// Snapshot returns the current frame, visibility included
func (s *Simulation) Snapshot() domain.Frame {
	frame := domain.NewFrame(s.graph, s.tick, s.cooling.Alpha(), s.cooling.Settled())
	frame.NodeVisibility = s.filter.Nodes()
	frame.LinkVisibility = s.filter.Links()
	return frame
}

// accumulate fills s.dv from a consistent read of the prior state. Forces only
// write into s.dv, so a panic or non-finite sum leaves node state untouched.
func (s *Simulation) accumulate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("force panicked: %v", r)
		}
	}()

	s.forces.Accumulate(s.graph, s.dv)
	if i, ok := finiteDeltas(s.dv); !ok {
		return fmt.Errorf("node %s: %w", s.graph.Node(i).ID, ErrNonFiniteDelta)
	}
	return nil
}
