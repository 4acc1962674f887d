package force

import (
	"fmt"

	"forcegraph/internal/domain"
)

// Registry holds named forces and iterates them in insertion order
type Registry struct {
	order  []string
	forces map[string]Force
}

// NewRegistry creates an empty force registry
func NewRegistry() *Registry {
	return &Registry{
		forces: make(map[string]Force),
	}
}

// Register adds a force under a new name
func (r *Registry) Register(name string, f Force) error {
	if name == "" {
		return fmt.Errorf("force name is required")
	}
	if f == nil {
		return fmt.Errorf("force %s is nil", name)
	}
	if _, exists := r.forces[name]; exists {
		return fmt.Errorf("force %s already registered", name)
	}

	r.order = append(r.order, name)
	r.forces[name] = f
	return nil
}

// Set installs f under name. An existing force keeps its position in the
// iteration order; a nil force removes the entry.
func (r *Registry) Set(name string, f Force) {
	if f == nil {
		r.Remove(name)
		return
	}
	if _, exists := r.forces[name]; !exists {
		r.order = append(r.order, name)
	}
	r.forces[name] = f
}

// Remove deletes the named force, reporting whether it was present
func (r *Registry) Remove(name string) bool {
	if _, exists := r.forces[name]; !exists {
		return false
	}
	delete(r.forces, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the named force
func (r *Registry) Get(name string) (Force, bool) {
	f, ok := r.forces[name]
	return f, ok
}

// Names returns force names in iteration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered forces
func (r *Registry) Len() int {
	return len(r.order)
}

// Initialize binds every force that needs topology to g, in order
func (r *Registry) Initialize(g *domain.Graph) error {
	for _, name := range r.order {
		if init, ok := r.forces[name].(Initializer); ok {
			if err := init.Initialize(g); err != nil {
				return fmt.Errorf("initialize force %s: %w", name, err)
			}
		}
	}
	return nil
}

// Accumulate zeroes dv and sums every force's deltas into it, in order
func (r *Registry) Accumulate(g *domain.Graph, dv []domain.Vector) {
	for i := range dv {
		dv[i] = domain.Vector{}
	}
	for _, name := range r.order {
		r.forces[name].Apply(g, dv)
	}
}
