// Package force implements the pluggable force laws of the layout engine and
// the ordered registry that sums them each tick.
//
// A Force reads the current positions and velocities of a domain.Graph and adds
// unscaled velocity deltas into a per-node buffer. It never writes node state;
// the integrator owns that, and scales the summed deltas by alpha.
//
// # Force Laws
//
// LinkForce pulls or pushes each link's endpoints toward a target separation,
// either a constant or a linear mapping from the links' weight domain onto a
// distance range.
//
// ManyBodyForce makes every node pair repel (or attract, for positive
// strength). Evaluation is exact all-pairs unless Theta > 0, in which case a
// Barnes-Hut quadtree approximates far-field cells.
//
// CenterForce nudges every node by the gap between the centroid and a target
// point.
//
// Func adapts a plain function into a Force.
package force
