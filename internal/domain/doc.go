// Package domain defines the core types of the forcegraph layout engine.
//
// This package contains the graph model the physics engine operates on and the
// value objects exchanged with collaborators (importers, renderers, storage).
//
// # Core Types
//
// Graph is the read-only topology built once from a GraphFragment: a stable
// arena of nodes keyed by id, links holding node indices instead of references,
// and a per-node incidence list used by forces and the visibility filter.
//
// Node carries identity plus 2D kinematic state (position, velocity) and an
// optional fixed position (FX, FY) that overrides all physics while set.
//
// Link is an undirected, optionally weighted edge between two nodes.
//
// # Exchange Types
//
// GraphFragment is the raw input: an explicit node list and/or links naming
// node ids. Frame is the per-tick snapshot handed to renderers. NodePosition is
// the freeze/thaw record persisted between sessions.
//
// # Errors
//
// InputError rejects malformed input before any tick runs. ConfigurationError
// rejects invalid options at configuration time. ErrNodeNotFound is returned by
// control operations naming an unknown node.
//
// # Design Principles
//
// - Index-based relations, no pointer cycles between links and nodes
// - No database or external dependencies
// - Topology is fixed after construction; only kinematic state changes
package domain
