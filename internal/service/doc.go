// Package service hosts live layout simulations for the forcegraph server.
//
// LayoutService owns a set of independent sessions. Each session wraps one
// simulation.Simulation behind its own mutex, so control operations on one
// session never block another. Sessions are identified by uuid.
//
// # Host Loop
//
// Runner drives continuous mode: on every frame interval it advances each
// running session by one tick and publishes the new frame. Batch mode is
// served by Run, which executes ticks synchronously under the configured
// wall-clock cap.
//
// # Layouts
//
// Freeze writes a session's node positions and links to the layout
// repository. Thaw rebuilds a new, already settled session from a stored
// layout with every node pinned where it was frozen.
//
// # Event System
//
// The service publishes events via EventBus: frames, settle notifications,
// session and layout lifecycle. The SSE hub forwards them to renderers.
package service
