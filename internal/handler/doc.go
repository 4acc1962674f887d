// Package handler implements the HTTP control surface of the forcegraph server.
//
// LayoutHandler exposes sessions (create, step, run, start/stop, drag, pin,
// visibility focus) and stored layouts (freeze, list, thaw, delete) as a JSON
// API on top of service.LayoutService.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201,
// 204). Error responses return JSON with {error, details} structure:
// malformed input and invalid options map to 400, unknown sessions, nodes and
// layouts to 404, everything else to 500.
//
// # Middleware
//
// Chain composes Recover, CORS, Logger and Metrics around the mux.
package handler
