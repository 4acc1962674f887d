// Package repository defines the data access interfaces for forcegraph.
//
// Only frozen layouts are persisted: the freeze record of every node and the
// links needed to rebuild the topology. Live simulations never touch storage.
//
// # SQLite Implementation
//
// The sqlite subpackage stores layouts in three tables (layouts,
// layout_positions, layout_links) with cascade deletes. Saves are
// transactional and replace any previous layout with the same id. Node and
// link order is preserved so a thawed layout rebuilds the same arena.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
