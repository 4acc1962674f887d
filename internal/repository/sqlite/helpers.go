package sqlite

import (
	"database/sql"

	"forcegraph/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToFloatPtr safely converts sql.NullFloat64 to *float64
func nullToFloatPtr(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		v := nf.Float64
		return &v
	}
	return nil
}

// floatPtrToNull safely converts *float64 to sql.NullFloat64
func floatPtrToNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// nullToBool converts sql.NullInt64 to bool (0 = false, non-zero = true)
func nullToBool(ni sql.NullInt64) bool {
	return ni.Valid && ni.Int64 != 0
}

// boolToInt converts a bool to the 0/1 SQLite stores
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a column to layout_positions or layout_links:
// 1. Add field to the row struct (below)
// 2. Update scanArgs() - APPEND to end to match column order
// 3. Update the columns constant - APPEND to end
// 4. Update toDomain() and the insert args
// 5. Add the column to migrate() in sqlite.go
//
// CRITICAL: Column order must match between the columns constant, scanArgs()
// and the insert args.

// ============================================================================
// Position Row Scanner
// ============================================================================

// positionColumns is the column list for position queries
const positionColumns = `layout_id, seq, node_id, x, y, fx, fy, pinned`

// positionRow holds all columns from a position query for scanning
type positionRow struct {
	LayoutID string
	Seq      int
	NodeID   string
	X        float64
	Y        float64
	FX       sql.NullFloat64
	FY       sql.NullFloat64
	Pinned   sql.NullInt64
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match positionColumns order exactly
func (r *positionRow) scanArgs() []interface{} {
	return []interface{}{
		&r.LayoutID, // 1
		&r.Seq,      // 2
		&r.NodeID,   // 3
		&r.X,        // 4
		&r.Y,        // 5
		&r.FX,       // 6
		&r.FY,       // 7
		&r.Pinned,   // 8
	}
}

// toDomain converts the scanned row to a domain.NodePosition
func (r *positionRow) toDomain() domain.NodePosition {
	return domain.NodePosition{
		NodeID: r.NodeID,
		X:      r.X,
		Y:      r.Y,
		FX:     nullToFloatPtr(r.FX),
		FY:     nullToFloatPtr(r.FY),
		Pinned: nullToBool(r.Pinned),
	}
}

// positionInsertArgs returns the values for inserting a position, in positionColumns order
func positionInsertArgs(layoutID string, seq int, p domain.NodePosition) []interface{} {
	return []interface{}{
		layoutID,
		seq,
		p.NodeID,
		p.X,
		p.Y,
		floatPtrToNull(p.FX),
		floatPtrToNull(p.FY),
		boolToInt(p.Pinned),
	}
}

// ============================================================================
// Link Row Scanner
// ============================================================================

// linkColumns is the column list for link queries
const linkColumns = `layout_id, seq, source_id, target_id, weight`

// linkRow holds all columns from a link query for scanning
type linkRow struct {
	LayoutID string
	Seq      int
	SourceID string
	TargetID string
	Weight   sql.NullFloat64
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match linkColumns order exactly
func (r *linkRow) scanArgs() []interface{} {
	return []interface{}{
		&r.LayoutID, // 1
		&r.Seq,      // 2
		&r.SourceID, // 3
		&r.TargetID, // 4
		&r.Weight,   // 5
	}
}

// toDomain converts the scanned row to a domain.LinkSpec
func (r *linkRow) toDomain() domain.LinkSpec {
	return domain.LinkSpec{
		SourceID: r.SourceID,
		TargetID: r.TargetID,
		Weight:   nullToFloatPtr(r.Weight),
	}
}

// linkInsertArgs returns the values for inserting a link, in linkColumns order
func linkInsertArgs(layoutID string, seq int, l domain.LinkSpec) []interface{} {
	return []interface{}{
		layoutID,
		seq,
		l.SourceID,
		l.TargetID,
		floatPtrToNull(l.Weight),
	}
}
