package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"forcegraph/internal/domain"
	"forcegraph/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.LayoutRepository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.LayoutRepository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layouts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tick INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS layout_positions (
		layout_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		node_id TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		fx REAL,
		fy REAL,
		pinned INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (layout_id, seq),
		UNIQUE (layout_id, node_id),
		FOREIGN KEY (layout_id) REFERENCES layouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS layout_links (
		layout_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		source_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		weight REAL,
		PRIMARY KEY (layout_id, seq),
		FOREIGN KEY (layout_id) REFERENCES layouts(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_layouts_created ON layouts(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveLayout inserts or replaces a layout with its positions and links
func (r *Repository) SaveLayout(ctx context.Context, layout *domain.Layout) error {
	if layout == nil || layout.ID == "" {
		return fmt.Errorf("layout id is required")
	}
	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO layouts (id, name, tick, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			tick = excluded.tick,
			created_at = excluded.created_at
	`, layout.ID, layout.Name, layout.Tick, layout.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert layout: %w", err)
	}

	// Replace children wholesale
	if _, err := tx.ExecContext(ctx, `DELETE FROM layout_positions WHERE layout_id = ?`, layout.ID); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM layout_links WHERE layout_id = ?`, layout.ID); err != nil {
		return fmt.Errorf("failed to clear links: %w", err)
	}

	posStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO layout_positions (`+positionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare position insert: %w", err)
	}
	defer posStmt.Close()

	for i, p := range layout.Positions {
		if _, err := posStmt.ExecContext(ctx, positionInsertArgs(layout.ID, i, p)...); err != nil {
			return fmt.Errorf("failed to insert position %s: %w", p.NodeID, err)
		}
	}

	linkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO layout_links (`+linkColumns+`)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare link insert: %w", err)
	}
	defer linkStmt.Close()

	for i, l := range layout.Links {
		if _, err := linkStmt.ExecContext(ctx, linkInsertArgs(layout.ID, i, l)...); err != nil {
			return fmt.Errorf("failed to insert link %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit layout: %w", err)
	}
	return nil
}

// GetLayout retrieves a layout by ID. Returns nil, nil when it does not exist.
func (r *Repository) GetLayout(ctx context.Context, id string) (*domain.Layout, error) {
	layout := &domain.Layout{ID: id}
	err := r.db.QueryRowContext(ctx, `
		SELECT name, tick, created_at FROM layouts WHERE id = ?
	`, id).Scan(&layout.Name, &layout.Tick, &layout.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query layout: %w", err)
	}

	positions, err := r.db.QueryContext(ctx, `
		SELECT `+positionColumns+` FROM layout_positions WHERE layout_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer positions.Close()

	layout.Positions = make([]domain.NodePosition, 0)
	for positions.Next() {
		var row positionRow
		if err := positions.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		layout.Positions = append(layout.Positions, row.toDomain())
	}
	if err := positions.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	links, err := r.db.QueryContext(ctx, `
		SELECT `+linkColumns+` FROM layout_links WHERE layout_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer links.Close()

	layout.Links = make([]domain.LinkSpec, 0)
	for links.Next() {
		var row linkRow
		if err := links.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		layout.Links = append(layout.Links, row.toDomain())
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return layout, nil
}

// ListLayouts returns summaries of all layouts, newest first
func (r *Repository) ListLayouts(ctx context.Context) ([]domain.LayoutSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.tick, l.created_at,
			(SELECT COUNT(*) FROM layout_positions p WHERE p.layout_id = l.id),
			(SELECT COUNT(*) FROM layout_links k WHERE k.layout_id = l.id)
		FROM layouts l
		ORDER BY l.created_at DESC, l.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.LayoutSummary, 0)
	for rows.Next() {
		var s domain.LayoutSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Tick, &s.CreatedAt, &s.NodeCount, &s.LinkCount); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layouts: %w", err)
	}

	return summaries, nil
}

// DeleteLayout removes a layout and, by cascade, its positions and links
func (r *Repository) DeleteLayout(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return repository.ErrLayoutNotFound
	}
	return nil
}
