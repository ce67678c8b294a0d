// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network and no separate server process, which makes it the easy
// choice for running the menu API on a laptop without MongoDB.
//
// Ids are random UUIDs generated by the application, not SQLite rowids,
// so they look the same as the in-memory backend's and cannot be guessed
// by counting.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Shadowrithik/Modify-data2/internal/config"
	"github.com/Shadowrithik/Modify-data2/internal/storage"
	"github.com/Shadowrithik/Modify-data2/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.Path, creates the
// menu_items table if it does not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	path := cfg.Storage.Path

	inMemory := path == ":memory:"

	// The parent directory must exist before the driver can create the
	// file. ":memory:" and "file:" DSNs are passed through untouched.
	if !inMemory && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Every connection to ":memory:" gets its own empty database.
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	// Schema:
	//   seq         — insertion counter; gives the natural list order
	//   id          — UUID primary key handed out to clients
	//   name        — never empty (enforced by the schema before insert)
	//   description — NULL when the client did not send one
	//   price       — REAL, zero allowed
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS menu_items (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT    NOT NULL UNIQUE,
			name        TEXT    NOT NULL,
			description TEXT,
			price       REAL    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateMenuItem validates the draft and inserts a new row.
// Placeholders (?) keep client-supplied values out of the SQL text.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateMenuItem(ctx context.Context, draft types.Draft) (types.MenuItem, error) {
	if err := draft.Validate(); err != nil {
		return types.MenuItem{}, fmt.Errorf("CreateMenuItem: %w", err)
	}

	item := draft.Item(uuid.NewString())

	_, err := s.Db.ExecContext(ctx,
		"INSERT INTO menu_items (id, name, description, price) VALUES (?, ?, ?, ?)",
		item.ID, item.Name, nullString(item.Description), item.Price,
	)
	if err != nil {
		return types.MenuItem{}, fmt.Errorf("CreateMenuItem: exec: %w", err)
	}

	return item, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetMenuItems returns all rows in insertion order.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetMenuItems(ctx context.Context) ([]types.MenuItem, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, description, price FROM menu_items ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("GetMenuItems: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Returning [] instead of null in JSON is better API behaviour.
	items := make([]types.MenuItem, 0)

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("GetMenuItems: scan row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetMenuItems: rows iteration: %w", err)
	}

	return items, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateMenuItemByID merges fields over the stored row inside a
// transaction, so the read and the write see the same record.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateMenuItemByID(ctx context.Context, id string, fields map[string]any) (types.MenuItem, error) {
	if err := checkID(id); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}

	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: begin: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	row := tx.QueryRowContext(ctx,
		"SELECT id, name, description, price FROM menu_items WHERE id = ? LIMIT 1", id,
	)
	current, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", storage.ErrNotFound)
		}
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: scan: %w", err)
	}

	draft := types.DraftOf(current)
	if err := draft.Apply(fields); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}
	if err := draft.Validate(); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}

	updated := draft.Item(id)

	_, err = tx.ExecContext(ctx,
		"UPDATE menu_items SET name = ?, description = ?, price = ? WHERE id = ?",
		updated.Name, nullString(updated.Description), updated.Price, id,
	)
	if err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: commit: %w", err)
	}

	return updated, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteMenuItemByID removes a row by id. RowsAffected tells us whether
// the id existed.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteMenuItemByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return fmt.Errorf("DeleteMenuItemByID: %w", err)
	}

	result, err := s.Db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteMenuItemByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteMenuItemByID: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("DeleteMenuItemByID: %w", storage.ErrNotFound)
	}

	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close(context.Context) error {
	return s.Db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row scanner) (types.MenuItem, error) {
	var (
		item types.MenuItem
		desc sql.NullString
	)

	if err := row.Scan(&item.ID, &item.Name, &desc, &item.Price); err != nil {
		return types.MenuItem{}, err
	}
	if desc.Valid {
		item.Description = &desc.String
	}

	return item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w %q: %v", storage.ErrInvalidID, id, err)
	}
	return nil
}
