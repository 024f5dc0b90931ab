package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "marketforge.db"

// migrationFiles holds NNN_name.up.sql and .down.sql pairs. Each up
// script inserts its own row into schema_migrations.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store is a SQLite-backed store for launch kit history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.marketforge/data/marketforge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".marketforge", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL mode lets the MCP server and CLI read while the other writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	migrations, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := s.migrate(migrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LaunchKitStore returns a LaunchKitStore interface backed by this store.
func (s *Store) LaunchKitStore() driven.LaunchKitStore {
	return &launchKitStore{store: s}
}

// migrate runs all pending migrations. Each migration records its own version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_launch_kits.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Launch Kit Store ====================

// launchKitStore implements driven.LaunchKitStore.
type launchKitStore struct {
	store *Store
}

var _ driven.LaunchKitStore = (*launchKitStore)(nil)

// Save stores or replaces a record. A missing ID or timestamp is filled in.
func (s *launchKitStore) Save(ctx context.Context, record *domain.KitRecord) error {
	if record == nil {
		return fmt.Errorf("saving launch kit: %w", domain.ErrInvalidInput)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	kitJSON, err := json.Marshal(record.Kit)
	if err != nil {
		return fmt.Errorf("marshalling launch kit: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO launch_kits (id, idea, kit, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			idea = excluded.idea,
			kit = excluded.kit,
			created_at = excluded.created_at
	`, record.ID, record.Idea, string(kitJSON), record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving launch kit: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *launchKitStore) Get(ctx context.Context, id string) (*domain.KitRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, idea, kit, created_at FROM launch_kits WHERE id = ?
	`, id)

	var record domain.KitRecord
	var kitJSON string
	if err := row.Scan(&record.ID, &record.Idea, &kitJSON, &record.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning launch kit: %w", err)
	}

	if err := json.Unmarshal([]byte(kitJSON), &record.Kit); err != nil {
		return nil, fmt.Errorf("unmarshalling launch kit: %w", err)
	}
	return &record, nil
}

// List returns summaries, newest first.
func (s *launchKitStore) List(ctx context.Context, limit int) ([]domain.KitSummary, error) {
	query := `SELECT id, idea, created_at FROM launch_kits ORDER BY created_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing launch kits: %w", err)
	}
	defer rows.Close()

	summaries := []domain.KitSummary{}
	for rows.Next() {
		var summary domain.KitSummary
		if err := rows.Scan(&summary.ID, &summary.Idea, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning launch kit: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Delete removes a record by ID.
func (s *launchKitStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM launch_kits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting launch kit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting launch kit: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
