// Package sqlite implements the plant memory library on SQLite.
//
// The whole collection is stored as one JSON document under a fixed
// key. The kiosk never needs indexed queries over individual memories;
// reading and writing the library as a unit keeps the persisted format
// portable and the store trivially consistent.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/alhariq/mahkah/internal/storage"
	"github.com/alhariq/mahkah/pkg/types"
)

// libraryKey is the fixed key the plant collection lives under.
const libraryKey = "mahkah_library"

const schema = `
CREATE TABLE IF NOT EXISTS library (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// LibraryStore implements storage.LibraryStore using SQLite.
type LibraryStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ storage.LibraryStore = (*LibraryStore)(nil)

// NewLibraryStore opens a SQLite library store at the given DSN,
// configures WAL mode, and creates the schema.
func NewLibraryStore(dsn string) (*LibraryStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open
	// connection serialises writes and avoids SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &LibraryStore{db: db, now: time.Now}, nil
}

// List returns all plant memories, newest first.
func (s *LibraryStore) List(ctx context.Context) ([]types.PlantMemory, error) {
	return s.load(ctx, s.db)
}

// Get retrieves a plant memory by ID.
func (s *LibraryStore) Get(ctx context.Context, id string) (*types.PlantMemory, error) {
	memories, err := s.load(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range memories {
		if memories[i].ID == id {
			return &memories[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

// Save records a new plant memory at the seed stage. The new memory is
// prepended so the library lists newest first.
func (s *LibraryStore) Save(ctx context.Context, visitor types.VisitorInfo, imageURL string, result *types.StoryResult, nickname string) (*types.PlantMemory, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: story result is required", storage.ErrInvalidInput)
	}
	if err := visitor.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidInput, err)
	}

	now := s.now().UTC()
	memory := types.DraftMemory(visitor, imageURL, *result, nickname)
	memory.ID = newMemoryID(now)
	memory.Status = types.StatusSeed
	memory.CreatedAt = now
	memory.UpdatedAt = now

	err := s.withLibrary(ctx, func(memories []types.PlantMemory) ([]types.PlantMemory, error) {
		return append([]types.PlantMemory{memory}, memories...), nil
	})
	if err != nil {
		return nil, err
	}
	return &memory, nil
}

// AdvanceStatus sets the growth stage of an existing memory. Only the
// status and the update timestamp change.
func (s *LibraryStore) AdvanceStatus(ctx context.Context, id string, status types.PlantStatus) (*types.PlantMemory, error) {
	if !types.IsValidPlantStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", storage.ErrInvalidInput, status)
	}

	var updated *types.PlantMemory
	err := s.withLibrary(ctx, func(memories []types.PlantMemory) ([]types.PlantMemory, error) {
		for i := range memories {
			if memories[i].ID == id {
				memories[i].Status = status
				memories[i].UpdatedAt = s.now().UTC()
				m := memories[i]
				updated = &m
				return memories, nil
			}
		}
		return nil, storage.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Close closes the database connection.
func (s *LibraryStore) Close() error {
	return s.db.Close()
}

// querier covers both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// load reads and decodes the library document. A missing row is an
// empty library, not an error.
func (s *LibraryStore) load(ctx context.Context, q querier) ([]types.PlantMemory, error) {
	var value string
	err := q.QueryRowContext(ctx, "SELECT value FROM library WHERE key = ?", libraryKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []types.PlantMemory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	var memories []types.PlantMemory
	if err := json.Unmarshal([]byte(value), &memories); err != nil {
		return nil, fmt.Errorf("failed to decode library: %w", err)
	}
	return memories, nil
}

// withLibrary runs a read-modify-write cycle on the library document
// inside a transaction.
func (s *LibraryStore) withLibrary(ctx context.Context, mutate func([]types.PlantMemory) ([]types.PlantMemory, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	memories, err := s.load(ctx, tx)
	if err != nil {
		return err
	}

	memories, err = mutate(memories)
	if err != nil {
		return err
	}

	value, err := json.Marshal(memories)
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO library (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		libraryKey, string(value), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write library: %w", err)
	}

	return tx.Commit()
}

// newMemoryID builds a library-unique ID from the save time and a short
// random suffix.
func newMemoryID(now time.Time) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("plant:%d:%s", now.UnixMilli(), suffix)
}
