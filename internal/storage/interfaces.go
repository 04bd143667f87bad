// Package storage defines the persistence interface for the kiosk's
// plant memory library.
package storage

import (
	"context"
	"errors"

	"github.com/alhariq/mahkah/pkg/types"
)

// Common storage errors.
var (
	// ErrNotFound is returned when a plant memory doesn't exist.
	ErrNotFound = errors.New("plant memory not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// LibraryStore persists the visitor's plant memory collection.
//
// The library is append-only from the visitor's point of view: memories
// are saved once and then advance through growth stages. There is no
// delete operation.
type LibraryStore interface {
	// List returns all plant memories, newest first.
	List(ctx context.Context) ([]types.PlantMemory, error)

	// Get retrieves a plant memory by ID.
	// Returns ErrNotFound if no memory has that ID.
	Get(ctx context.Context, id string) (*types.PlantMemory, error)

	// Save records a freshly generated story as a new plant memory at
	// the seed stage and returns the stored record.
	Save(ctx context.Context, visitor types.VisitorInfo, imageURL string, result *types.StoryResult, nickname string) (*types.PlantMemory, error)

	// AdvanceStatus sets the growth stage of an existing memory and
	// returns the updated record. Any stage may be set in any order;
	// visitors track their real plant, not a forced progression.
	// Returns ErrNotFound if no memory has that ID.
	AdvanceStatus(ctx context.Context, id string, status types.PlantStatus) (*types.PlantMemory, error)

	// Close releases the underlying storage resources.
	Close() error
}
