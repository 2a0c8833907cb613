// Package civic provides a minimal public API for embedding the civic issue
// store in other Go programs.
//
// The civic CLI is the primary consumer; this package exports only the types
// and constructor needed to report, vote on and query issues programmatically.
package civic

import (
	"context"

	"github.com/steveyegge/civic/internal/export"
	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/storage/sqlite"
	"github.com/steveyegge/civic/internal/types"
)

// Core types for working with issues
type (
	Issue       = types.Issue
	Category    = types.Category
	Status      = types.Status
	SortOrder   = types.SortOrder
	IssueFilter = types.IssueFilter
	Statistics  = types.Statistics
	Snapshot    = export.Snapshot
)

// Category constants
const (
	CategoryInfrastructure = types.CategoryInfrastructure
	CategorySafety         = types.CategorySafety
	CategoryEnvironment    = types.CategoryEnvironment
	CategoryCommunity      = types.CategoryCommunity
	CategoryTransit        = types.CategoryTransit
)

// Status and sort constants
const (
	StatusOpen = types.StatusOpen
	SortVotes  = types.SortVotes
	SortRecent = types.SortRecent
)

// Errors callers can match with errors.Is
var (
	ErrNotFound        = storage.ErrNotFound
	ErrInvalidCategory = types.ErrInvalidCategory
	ErrInvalidSort     = types.ErrInvalidSort
)

// Storage is the issue store interface
type Storage = storage.Storage

// NewSQLiteStorage opens (creating if needed) a civic SQLite database.
func NewSQLiteStorage(ctx context.Context, dbPath string) (Storage, error) {
	return sqlite.New(ctx, dbPath)
}

// Export builds a snapshot of s: its statistics plus every issue, newest first.
func Export(ctx context.Context, s Storage) (*Snapshot, error) {
	return export.Build(ctx, s)
}
