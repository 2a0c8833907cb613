// Package storage provides shared types for issue storage.
//
// The concrete storage implementation lives in the sqlite sub-package.
// This package holds the interface and sentinel errors referenced by both
// the implementation and its consumers (cmd/civic, export, telemetry).
package storage

import (
	"context"
	"errors"

	"github.com/steveyegge/civic/internal/types"
)

// ErrNotFound is returned when a requested entity does not exist in the database.
var ErrNotFound = errors.New("not found")

// Storage is the interface satisfied by *sqlite.SQLiteStorage.
// Consumers depend on this interface rather than on the concrete type so that
// alternative implementations (telemetry decorators, mocks) can be substituted.
type Storage interface {
	// ReportIssue validates and persists a new open issue and returns its ID.
	ReportIssue(ctx context.Context, title string, category types.Category, location string) (string, error)
	// VoteIssue adds one vote and returns the new count. Unknown IDs return 0 and no error.
	VoteIssue(ctx context.Context, id string) (int, error)
	GetIssue(ctx context.Context, id string) (*types.Issue, error)
	GetIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error)

	// Statistics
	GetStatistics(ctx context.Context) (*types.Statistics, error)

	// RunInReadTransaction calls fn with a Reader bound to one read-only
	// transaction, so every read inside fn sees the same snapshot. An error
	// from fn is returned unchanged.
	RunInReadTransaction(ctx context.Context, fn func(r Reader) error) error

	// Lifecycle
	Path() string
	Close() error
}

// Reader is the read-only subset of Storage available inside
// RunInReadTransaction.
type Reader interface {
	GetIssue(ctx context.Context, id string) (*types.Issue, error)
	GetIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error)
	GetStatistics(ctx context.Context) (*types.Statistics, error)
}
