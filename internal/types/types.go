// Package types defines core data structures for the civic issue tracker.
package types

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Issue represents a single reported civic concern.
type Issue struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Title     string    `json:"title" yaml:"title" toml:"title"`
	Category  Category  `json:"category" yaml:"category" toml:"category"`
	Location  string    `json:"location" yaml:"location" toml:"location"`
	Status    Status    `json:"status" yaml:"status" toml:"status"`
	Votes     int       `json:"votes" yaml:"votes" toml:"votes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
}

// Validate checks the fields a new issue must satisfy before it is stored.
// Only the category is constrained; title and location are free text.
func (i *Issue) Validate() error {
	if !i.Category.IsValid() {
		return NewCategoryError(string(i.Category))
	}
	return nil
}

// Category is one of the fixed civic concern areas.
type Category string

// Category constants
const (
	CategoryInfrastructure Category = "infrastructure"
	CategorySafety         Category = "safety"
	CategoryEnvironment    Category = "environment"
	CategoryCommunity      Category = "community"
	CategoryTransit        Category = "transit"
)

// Categories returns the closed set of valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryInfrastructure,
		CategorySafety,
		CategoryEnvironment,
		CategoryCommunity,
		CategoryTransit,
	}
}

// CategoryNames returns the valid categories as plain strings.
func CategoryNames() []string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

// IsValid checks if the category is a member of the fixed set.
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

// Status represents the lifecycle state of an issue.
// Nothing transitions status today; every issue stays open.
type Status string

// Status constants
const (
	StatusOpen Status = "open"
)

// SortOrder selects the ordering applied by issue list queries.
type SortOrder string

// SortOrder constants
const (
	// SortVotes orders by votes descending, newest first among ties.
	SortVotes SortOrder = "votes"
	// SortRecent orders by creation time descending.
	SortRecent SortOrder = "recent"
)

// DefaultSortOrder is used when no sort is requested.
const DefaultSortOrder = SortVotes

// SortOrders returns the recognized sort orders.
func SortOrders() []SortOrder {
	return []SortOrder{SortVotes, SortRecent}
}

// IsValid checks if the sort order is recognized.
func (s SortOrder) IsValid() bool {
	return s == SortVotes || s == SortRecent
}

// IssueFilter is used to filter and order issue queries.
type IssueFilter struct {
	// Category restricts results to an exact category match when non-nil.
	// Values outside the fixed set are allowed and simply match nothing.
	Category *Category
	// Sort selects the ordering; empty means DefaultSortOrder.
	Sort SortOrder
}

// SortOrDefault returns the filter's sort order, falling back to DefaultSortOrder.
func (f IssueFilter) SortOrDefault() SortOrder {
	if f.Sort == "" {
		return DefaultSortOrder
	}
	return f.Sort
}

// Statistics holds an aggregate snapshot of the issue table.
type Statistics struct {
	TotalIssues  int            `json:"total_issues" yaml:"total_issues" toml:"total_issues"`
	AverageVotes float64        `json:"average_votes" yaml:"average_votes" toml:"average_votes"`
	ByCategory   map[string]int `json:"by_category" yaml:"by_category" toml:"by_category"`
}

// NewStatistics returns an empty snapshot with every category zero-filled.
func NewStatistics() *Statistics {
	byCategory := make(map[string]int, len(Categories()))
	for _, c := range Categories() {
		byCategory[string(c)] = 0
	}
	return &Statistics{ByCategory: byCategory}
}

// RoundVotes rounds an average vote count to two decimal places.
func RoundVotes(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// ErrInvalidCategory is wrapped by validation errors for unknown categories.
var ErrInvalidCategory = errors.New("invalid category")

// ErrInvalidSort is returned for sort orders outside SortOrders() when the
// store is strict about ordering.
var ErrInvalidSort = errors.New("invalid sort order")

// ValidationError reports a caller-correctable input problem.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q (must be one of: %s)", e.Err, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewCategoryError builds the validation error for an unknown category.
func NewCategoryError(value string) *ValidationError {
	return &ValidationError{
		Field:   "category",
		Value:   value,
		Allowed: CategoryNames(),
		Err:     ErrInvalidCategory,
	}
}

// NewSortError builds the validation error for an unknown sort order.
func NewSortError(value string) *ValidationError {
	allowed := make([]string, 0, 2)
	for _, s := range SortOrders() {
		allowed = append(allowed, string(s))
	}
	return &ValidationError{
		Field:   "sort",
		Value:   value,
		Allowed: allowed,
		Err:     ErrInvalidSort,
	}
}
