package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/steveyegge/civic/internal/storage"
)

// TestWrapDBError tests the wrapDBError function
func TestWrapDBError(t *testing.T) {
	tests := []struct {
		name      string
		op        string
		err       error
		wantNil   bool
		wantError string
		wantType  error
	}{
		{
			name:    "nil error returns nil",
			op:      "test operation",
			err:     nil,
			wantNil: true,
		},
		{
			name:      "sql.ErrNoRows converted to ErrNotFound",
			op:        "get issue",
			err:       sql.ErrNoRows,
			wantError: "get issue: not found",
			wantType:  storage.ErrNotFound,
		},
		{
			name:      "generic error wrapped with context",
			op:        "vote issue",
			err:       errors.New("database is locked"),
			wantError: "vote issue: database is locked",
		},
		{
			name:      "unique violation marked as conflict",
			op:        "insert issue",
			err:       errors.New("sqlite3: constraint failed: UNIQUE constraint failed: issues.id"),
			wantError: "insert issue: conflict: sqlite3: constraint failed: UNIQUE constraint failed: issues.id",
			wantType:  ErrConflict,
		},
		{
			name:      "already wrapped error preserved",
			op:        "query issues",
			err:       fmt.Errorf("disk I/O: %w", errors.New("no space left")),
			wantError: "query issues: disk I/O: no space left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := wrapDBError(tt.op, tt.err)

			if tt.wantNil {
				if result != nil {
					t.Errorf("wrapDBError() = %v, want nil", result)
				}
				return
			}

			if result == nil {
				t.Fatal("wrapDBError() returned nil, want error")
			}

			if tt.wantError != "" && result.Error() != tt.wantError {
				t.Errorf("wrapDBError() error = %q, want %q", result.Error(), tt.wantError)
			}

			if tt.wantType != nil && !errors.Is(result, tt.wantType) {
				t.Errorf("wrapDBError() error doesn't wrap %v", tt.wantType)
			}
		})
	}
}

// TestWrapDBErrorf tests the wrapDBErrorf function
func TestWrapDBErrorf(t *testing.T) {
	if got := wrapDBErrorf(nil, "vote issue %s", "issue-1"); got != nil {
		t.Errorf("wrapDBErrorf(nil) = %v, want nil", got)
	}

	got := wrapDBErrorf(sql.ErrNoRows, "get issue %s", "issue-abc")
	if got.Error() != "get issue issue-abc: not found" {
		t.Errorf("wrapDBErrorf() error = %q", got.Error())
	}
	if !errors.Is(got, ErrNotFound) {
		t.Error("wrapDBErrorf() error doesn't wrap ErrNotFound")
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("UNIQUE constraint failed: issues.id"), true},
		{errors.New("PRIMARY KEY constraint failed"), true},
		{errors.New("NOT NULL constraint failed: issues.title"), false},
	}
	for _, tt := range tests {
		if got := IsUniqueConstraintError(tt.err); got != tt.want {
			t.Errorf("IsUniqueConstraintError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
