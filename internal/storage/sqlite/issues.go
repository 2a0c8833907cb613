package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/steveyegge/civic/internal/types"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanIssue reads one row selected with issueColumns.
func scanIssue(row rowScanner) (*types.Issue, error) {
	var (
		issue     types.Issue
		status    sql.NullString
		votes     sql.NullInt64
		createdAt string
	)
	if err := row.Scan(&issue.ID, &issue.Title, &issue.Category, &issue.Location, &status, &votes, &createdAt); err != nil {
		return nil, err
	}
	issue.Status = types.StatusOpen
	if status.Valid {
		issue.Status = types.Status(status.String)
	}
	issue.Votes = int(votes.Int64)
	issue.CreatedAt = parseTimeString(createdAt)
	return &issue, nil
}

// ReportIssue validates the category and inserts a new open issue with zero votes.
func (s *SQLiteStorage) ReportIssue(ctx context.Context, title string, category types.Category, location string) (string, error) {
	issue := &types.Issue{
		ID:        s.newID(),
		Title:     title,
		Category:  category,
		Location:  location,
		Status:    types.StatusOpen,
		Votes:     0,
		CreatedAt: s.now().UTC(),
	}
	if err := issue.Validate(); err != nil {
		s.log.DebugContext(ctx, "rejected issue", "op", "ReportIssue", "category", string(category))
		return "", err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO issues (id, title, category, location, status, votes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, issue.ID, issue.Title, string(issue.Category), issue.Location,
		string(issue.Status), issue.Votes, formatTimestamp(issue.CreatedAt))
	if err != nil {
		return "", wrapDBError("insert issue", err)
	}

	s.log.DebugContext(ctx, "reported issue", "op", "ReportIssue", "issue_id", issue.ID, "category", string(category))
	return issue.ID, nil
}

// VoteIssue adds one vote to the issue and returns the new total.
//
// The increment and the read of the new value are a single statement, so
// concurrent voters never lose updates and the result is never stale.
// A missing ID updates nothing and returns 0 without error.
func (s *SQLiteStorage) VoteIssue(ctx context.Context, id string) (int, error) {
	var votes int
	err := s.db.QueryRowContext(ctx,
		`UPDATE issues SET votes = votes + 1 WHERE id = ? RETURNING votes`, id,
	).Scan(&votes)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.DebugContext(ctx, "vote for unknown issue", "op", "VoteIssue", "issue_id", id)
		return 0, nil
	}
	if err != nil {
		return 0, wrapDBErrorf(err, "vote issue %s", id)
	}

	s.log.DebugContext(ctx, "voted", "op", "VoteIssue", "issue_id", id, "votes", votes)
	return votes, nil
}

// GetIssue retrieves one issue by ID. Returns ErrNotFound if it does not exist.
func (s *SQLiteStorage) GetIssue(ctx context.Context, id string) (*types.Issue, error) {
	return s.reader(s.db).GetIssue(ctx, id)
}

func (r *reader) GetIssue(ctx context.Context, id string) (*types.Issue, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = ?`, id)
	issue, err := scanIssue(row)
	if err != nil {
		return nil, wrapDBErrorf(err, "get issue %s", id)
	}
	return issue, nil
}
