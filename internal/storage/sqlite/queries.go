package sqlite

import (
	"context"
	"strings"

	"github.com/steveyegge/civic/internal/types"
)

// orderClauses maps each recognized sort order to its ORDER BY clause.
var orderClauses = map[types.SortOrder]string{
	types.SortVotes:  "ORDER BY votes DESC, created_at DESC",
	types.SortRecent: "ORDER BY created_at DESC",
}

// buildIssueQuery renders the SELECT for filter. An unrecognized sort order
// yields no ORDER BY clause; callers decide whether that is allowed.
func buildIssueQuery(filter types.IssueFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString("SELECT " + issueColumns + " FROM issues")

	if filter.Category != nil {
		sb.WriteString(" WHERE category = ?")
		args = append(args, string(*filter.Category))
	}

	if clause, ok := orderClauses[filter.SortOrDefault()]; ok {
		sb.WriteString(" " + clause)
	}
	return sb.String(), args
}

// GetIssues returns every issue matching filter, fully materialized.
// The result is never nil; no matches yields an empty slice.
func (s *SQLiteStorage) GetIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error) {
	return s.reader(s.db).GetIssues(ctx, filter)
}

func (r *reader) GetIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error) {
	sort := filter.SortOrDefault()
	if !sort.IsValid() {
		if r.strictSort {
			return nil, types.NewSortError(string(sort))
		}
		r.log.DebugContext(ctx, "unrecognized sort, returning storage order", "op", "GetIssues", "sort", string(sort))
	}

	query, args := buildIssueQuery(filter)
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("query issues", err)
	}
	defer func() { _ = rows.Close() }()

	issues := make([]*types.Issue, 0)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, wrapDBError("scan issue", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate issues", err)
	}

	r.log.DebugContext(ctx, "listed issues", "op", "GetIssues", "sort", string(sort), "count", len(issues))
	return issues, nil
}
