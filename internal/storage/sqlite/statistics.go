package sqlite

import (
	"context"

	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/types"
)

// GetStatistics returns issue totals, the average vote count rounded to two
// decimals, and per-category counts with every category present. Both
// aggregates come from one read transaction, so the category counts always
// sum to the total.
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*types.Statistics, error) {
	var stats *types.Statistics
	err := s.RunInReadTransaction(ctx, func(r storage.Reader) error {
		var err error
		stats, err = r.GetStatistics(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *reader) GetStatistics(ctx context.Context) (*types.Statistics, error) {
	stats := types.NewStatistics()

	var avg float64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(votes), 0.0) FROM issues`,
	).Scan(&stats.TotalIssues, &avg)
	if err != nil {
		return nil, wrapDBError("count issues", err)
	}
	stats.AverageVotes = types.RoundVotes(avg)

	rows, err := r.q.QueryContext(ctx, `SELECT category, COUNT(*) FROM issues GROUP BY category`)
	if err != nil {
		return nil, wrapDBError("count issues by category", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, wrapDBError("scan category count", err)
		}
		// Rows outside the fixed set can only come from foreign writers; skip them.
		if _, known := stats.ByCategory[category]; known {
			stats.ByCategory[category] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate category counts", err)
	}

	return stats, nil
}
