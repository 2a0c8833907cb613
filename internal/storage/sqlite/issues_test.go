package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/types"
)

func TestReportIssue(t *testing.T) {
	store := newTestStore(t, "", WithClock(stepClock(testEpoch, time.Second)))
	ctx := context.Background()

	seen := make(map[string]bool)
	for _, category := range types.Categories() {
		t.Run(string(category), func(t *testing.T) {
			id, err := store.ReportIssue(ctx, "Issue in "+string(category), category, "40.71,-74.00")
			require.NoError(t, err)
			require.NotEmpty(t, id)
			assert.False(t, seen[id], "ID %s returned twice", id)
			seen[id] = true

			got, err := store.GetIssue(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, "Issue in "+string(category), got.Title)
			assert.Equal(t, category, got.Category)
			assert.Equal(t, "40.71,-74.00", got.Location)
			assert.Equal(t, types.StatusOpen, got.Status)
			assert.Equal(t, 0, got.Votes)
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}

func TestReportIssueInvalidCategory(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	for _, category := range []types.Category{"", "roads", "Safety", "transit "} {
		t.Run(fmt.Sprintf("%q", category), func(t *testing.T) {
			id, err := store.ReportIssue(ctx, "Bad", category, "0,0")
			require.Error(t, err)
			assert.Empty(t, id)
			assert.ErrorIs(t, err, types.ErrInvalidCategory)

			var verr *types.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.ElementsMatch(t, types.CategoryNames(), verr.Allowed)
		})
	}

	stats, err := store.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalIssues, "rejected reports must not persist anything")
}

func TestReportIssueStoresCreationTime(t *testing.T) {
	created := time.Date(2024, 7, 4, 18, 30, 0, 123456789, time.FixedZone("EST", -5*3600))
	store := newTestStore(t, "", WithClock(func() time.Time { return created }))
	ctx := context.Background()

	id, err := store.ReportIssue(ctx, "Flooded underpass", types.CategoryEnvironment, "1,2")
	require.NoError(t, err)

	got, err := store.GetIssue(ctx, id)
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt), "created_at = %v, want %v", got.CreatedAt, created)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
}

func TestReportIssueDuplicateID(t *testing.T) {
	store := newTestStore(t, "", WithIDGenerator(func() string { return "issue-fixed" }))
	ctx := context.Background()

	_, err := store.ReportIssue(ctx, "First", types.CategoryTransit, "0,0")
	require.NoError(t, err)

	_, err = store.ReportIssue(ctx, "Second", types.CategoryTransit, "0,0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVoteIssue(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	id, err := store.ReportIssue(ctx, "Missing bus shelter", types.CategoryTransit, "51.50,-0.12")
	require.NoError(t, err)

	for want := 1; want <= 5; want++ {
		got, err := store.VoteIssue(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		issue, err := store.GetIssue(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, got, issue.Votes, "returned count must match stored count")
	}
}

func TestVoteIssueMissingID(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	votes, err := store.VoteIssue(ctx, "issue-does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, 0, votes)

	_, err = store.GetIssue(ctx, "issue-does-not-exist")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	issues, err := store.GetIssues(ctx, types.IssueFilter{})
	require.NoError(t, err)
	assert.Empty(t, issues, "voting must never create a record")
}

func TestVoteIssueConcurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrent test in short mode")
	}

	store := newTestStore(t, "")
	ctx := context.Background()

	id, err := store.ReportIssue(ctx, "Unsafe crossing", types.CategorySafety, "48.85,2.35")
	require.NoError(t, err)

	const (
		workers        = 8
		votesPerWorker = 25
	)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < votesPerWorker; i++ {
				if _, err := store.VoteIssue(gctx, id); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	issue, err := store.GetIssue(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, workers*votesPerWorker, issue.Votes, "lost updates under concurrent voting")
}

func TestVoteIssueAcrossStores(t *testing.T) {
	// Two stores on one file model two CLI processes voting at once.
	dbPath := t.TempDir() + "/shared.db"
	a := newTestStore(t, dbPath)
	b := newTestStore(t, dbPath)
	ctx := context.Background()

	id, err := a.ReportIssue(ctx, "Shared", types.CategoryCommunity, "0,0")
	require.NoError(t, err)

	var g errgroup.Group
	for _, s := range []*SQLiteStorage{a, b} {
		g.Go(func() error {
			for i := 0; i < 20; i++ {
				if _, err := s.VoteIssue(ctx, id); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	got, err := b.GetIssue(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Votes)
}
