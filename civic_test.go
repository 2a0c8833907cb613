package civic

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStorage(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "civic.db")

	s, err := NewSQLiteStorage(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	id, err := s.ReportIssue(ctx, "Broken bench", CategoryCommunity, "")
	require.NoError(t, err)

	votes, err := s.VoteIssue(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, votes)

	_, err = s.ReportIssue(ctx, "Graffiti", Category("art"), "")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = s.GetIssue(ctx, "issue-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	snap, err := Export(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Statistics.TotalIssues)
	require.Len(t, snap.Issues, 1)
	assert.Equal(t, StatusOpen, snap.Issues[0].Status)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "infrastructure", string(CategoryInfrastructure))
	assert.Equal(t, "transit", string(CategoryTransit))
	assert.Equal(t, "votes", string(SortVotes))
	assert.Equal(t, "recent", string(SortRecent))
}
