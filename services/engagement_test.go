package services

import (
	"context"
	"errors"
	"testing"

	"citypulse-be/models"
	"citypulse-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIssue(t *testing.T, mem *store.Memory, id string) {
	t.Helper()
	issue := sampleIssue()
	issue.ID = id
	issue.LikesCount = 0
	require.NoError(t, mem.InsertIssue(context.Background(), &issue))
}

func TestLikeIssue(t *testing.T) {
	mem := store.NewMemory()
	seedIssue(t, mem, "issue-1")

	liked, err := LikeIssue(context.Background(), mem, "user-1", "issue-1")
	require.NoError(t, err)
	assert.True(t, liked)

	issue, err := mem.GetIssue(context.Background(), "issue-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), issue.LikesCount)
	assert.Equal(t, int64(1), mem.LikeCount("issue-1"))
}

func TestLikeIssueIdempotent(t *testing.T) {
	mem := store.NewMemory()
	seedIssue(t, mem, "issue-1")

	liked, err := LikeIssue(context.Background(), mem, "user-1", "issue-1")
	require.NoError(t, err)
	assert.True(t, liked)

	// Duplicate click: no error, no second count.
	liked, err = LikeIssue(context.Background(), mem, "user-1", "issue-1")
	require.NoError(t, err)
	assert.False(t, liked)

	issue, err := mem.GetIssue(context.Background(), "issue-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), issue.LikesCount)
	assert.Equal(t, int64(1), mem.LikeCount("issue-1"))
}

func TestLikeIssueDistinctUsers(t *testing.T) {
	mem := store.NewMemory()
	seedIssue(t, mem, "issue-1")

	for _, user := range []string{"user-1", "user-2", "user-3"} {
		liked, err := LikeIssue(context.Background(), mem, user, "issue-1")
		require.NoError(t, err)
		assert.True(t, liked)
	}

	issue, err := mem.GetIssue(context.Background(), "issue-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), issue.LikesCount)
}

func TestLikeIssueRequiresIdentity(t *testing.T) {
	mem := store.NewMemory()
	seedIssue(t, mem, "issue-1")

	liked, err := LikeIssue(context.Background(), mem, "", "issue-1")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.False(t, liked)
	assert.Equal(t, int64(0), mem.LikeCount("issue-1"))
}

func TestLikeIssuePersistenceFailure(t *testing.T) {
	mem := store.NewMemory()
	seedIssue(t, mem, "issue-1")
	mem.FailWith = models.ErrPersistence

	liked, err := LikeIssue(context.Background(), mem, "user-1", "issue-1")
	assert.False(t, liked)
	assert.True(t, errors.Is(err, models.ErrPersistence))
}

func TestLikeIssueUnknownIssue(t *testing.T) {
	mem := store.NewMemory()
	seedIssue(t, mem, "issue-1")

	liked, err := LikeIssue(context.Background(), mem, "user-1", "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, liked)

	// No relation row may survive a like against an id that was never
	// created, or a later import of that id would inherit phantom likes.
	assert.Equal(t, int64(0), mem.LikeCount("missing"))
}
