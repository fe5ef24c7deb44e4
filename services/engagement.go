package services

import (
	"context"
	"errors"

	"citypulse-be/models"
	"citypulse-be/store"
)

// LikeIssue records one user's like on one issue, at most once per
// pair. Returns liked=false with a nil error when the pair already
// exists, so duplicate clicks and network retries collapse into a
// no-op instead of surfacing an error or double-counting.
//
// The relation row and the counter bump are two separate writes; the
// likes collection is the source of truth and the counter a cached
// projection, so a crash between the two leaves the counter stale, not
// wrong the other way.
func LikeIssue(ctx context.Context, s store.IssueStore, userID, issueID string) (bool, error) {
	if userID == "" {
		return false, models.ErrUnauthenticated
	}

	// The issue must exist before the relation row goes in; otherwise a
	// failed counter bump would leave an orphan like behind, and a later
	// import of that id would start with the counter already wrong.
	if _, err := s.GetIssue(ctx, issueID); err != nil {
		return false, err
	}

	err := s.InsertLike(ctx, userID, issueID)
	if errors.Is(err, models.ErrDuplicateLike) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.IncrementLikeCounter(ctx, issueID); err != nil {
		return false, err
	}
	return true, nil
}
