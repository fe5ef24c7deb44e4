package store

import (
	"context"

	"citypulse-be/models"
)

// Filter narrows a ListIssues / CountIssues call. Zero values mean
// "no restriction"; Limit 0 means no pagination.
type Filter struct {
	Category    models.IssueCategory
	Status      models.IssueStatus
	Search      string
	AuthorID    string
	HasLocation bool
	Sort        string // "newest" (default), "oldest", "likes", "comments"
	Skip        int64
	Limit       int64
}

// Patch is a partial issue update. Nil fields are left untouched.
// Status values must be validated by the caller before they get here;
// the store applies patches blindly.
type Patch struct {
	Title       *string
	Description *string
	Category    *models.IssueCategory
	Status      *models.IssueStatus
	Address     *string
	ImageURL    *string
	Latitude    *float64
	Longitude   *float64
}

// IssueStore is the persistence boundary for the issue collection and
// the like-relation collection. Batch mutations are all-or-nothing at
// the request level: on error the target set is reported unchanged and
// the caller retries wholesale.
//
// InsertLike returns models.ErrDuplicateLike when the (user, issue)
// pair already exists; every other backend failure from any method
// wraps models.ErrPersistence.
type IssueStore interface {
	ListIssues(ctx context.Context, f Filter) ([]models.Issue, error)
	CountIssues(ctx context.Context, f Filter) (int64, error)
	GetIssue(ctx context.Context, id string) (*models.Issue, error)
	InsertIssue(ctx context.Context, issue *models.Issue) error
	UpdateIssue(ctx context.Context, id string, p Patch) error
	UpdateStatusBatch(ctx context.Context, ids []string, status models.IssueStatus) error
	DeleteBatch(ctx context.Context, ids []string) error
	UpsertIssues(ctx context.Context, issues []models.Issue) error
	InsertLike(ctx context.Context, userID, issueID string) error
	HasLike(ctx context.Context, userID, issueID string) (bool, error)
	IncrementLikeCounter(ctx context.Context, issueID string) error
	ListComments(ctx context.Context, issueID string) ([]models.Comment, error)
	InsertComment(ctx context.Context, comment *models.Comment) error
	IncrementCommentCounter(ctx context.Context, issueID string) error
}
