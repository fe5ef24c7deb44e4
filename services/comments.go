package services

import (
	"context"
	"strings"
	"time"

	"citypulse-be/models"
	"citypulse-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddComment attaches a comment to an issue and bumps its cached
// comment counter. A comment needs at least some text or an image;
// a blank body with no attachment is rejected before any write.
func AddComment(ctx context.Context, s store.IssueStore, userID, issueID, text string, imageURL *string) (*models.Comment, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}

	text = strings.TrimSpace(text)
	if text == "" && imageURL == nil {
		return nil, models.ErrEmptyComment
	}

	if _, err := s.GetIssue(ctx, issueID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        primitive.NewObjectID().Hex(),
		IssueID:   issueID,
		UserID:    userID,
		Text:      text,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}

	if err := s.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.IncrementCommentCounter(ctx, issueID); err != nil {
		return nil, err
	}
	return comment, nil
}

// CommentsForIssue lists an issue's thread oldest first.
func CommentsForIssue(ctx context.Context, s store.IssueStore, issueID string) ([]models.Comment, error) {
	if _, err := s.GetIssue(ctx, issueID); err != nil {
		return nil, err
	}
	return s.ListComments(ctx, issueID)
}
