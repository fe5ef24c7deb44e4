package store

import (
	"context"
	"fmt"
	"time"

	"citypulse-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the production IssueStore over the issues and likes
// collections.
type Mongo struct {
	issues   *mongo.Collection
	likes    *mongo.Collection
	comments *mongo.Collection
}

// NewMongo wires the store to its collections and makes sure the
// unique (userId, issueId) index exists before any like is written.
func NewMongo(db *mongo.Database) (*Mongo, error) {
	m := &Mongo{
		issues:   db.Collection("issues"),
		likes:    db.Collection("likes"),
		comments: db.Collection("comments"),
	}
	if err := models.EnsureLikeIndex(m.likes); err != nil {
		return nil, fmt.Errorf("%w: ensuring like index: %v", models.ErrPersistence, err)
	}
	return m, nil
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", models.ErrPersistence, err)
}

func (m *Mongo) query(f Filter) bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.AuthorID != "" {
		q["authorId"] = f.AuthorID
	}
	if f.Search != "" {
		q["$or"] = []bson.M{
			{"title": bson.M{"$regex": f.Search, "$options": "i"}},
			{"description": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.HasLocation {
		q["latitude"] = bson.M{"$ne": 0}
		q["longitude"] = bson.M{"$ne": 0}
	}
	return q
}

func sortSpec(key string) bson.D {
	switch key {
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	case "likes":
		return bson.D{{Key: "likesCount", Value: -1}}
	case "comments":
		return bson.D{{Key: "commentsCount", Value: -1}}
	default: // newest
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (m *Mongo) ListIssues(ctx context.Context, f Filter) ([]models.Issue, error) {
	opts := options.Find().SetSort(sortSpec(f.Sort))
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := m.issues.Find(ctx, m.query(f), opts)
	if err != nil {
		return nil, persistence(err)
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, persistence(err)
	}
	return issues, nil
}

func (m *Mongo) CountIssues(ctx context.Context, f Filter) (int64, error) {
	count, err := m.issues.CountDocuments(ctx, m.query(f))
	if err != nil {
		return 0, persistence(err)
	}
	return count, nil
}

func (m *Mongo) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	err := m.issues.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistence(err)
	}
	return &issue, nil
}

func (m *Mongo) InsertIssue(ctx context.Context, issue *models.Issue) error {
	if _, err := m.issues.InsertOne(ctx, issue); err != nil {
		return persistence(err)
	}
	return nil
}

func (m *Mongo) UpdateIssue(ctx context.Context, id string, p Patch) error {
	set := bson.M{"updatedAt": time.Now()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.ImageURL != nil {
		set["imageUrl"] = *p.ImageURL
	}
	if p.Latitude != nil {
		set["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		set["longitude"] = *p.Longitude
	}

	res, err := m.issues.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return persistence(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateStatusBatch applies the status to every id in one UpdateMany.
// Mongo either accepts or rejects the request as a whole, matching the
// batch contract the coordinator relies on.
func (m *Mongo) UpdateStatusBatch(ctx context.Context, ids []string, status models.IssueStatus) error {
	_, err := m.issues.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return persistence(err)
	}
	return nil
}

func (m *Mongo) DeleteBatch(ctx context.Context, ids []string) error {
	if _, err := m.issues.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return persistence(err)
	}
	// Orphaned like relations and comment threads are swept too.
	if _, err := m.likes.DeleteMany(ctx, bson.M{"issueId": bson.M{"$in": ids}}); err != nil {
		return persistence(err)
	}
	if _, err := m.comments.DeleteMany(ctx, bson.M{"issueId": bson.M{"$in": ids}}); err != nil {
		return persistence(err)
	}
	return nil
}

// UpsertIssues replaces records whose id already exists and inserts the
// rest, in a single BulkWrite.
func (m *Mongo) UpsertIssues(ctx context.Context, issues []models.Issue) error {
	writes := make([]mongo.WriteModel, 0, len(issues))
	for _, issue := range issues {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": issue.ID}).
			SetReplacement(issue).
			SetUpsert(true))
	}

	if _, err := m.issues.BulkWrite(ctx, writes); err != nil {
		return persistence(err)
	}
	return nil
}

func (m *Mongo) InsertLike(ctx context.Context, userID, issueID string) error {
	like := models.Like{
		UserID:    userID,
		IssueID:   issueID,
		CreatedAt: time.Now(),
	}

	_, err := m.likes.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateLike
	}
	if err != nil {
		return persistence(err)
	}
	return nil
}

// IncrementLikeCounter bumps the cached counter by one. A single $inc
// avoids recounting the likes collection on the hot path.
func (m *Mongo) IncrementLikeCounter(ctx context.Context, issueID string) error {
	res, err := m.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"likesCount": 1}},
	)
	if err != nil {
		return persistence(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (m *Mongo) HasLike(ctx context.Context, userID, issueID string) (bool, error) {
	count, err := m.likes.CountDocuments(ctx, bson.M{"userId": userID, "issueId": issueID})
	if err != nil {
		return false, persistence(err)
	}
	return count > 0, nil
}

func (m *Mongo) ListComments(ctx context.Context, issueID string) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := m.comments.Find(ctx, bson.M{"issueId": issueID}, opts)
	if err != nil {
		return nil, persistence(err)
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, persistence(err)
	}
	return comments, nil
}

func (m *Mongo) InsertComment(ctx context.Context, comment *models.Comment) error {
	if _, err := m.comments.InsertOne(ctx, comment); err != nil {
		return persistence(err)
	}
	return nil
}

// IncrementCommentCounter bumps the cached thread length, the same
// projection pattern the like counter uses.
func (m *Mongo) IncrementCommentCounter(ctx context.Context, issueID string) error {
	res, err := m.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"commentsCount": 1}},
	)
	if err != nil {
		return persistence(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
