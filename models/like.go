package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Like records that one user supported one issue. The (user, issue)
// pair is unique; the database index is the authority, not the client.
type Like struct {
	UserID    string    `bson:"userId" json:"userId"`
	IssueID   string    `bson:"issueId" json:"issueId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// EnsureLikeIndex creates a unique compound index for (userId, issueId)
func EnsureLikeIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "issueId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
