package models

import "time"

// Comment is one user's reply in an issue's discussion thread. Either
// text or an image is required; CreatedAt orders the thread.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	IssueID   string    `bson:"issueId" json:"issueId"`
	UserID    string    `bson:"userId" json:"userId"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	ImageURL  *string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
