package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Roads     IssueCategory = "Roads"
	Ecology   IssueCategory = "Ecology"
	Utilities IssueCategory = "Utilities"
	Lighting  IssueCategory = "Lighting"
	Safety    IssueCategory = "Safety"
	Other     IssueCategory = "Other"
)

// IssueStatus enum
type IssueStatus string

const (
	Open       IssueStatus = "Open"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
	Rejected   IssueStatus = "Rejected"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c IssueCategory) bool {
	switch c {
	case Roads, Ecology, Utilities, Lighting, Safety, Other:
		return true
	}
	return false
}

// Issue represents a civic problem reported by a resident.
// AuthorName is a display-name snapshot taken at creation time so the
// leaderboard keeps grouping correctly even if the account is renamed
// or removed later. LikesCount is a cached projection of the likes
// collection (see Like).
type Issue struct {
	ID            string        `bson:"_id" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description" json:"description"`
	Category      IssueCategory `bson:"category" json:"category"`
	Status        IssueStatus   `bson:"status" json:"status"`
	Latitude      float64       `bson:"latitude" json:"latitude"`
	Longitude     float64       `bson:"longitude" json:"longitude"`
	Address       string        `bson:"address,omitempty" json:"address,omitempty"`
	ImageURL      *string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	AuthorID      string        `bson:"authorId,omitempty" json:"authorId,omitempty"`
	AuthorName    string        `bson:"authorName,omitempty" json:"authorName,omitempty"`
	LikesCount    int64         `bson:"likesCount" json:"likesCount"`
	CommentsCount int64         `bson:"commentsCount" json:"commentsCount"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
