package services

import (
	"testing"

	"citypulse-be/models"

	"github.com/stretchr/testify/assert"
)

func sampleIssue() models.Issue {
	return models.Issue{
		ID:         "issue-1",
		Title:      "Broken streetlight",
		Category:   models.Lighting,
		Status:     models.Open,
		Latitude:   54.87,
		Longitude:  69.15,
		AuthorName: "Aigerim",
		LikesCount: 3,
	}
}

func TestTransitionToEveryStatus(t *testing.T) {
	for _, next := range AllStatuses {
		issue := sampleIssue()
		before := issue

		err := Transition(&issue, next)
		assert.NoError(t, err)
		assert.Equal(t, next, issue.Status)

		// Nothing but the status field may change.
		before.Status = next
		assert.Equal(t, before, issue)
	}
}

func TestTransitionAllowsReopening(t *testing.T) {
	issue := sampleIssue()
	issue.Status = models.Resolved

	err := Transition(&issue, models.Open)
	assert.NoError(t, err)
	assert.Equal(t, models.Open, issue.Status)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	issue := sampleIssue()
	before := issue

	err := Transition(&issue, models.IssueStatus("Escalated"))
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
	assert.Equal(t, before, issue)
}

func TestTransitionRejectsEmptyStatus(t *testing.T) {
	issue := sampleIssue()

	err := Transition(&issue, "")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
	assert.Equal(t, models.Open, issue.Status)
}
