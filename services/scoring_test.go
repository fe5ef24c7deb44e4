package services

import (
	"testing"

	"citypulse-be/models"

	"github.com/stretchr/testify/assert"
)

func TestPointsFormula(t *testing.T) {
	// 3 issues, 1 resolved, 5 likes total: 10*3 + 50*1 + 2*5 = 90.
	issues := []models.Issue{
		{Status: models.Resolved, LikesCount: 2},
		{Status: models.Open, LikesCount: 3},
		{Status: models.InProgress},
	}

	assert.Equal(t, int64(90), Points(issues))

	stats := Stats(issues)
	assert.Equal(t, int64(3), stats.IssueCount)
	assert.Equal(t, int64(1), stats.SolvedCount)
	assert.Equal(t, int64(5), stats.TotalLikes)
	assert.Equal(t, "Activist", stats.Level.Title)
	assert.InDelta(t, 26.7, stats.Level.Progress, 0.05)
}

func TestPointsEmpty(t *testing.T) {
	assert.Equal(t, int64(0), Points(nil))
}

func TestRejectedIssuesStillEarnReportPoints(t *testing.T) {
	issues := []models.Issue{{Status: models.Rejected}}
	assert.Equal(t, int64(10), Points(issues))
}

func TestLevelBands(t *testing.T) {
	tests := []struct {
		points   int64
		title    string
		progress float64
	}{
		{0, "Observer", 0},
		{25, "Observer", 50},
		{49, "Observer", 98},
		{50, "Activist", 0},
		{90, "Activist", 400.0 / 15},
		{199, "Activist", 99.0 / 150 * 100},
		{200, "Urbanist", 0},
		{499, "Urbanist", 99.0 / 300 * 100},
		{500, "Reformer", 0},
		{999, "Reformer", 99.0 / 500 * 100},
		{1000, "City Hero", 100},
		{5000, "City Hero", 100},
	}

	for _, tt := range tests {
		level := LevelFor(tt.points)
		assert.Equal(t, tt.title, level.Title, "points=%d", tt.points)
		assert.InDelta(t, tt.progress, level.Progress, 0.0001, "points=%d", tt.points)
	}
}

func TestLevelBoundaryBelongsToHigherBand(t *testing.T) {
	assert.Equal(t, "Activist", LevelFor(50).Title)
	assert.Equal(t, "Urbanist", LevelFor(200).Title)
	assert.Equal(t, "Reformer", LevelFor(500).Title)
	assert.Equal(t, "City Hero", LevelFor(1000).Title)
}
