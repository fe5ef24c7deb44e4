package services

import (
	"testing"
	"time"

	"citypulse-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func authored(name string, status models.IssueStatus, likes int64, age time.Duration) models.Issue {
	return models.Issue{
		ID:         name + "-" + string(status),
		Title:      "issue by " + name,
		Category:   models.Roads,
		Status:     status,
		AuthorName: name,
		LikesCount: likes,
		CreatedAt:  rankNow.Add(-age),
	}
}

func TestRankGroupsAndScores(t *testing.T) {
	issues := []models.Issue{
		authored("Aigerim", models.Resolved, 2, time.Hour),
		authored("Bolat", models.Open, 0, time.Hour),
		authored("Aigerim", models.Open, 3, 2*time.Hour),
	}

	board := Rank(issues, LeaderboardOptions{}, rankNow)
	require.Len(t, board, 2)

	// Aigerim: 2 issues, 1 resolved, 5 likes = 20+50+10 = 80.
	assert.Equal(t, "Aigerim", board[0].Name)
	assert.Equal(t, int64(80), board[0].Points)
	assert.Equal(t, int64(2), board[0].IssueCount)
	assert.Equal(t, int64(1), board[0].SolvedCount)
	assert.Equal(t, int64(5), board[0].TotalLikes)
	assert.Equal(t, "Activist", board[0].Level.Title)

	assert.Equal(t, "Bolat", board[1].Name)
	assert.Equal(t, int64(10), board[1].Points)
}

func TestRankAnonymousGroup(t *testing.T) {
	issues := []models.Issue{
		authored("", models.Resolved, 10, time.Hour),
		authored("", models.Resolved, 10, time.Hour),
		authored("Dana", models.Open, 0, time.Hour),
	}

	board := Rank(issues, LeaderboardOptions{}, rankNow)
	require.Len(t, board, 2)

	// Anonymous reports rank like any other author.
	assert.Equal(t, AnonymousAuthor, board[0].Name)
	assert.Equal(t, int64(160), board[0].Points)
}

func TestRankTieKeepsInputOrder(t *testing.T) {
	issues := []models.Issue{
		authored("First", models.Open, 4, time.Hour),
		authored("Second", models.Open, 4, time.Hour),
		authored("Third", models.Open, 4, time.Hour),
	}

	board := Rank(issues, LeaderboardOptions{}, rankNow)
	require.Len(t, board, 3)
	assert.Equal(t, "First", board[0].Name)
	assert.Equal(t, "Second", board[1].Name)
	assert.Equal(t, "Third", board[2].Name)
}

func TestRankTimeWindows(t *testing.T) {
	issues := []models.Issue{
		authored("Recent", models.Open, 0, 2*24*time.Hour),
		authored("Older", models.Open, 0, 12*24*time.Hour),
		authored("Ancient", models.Open, 0, 45*24*time.Hour),
	}

	all := Rank(issues, LeaderboardOptions{Window: WindowAll}, rankNow)
	assert.Len(t, all, 3)

	week := Rank(issues, LeaderboardOptions{Window: WindowPastWeek}, rankNow)
	require.Len(t, week, 1)
	assert.Equal(t, "Recent", week[0].Name)

	month := Rank(issues, LeaderboardOptions{Window: WindowPastMonth}, rankNow)
	require.Len(t, month, 2)
	assert.Equal(t, "Recent", month[0].Name)
	assert.Equal(t, "Older", month[1].Name)
}

func TestRankCategoryFilter(t *testing.T) {
	roads := authored("Roads reporter", models.Open, 0, time.Hour)
	lighting := authored("Lighting reporter", models.Open, 0, time.Hour)
	lighting.Category = models.Lighting

	board := Rank([]models.Issue{roads, lighting}, LeaderboardOptions{Category: models.Lighting}, rankNow)
	require.Len(t, board, 1)
	assert.Equal(t, "Lighting reporter", board[0].Name)

	board = Rank([]models.Issue{roads, lighting}, LeaderboardOptions{}, rankNow)
	assert.Len(t, board, 2)
}

func TestRankSortKeys(t *testing.T) {
	issues := []models.Issue{
		authored("ManyLikes", models.Open, 40, time.Hour),   // 10 + 80 = 90 pts
		authored("Solver", models.Resolved, 0, time.Hour),   // 10 + 50 = 60 pts
		authored("Prolific", models.Open, 0, time.Hour),     // 10 pts
		authored("Prolific", models.Open, 0, 2*time.Hour),   // +10
		authored("Prolific", models.Open, 0, 3*time.Hour),   // +10
	}

	byPoints := Rank(issues, LeaderboardOptions{SortKey: SortByPoints}, rankNow)
	assert.Equal(t, "ManyLikes", byPoints[0].Name)
	assert.Equal(t, "Solver", byPoints[1].Name)
	assert.Equal(t, "Prolific", byPoints[2].Name)

	byLikes := Rank(issues, LeaderboardOptions{SortKey: SortByLikes}, rankNow)
	assert.Equal(t, "ManyLikes", byLikes[0].Name)

	bySolved := Rank(issues, LeaderboardOptions{SortKey: SortBySolved}, rankNow)
	assert.Equal(t, "Solver", bySolved[0].Name)
}

func TestRankAlwaysDescending(t *testing.T) {
	issues := []models.Issue{
		authored("Low", models.Open, 0, time.Hour),
		authored("High", models.Resolved, 20, time.Hour),
	}

	board := Rank(issues, LeaderboardOptions{}, rankNow)
	require.Len(t, board, 2)
	assert.True(t, board[0].Points >= board[1].Points)
	assert.Equal(t, "High", board[0].Name)
}

func TestPodiumDisplayOrder(t *testing.T) {
	board := []AuthorAggregate{
		{Name: "Gold"},
		{Name: "Silver"},
		{Name: "Bronze"},
		{Name: "Fourth"},
	}

	podium := Podium(board)
	require.Len(t, podium, 3)

	// Runner-up left, winner center, third right.
	assert.Equal(t, "Silver", podium[0].Name)
	assert.Equal(t, "II", podium[0].Rank)
	assert.Equal(t, "Gold", podium[1].Name)
	assert.Equal(t, "I", podium[1].Rank)
	assert.Equal(t, "Bronze", podium[2].Name)
	assert.Equal(t, "III", podium[2].Rank)
}

func TestPodiumShortBoards(t *testing.T) {
	podium := Podium([]AuthorAggregate{{Name: "Solo"}})
	require.Len(t, podium, 1)
	assert.Equal(t, "I", podium[0].Rank)

	podium = Podium([]AuthorAggregate{{Name: "Gold"}, {Name: "Silver"}})
	require.Len(t, podium, 2)
	assert.Equal(t, "Silver", podium[0].Name)
	assert.Equal(t, "Gold", podium[1].Name)

	assert.Empty(t, Podium(nil))
}
