package services

import "citypulse-be/models"

// Point weights: 10 for reporting an issue, 50 when it gets resolved,
// 2 for every like collected.
const (
	pointsPerIssue  = 10
	pointsPerSolved = 50
	pointsPerLike   = 2
)

// Level is a named band of points with linear progress toward the next
// band, capped at 100 for the top band.
type Level struct {
	Title    string  `json:"title"`
	Next     int64   `json:"next"`
	Progress float64 `json:"progress"`
}

// AuthorStats is the computed view over one author's issues.
type AuthorStats struct {
	IssueCount  int64 `json:"issueCount"`
	SolvedCount int64 `json:"solvedCount"`
	TotalLikes  int64 `json:"totalLikes"`
	Points      int64 `json:"points"`
	Level       Level `json:"level"`
}

// Points computes the score for a set of issues by one author.
func Points(issues []models.Issue) int64 {
	stats := Stats(issues)
	return stats.Points
}

// Stats computes the full per-author aggregate for a set of issues.
func Stats(issues []models.Issue) AuthorStats {
	var solved, likes int64
	for _, issue := range issues {
		if issue.Status == models.Resolved {
			solved++
		}
		likes += issue.LikesCount
	}

	total := int64(len(issues))
	points := total*pointsPerIssue + solved*pointsPerSolved + likes*pointsPerLike

	return AuthorStats{
		IssueCount:  total,
		SolvedCount: solved,
		TotalLikes:  likes,
		Points:      points,
		Level:       LevelFor(points),
	}
}

// LevelFor maps a point total to its experience band. Bands are
// half-open: a value exactly on a threshold belongs to the higher band.
func LevelFor(points int64) Level {
	switch {
	case points < 50:
		return Level{Title: "Observer", Next: 50, Progress: float64(points) / 50 * 100}
	case points < 200:
		return Level{Title: "Activist", Next: 200, Progress: float64(points-50) / 150 * 100}
	case points < 500:
		return Level{Title: "Urbanist", Next: 500, Progress: float64(points-200) / 300 * 100}
	case points < 1000:
		return Level{Title: "Reformer", Next: 1000, Progress: float64(points-500) / 500 * 100}
	default:
		return Level{Title: "City Hero", Next: points, Progress: 100}
	}
}
