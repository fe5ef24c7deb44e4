package services

import (
	"sort"
	"time"

	"citypulse-be/models"
)

// AnonymousAuthor groups issues reported without a display name. It is
// a legitimate leaderboard entry like any other.
const AnonymousAuthor = "Anonymous"

// Time windows for leaderboard filtering. Week and month are rolling
// (now minus 7/30 days), not calendar boundaries.
type TimeWindow string

const (
	WindowAll       TimeWindow = "all"
	WindowPastWeek  TimeWindow = "pastWeek"
	WindowPastMonth TimeWindow = "pastMonth"
)

// Ranking metrics.
type SortKey string

const (
	SortByPoints SortKey = "points"
	SortByLikes  SortKey = "likes"
	SortBySolved SortKey = "solvedCount"
)

// LeaderboardOptions filter and rank the input issue set.
type LeaderboardOptions struct {
	Window   TimeWindow
	Category models.IssueCategory // empty = all categories
	SortKey  SortKey
}

// AuthorAggregate is one ranked leaderboard row. It is recomputed from
// the issue snapshot on every request and never persisted.
type AuthorAggregate struct {
	Name        string `json:"name"`
	IssueCount  int64  `json:"issueCount"`
	SolvedCount int64  `json:"solvedCount"`
	TotalLikes  int64  `json:"totalLikes"`
	Points      int64  `json:"points"`
	Level       Level  `json:"level"`
}

func windowCutoff(w TimeWindow, now time.Time) (time.Time, bool) {
	switch w {
	case WindowPastWeek:
		return now.AddDate(0, 0, -7), true
	case WindowPastMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func metric(a AuthorAggregate, key SortKey) int64 {
	switch key {
	case SortByLikes:
		return a.TotalLikes
	case SortBySolved:
		return a.SolvedCount
	default:
		return a.Points
	}
}

// Rank groups the issues by author display name, scores each group and
// returns rows sorted descending by the chosen metric. Ties keep
// first-seen-author order, so results are deterministic for a given
// input order. Callers wanting ascending order reverse the slice
// themselves.
func Rank(issues []models.Issue, opts LeaderboardOptions, now time.Time) []AuthorAggregate {
	cutoff, windowed := windowCutoff(opts.Window, now)

	grouped := make(map[string][]models.Issue)
	var seen []string

	for _, issue := range issues {
		if windowed && issue.CreatedAt.Before(cutoff) {
			continue
		}
		if opts.Category != "" && issue.Category != opts.Category {
			continue
		}

		name := issue.AuthorName
		if name == "" {
			name = AnonymousAuthor
		}
		if _, ok := grouped[name]; !ok {
			seen = append(seen, name)
		}
		grouped[name] = append(grouped[name], issue)
	}

	board := make([]AuthorAggregate, 0, len(seen))
	for _, name := range seen {
		stats := Stats(grouped[name])
		board = append(board, AuthorAggregate{
			Name:        name,
			IssueCount:  stats.IssueCount,
			SolvedCount: stats.SolvedCount,
			TotalLikes:  stats.TotalLikes,
			Points:      stats.Points,
			Level:       stats.Level,
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		return metric(board[i], opts.SortKey) > metric(board[j], opts.SortKey)
	})
	return board
}

// PodiumEntry is a top-3 leaderboard row with its roman rank label.
type PodiumEntry struct {
	Rank string `json:"rank"`
	AuthorAggregate
}

// Podium returns up to the top three entries in display order: the
// runner-up (II) on the left, the winner (I) in the middle, third
// place (III) on the right.
func Podium(board []AuthorAggregate) []PodiumEntry {
	labels := []string{"I", "II", "III"}
	top := make([]PodiumEntry, 0, 3)
	for i := 0; i < len(board) && i < 3; i++ {
		top = append(top, PodiumEntry{Rank: labels[i], AuthorAggregate: board[i]})
	}

	switch len(top) {
	case 3:
		return []PodiumEntry{top[1], top[0], top[2]}
	case 2:
		return []PodiumEntry{top[1], top[0]}
	default:
		return top
	}
}
