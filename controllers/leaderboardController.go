package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"citypulse-be/config"
	"citypulse-be/models"
	"citypulse-be/services"
	"citypulse-be/store"

	"github.com/gin-gonic/gin"
)

const leaderboardCacheTTL = 60 * time.Second

type leaderboardResponse struct {
	Podium  []services.PodiumEntry     `json:"podium"`
	Entries []services.AuthorAggregate `json:"entries"`
	Total   int                        `json:"total"`
}

// GetLeaderboard ranks authors over the current issue snapshot,
// filtered by time window and category. Responses are cached in Redis
// per (window, category, sort) and dropped on every issue write.
func GetLeaderboard(c *gin.Context) {
	opts := services.LeaderboardOptions{
		Window:  services.TimeWindow(c.DefaultQuery("window", string(services.WindowAll))),
		SortKey: services.SortKey(c.DefaultQuery("sort", string(services.SortByPoints))),
	}
	if category := c.Query("category"); category != "" && category != "all" {
		opts.Category = models.IssueCategory(category)
	}

	switch opts.Window {
	case services.WindowAll, services.WindowPastWeek, services.WindowPastMonth:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window"})
		return
	}
	switch opts.SortKey {
	case services.SortByPoints, services.SortByLikes, services.SortBySolved:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort key"})
		return
	}

	cacheKey := "leaderboard:" + string(opts.Window) + ":" + string(opts.Category) + ":" + string(opts.SortKey)
	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := Store.ListIssues(ctx, store.Filter{Sort: "oldest"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	board := services.Rank(issues, opts, time.Now())
	resp := leaderboardResponse{
		Podium:  services.Podium(board),
		Entries: board,
		Total:   len(board),
	}

	if config.RedisClient != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := config.RedisClient.Set(config.Ctx, cacheKey, body, leaderboardCacheTTL).Err(); err != nil {
				log.Println("Failed to cache leaderboard:", err)
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// InvalidateLeaderboardCache drops every cached leaderboard variant.
// Called after any write that can change the ranking.
func InvalidateLeaderboardCache() {
	if config.RedisClient == nil {
		return
	}
	keys, err := config.RedisClient.Keys(config.Ctx, "leaderboard:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := config.RedisClient.Del(config.Ctx, keys...).Err(); err != nil {
		log.Println("Failed to invalidate leaderboard cache:", err)
	}
}
