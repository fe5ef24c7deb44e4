package controllers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"citypulse-be/models"
	"citypulse-be/services"
	"citypulse-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence backend shared by all handlers, wired in
// main before the router starts.
var Store store.IssueStore

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// identity pulls the authenticated user from the context set by the
// auth middleware.
func identity(c *gin.Context) (id string, name string, ok bool) {
	idVal, exists := c.Get("user_id")
	if !exists {
		return "", "", false
	}
	id, _ = idVal.(string)
	if nameVal, exists := c.Get("user_name"); exists {
		name, _ = nameVal.(string)
	}
	return id, name, id != ""
}

// CreateIssue handles the creation of a new issue
func CreateIssue(c *gin.Context) {
	userID, userName, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required"`
		Latitude    *float64 `json:"latitude" binding:"required"`
		Longitude   *float64 `json:"longitude" binding:"required"`
		Address     string   `json:"address,omitempty" binding:"max=200"`
		ImageURL    *string  `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(models.IssueCategory(input.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	// Every new report starts in the Open state; triage moves it on.
	issue := models.Issue{
		ID:          primitive.NewObjectID().Hex(),
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Status:      models.Open,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		Address:     input.Address,
		ImageURL:    input.ImageURL,
		AuthorID:    userID,
		AuthorName:  userName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := Store.InsertIssue(ctx, &issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	InvalidateLeaderboardCache()
	c.JSON(http.StatusCreated, issue)
}

// GetIssue retrieves an issue by its ID
func GetIssue(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issue, err := Store.GetIssue(ctx, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	// liked is per-viewer; anonymous requests always see false.
	liked := false
	if userID, _, ok := identity(c); ok {
		liked, err = Store.HasLike(ctx, userID, issue.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
			return
		}
	}

	c.JSON(http.StatusOK, struct {
		models.Issue
		Liked bool `json:"liked"`
	}{Issue: *issue, Liked: liked})
}

// GetComments lists an issue's comment thread, oldest first.
func GetComments(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	comments, err := services.CommentsForIssue(ctx, Store, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment adds a comment to an issue
func CreateComment(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Text     string  `json:"text" binding:"max=1000"`
		ImageURL *string `json:"imageUrl,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	comment, err := services.AddComment(ctx, Store, userID, c.Param("id"), input.Text, input.ImageURL)
	if errors.Is(err, models.ErrEmptyComment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment needs text or an image"})
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetAllIssues handles retrieving issues with filtering, sorting and pagination
func GetAllIssues(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := store.Filter{
		Search: c.Query("search"),
		Sort:   c.DefaultQuery("sort", "newest"),
		Skip:   int64((page - 1) * limit),
		Limit:  int64(limit),
	}
	if category := c.Query("category"); category != "" && category != "all" {
		filter.Category = models.IssueCategory(category)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		filter.Status = models.IssueStatus(status)
	}

	totalCount, err := Store.CountIssues(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	issues, err := Store.ListIssues(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetMyIssues retrieves all issues created by the authenticated user
func GetMyIssues(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := Store.ListIssues(ctx, store.Filter{AuthorID: userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}

	c.JSON(http.StatusOK, issues)
}

// GetProfileStats returns the authenticated user's points and level
func GetProfileStats(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := Store.ListIssues(ctx, store.Filter{AuthorID: userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, services.Stats(issues))
}

// UpdateIssue lets the creator edit issue details; status changes go
// through the workflow validation
func UpdateIssue(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       *string  `json:"title,omitempty"`
		Description *string  `json:"description,omitempty"`
		Category    *string  `json:"category,omitempty"`
		Status      *string  `json:"status,omitempty"`
		Address     *string  `json:"address,omitempty"`
		Latitude    *float64 `json:"latitude,omitempty"`
		Longitude   *float64 `json:"longitude,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := Store.GetIssue(ctx, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	if issue.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this issue"})
		return
	}

	patch := store.Patch{
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}
	if input.Category != nil {
		category := models.IssueCategory(*input.Category)
		if !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		patch.Category = &category
	}
	if input.Status != nil {
		if err := services.Transition(issue, models.IssueStatus(*input.Status)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		patch.Status = &issue.Status
	}

	if err := Store.UpdateIssue(ctx, issue.ID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	InvalidateLeaderboardCache()
	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully"})
}

// LikeIssue records the authenticated user's like on an issue. A
// repeat like is a no-op success, so a double click never double-counts
func LikeIssue(c *gin.Context) {
	userID, _, _ := identity(c)
	issueID := c.Param("id")

	ctx, cancel := requestContext()
	defer cancel()

	liked, err := services.LikeIssue(ctx, Store, userID, issueID)
	if errors.Is(err, models.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Log in to support an issue"})
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save like"})
		return
	}

	issue, err := Store.GetIssue(ctx, issueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	if liked {
		InvalidateLeaderboardCache()
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":      liked,
		"likesCount": issue.LikesCount,
	})
}

// RecentIssues returns the most recent issues that carry coordinates,
// for map pins
func RecentIssues(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issues, err := Store.ListIssues(ctx, store.Filter{
		HasLocation: true,
		Sort:        "newest",
		Limit:       19,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}

	type pin struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Latitude  float64   `json:"latitude"`
		Longitude float64   `json:"longitude"`
		Address   string    `json:"address,omitempty"`
		Category  string    `json:"category,omitempty"`
		CreatedAt time.Time `json:"createdAt,omitempty"`
	}

	pins := make([]pin, 0, len(issues))
	for _, issue := range issues {
		pins = append(pins, pin{
			ID:        issue.ID,
			Title:     issue.Title,
			Latitude:  issue.Latitude,
			Longitude: issue.Longitude,
			Address:   issue.Address,
			Category:  string(issue.Category),
			CreatedAt: issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, pins)
}

// GetIssueAnalytics returns analytical data about issues
func GetIssueAnalytics(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issues, err := Store.ListIssues(ctx, store.Filter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	byCategory := make(map[models.IssueCategory]int64)
	var totalLikes, openIssues int64
	for _, issue := range issues {
		byCategory[issue.Category]++
		totalLikes += issue.LikesCount
		if issue.Status == models.Open || issue.Status == models.InProgress {
			openIssues++
		}
	}

	issuesByCategory := make([]gin.H, 0, len(byCategory))
	for _, category := range []models.IssueCategory{
		models.Roads, models.Ecology, models.Utilities,
		models.Lighting, models.Safety, models.Other,
	} {
		if count, ok := byCategory[category]; ok {
			issuesByCategory = append(issuesByCategory, gin.H{"name": category, "value": count})
		}
	}

	// Rolling 7-day report counts, oldest day first.
	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		var count int64
		for _, issue := range issues {
			if !issue.CreatedAt.Before(date) && issue.CreatedAt.Before(nextDate) {
				count++
			}
		}
		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	type likedIssue struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		Likes    int64  `json:"likes"`
	}

	mostLiked := make([]likedIssue, 0, len(issues))
	for _, issue := range issues {
		mostLiked = append(mostLiked, likedIssue{
			ID:       issue.ID,
			Title:    issue.Title,
			Category: string(issue.Category),
			Likes:    issue.LikesCount,
		})
	}
	sort.SliceStable(mostLiked, func(i, j int) bool {
		return mostLiked[i].Likes > mostLiked[j].Likes
	})
	if len(mostLiked) > 5 {
		mostLiked = mostLiked[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByCategory": issuesByCategory,
		"last7Days":        last7Days,
		"topLikedIssues":   mostLiked,
		"totalIssues":      len(issues),
		"totalLikes":       totalLikes,
		"openIssues":       openIssues,
	})
}
