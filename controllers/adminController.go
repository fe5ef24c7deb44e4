package controllers

import (
	"errors"
	"io"
	"net/http"

	"citypulse-be/models"
	"citypulse-be/services"
	"citypulse-be/store"

	"github.com/gin-gonic/gin"
)

// BulkUpdateStatus applies one status to a set of issues as a single
// all-or-nothing batch. On failure nothing changed and the full id set
// comes back for retry.
func BulkUpdateStatus(c *gin.Context) {
	var input struct {
		IDs    []string `json:"ids" binding:"required,min=1"`
		Status string   `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	err := services.BulkSetStatus(ctx, Store, input.IDs, models.IssueStatus(input.Status))
	if errors.Is(err, models.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Batch update failed, no issues were changed",
			"ids":   input.IDs,
		})
		return
	}

	InvalidateLeaderboardCache()
	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
		"updated": len(input.IDs),
	})
}

// BulkDeleteIssues removes a set of issues in one irreversible batch.
// The confirmation step lives in the admin UI, not here.
func BulkDeleteIssues(c *gin.Context) {
	var input struct {
		IDs []string `json:"ids" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := services.BulkDelete(ctx, Store, input.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Batch delete failed, no issues were removed",
			"ids":   input.IDs,
		})
		return
	}

	InvalidateLeaderboardCache()
	c.JSON(http.StatusOK, gin.H{
		"message": "Issues deleted",
		"deleted": len(input.IDs),
	})
}

// ExportIssues streams the filtered issue set as CSV or JSON. JSON is
// the round-trip format ImportIssues accepts back.
func ExportIssues(c *gin.Context) {
	format := c.DefaultQuery("format", services.FormatJSON)

	filter := store.Filter{Sort: "oldest"}
	if category := c.Query("category"); category != "" && category != "all" {
		filter.Category = models.IssueCategory(category)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		filter.Status = models.IssueStatus(status)
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := Store.ListIssues(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	body, err := services.ExportFiltered(issues, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format"})
		return
	}

	contentType := "application/json"
	if format == services.FormatCSV {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="issues.`+format+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// ImportIssues merges a JSON export back into the store, upserting by
// id. A structurally invalid payload fails before any write.
func ImportIssues(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read import payload"})
		return
	}

	records, err := services.ParseImport(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := services.ImportMerge(ctx, Store, records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed, no issues were written"})
		return
	}

	InvalidateLeaderboardCache()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Import complete",
		"imported": len(records),
	})
}
