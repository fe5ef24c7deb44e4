package services

import "citypulse-be/models"

// AllStatuses is the closed status enumeration, in workflow order.
var AllStatuses = []models.IssueStatus{
	models.Open,
	models.InProgress,
	models.Resolved,
	models.Rejected,
}

// ValidStatus reports whether s belongs to the enumeration.
func ValidStatus(s models.IssueStatus) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Transition moves an issue to the requested status. Triage is
// staff-driven and manual, so any status may move to any other —
// including reopening a resolved issue. The only check is enumeration
// membership; on success nothing but the status field changes.
func Transition(issue *models.Issue, next models.IssueStatus) error {
	if !ValidStatus(next) {
		return models.ErrInvalidStatus
	}
	issue.Status = next
	return nil
}
