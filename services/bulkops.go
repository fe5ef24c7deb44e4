package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"citypulse-be/models"
	"citypulse-be/store"
)

// BulkSetStatus validates the status once, then applies it to every id
// in a single batched update. The batch is all-or-nothing: on failure
// the whole target set is reported unchanged and the error carries the
// id set for caller-level retry.
func BulkSetStatus(ctx context.Context, s store.IssueStore, ids []string, status models.IssueStatus) error {
	if !ValidStatus(status) {
		return models.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.UpdateStatusBatch(ctx, ids, status); err != nil {
		return fmt.Errorf("updating status for batch %v: %w", ids, err)
	}
	return nil
}

// BulkDelete removes every id in one all-or-nothing batch. There is no
// undo; confirmation happens upstream.
func BulkDelete(ctx context.Context, s store.IssueStore, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.DeleteBatch(ctx, ids); err != nil {
		return fmt.Errorf("deleting batch %v: %w", ids, err)
	}
	return nil
}

// ParseImport decodes a JSON array of issue records and structurally
// validates every record before anything is written. A single bad
// record fails the whole payload with ErrMalformedImport.
func ParseImport(payload []byte) ([]models.Issue, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()

	var records []models.Issue
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedImport, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty record set", models.ErrMalformedImport)
	}

	for i, rec := range records {
		switch {
		case rec.ID == "":
			return nil, fmt.Errorf("%w: record %d has no id", models.ErrMalformedImport, i)
		case rec.Title == "":
			return nil, fmt.Errorf("%w: record %d has no title", models.ErrMalformedImport, i)
		case !models.ValidCategory(rec.Category):
			return nil, fmt.Errorf("%w: record %d has unknown category %q", models.ErrMalformedImport, i, rec.Category)
		case !ValidStatus(rec.Status):
			return nil, fmt.Errorf("%w: record %d has unknown status %q", models.ErrMalformedImport, i, rec.Status)
		case rec.LikesCount < 0:
			return nil, fmt.Errorf("%w: record %d has negative like count", models.ErrMalformedImport, i)
		case rec.CommentsCount < 0:
			return nil, fmt.Errorf("%w: record %d has negative comment count", models.ErrMalformedImport, i)
		}
	}
	return records, nil
}

// ImportMerge upserts the records by id: existing ids are overwritten
// in full, unknown ids become new rows. Re-running the same import is
// a no-op, which makes restoring an export safe to retry.
func ImportMerge(ctx context.Context, s store.IssueStore, records []models.Issue) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: empty record set", models.ErrMalformedImport)
	}
	if err := s.UpsertIssues(ctx, records); err != nil {
		return fmt.Errorf("merging %d imported issues: %w", len(records), err)
	}
	return nil
}
