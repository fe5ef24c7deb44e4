package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"citypulse-be/models"
	"citypulse-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *store.Memory {
	t.Helper()
	mem := store.NewMemory()
	for i, id := range []string{"a", "b", "c"} {
		issue := sampleIssue()
		issue.ID = id
		issue.CreatedAt = time.Date(2026, time.March, 1, i, 0, 0, 0, time.UTC)
		require.NoError(t, mem.InsertIssue(context.Background(), &issue))
	}
	return mem
}

func TestBulkSetStatus(t *testing.T) {
	mem := seedStore(t)

	err := BulkSetStatus(context.Background(), mem, []string{"a", "c"}, models.Resolved)
	require.NoError(t, err)

	for id, want := range map[string]models.IssueStatus{
		"a": models.Resolved,
		"b": models.Open,
		"c": models.Resolved,
	} {
		issue, err := mem.GetIssue(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, issue.Status, "issue %s", id)
	}
}

func TestBulkSetStatusRejectsUnknownStatusBeforeWriting(t *testing.T) {
	mem := seedStore(t)

	err := BulkSetStatus(context.Background(), mem, []string{"a", "b"}, "Escalated")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	for _, id := range []string{"a", "b"} {
		issue, getErr := mem.GetIssue(context.Background(), id)
		require.NoError(t, getErr)
		assert.Equal(t, models.Open, issue.Status)
	}
}

func TestBulkSetStatusBatchFailureLeavesAllUnchanged(t *testing.T) {
	mem := seedStore(t)
	mem.FailWith = models.ErrPersistence

	err := BulkSetStatus(context.Background(), mem, []string{"a", "b", "c"}, models.Rejected)
	assert.True(t, errors.Is(err, models.ErrPersistence))
	// The error names the whole batch so the caller can retry it.
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "c")

	mem.FailWith = nil
	for _, id := range []string{"a", "b", "c"} {
		issue, getErr := mem.GetIssue(context.Background(), id)
		require.NoError(t, getErr)
		assert.Equal(t, models.Open, issue.Status)
	}
}

func TestBulkDelete(t *testing.T) {
	mem := seedStore(t)

	err := BulkDelete(context.Background(), mem, []string{"a", "b"})
	require.NoError(t, err)

	_, err = mem.GetIssue(context.Background(), "a")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = mem.GetIssue(context.Background(), "b")
	assert.ErrorIs(t, err, models.ErrNotFound)

	issue, err := mem.GetIssue(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "c", issue.ID)
}

func TestBulkDeleteBatchFailureLeavesAllPresent(t *testing.T) {
	mem := seedStore(t)
	mem.FailWith = models.ErrPersistence

	err := BulkDelete(context.Background(), mem, []string{"a", "b", "c"})
	assert.True(t, errors.Is(err, models.ErrPersistence))

	mem.FailWith = nil
	for _, id := range []string{"a", "b", "c"} {
		issue, getErr := mem.GetIssue(context.Background(), id)
		require.NoError(t, getErr)
		assert.Equal(t, models.Open, issue.Status)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	mem := seedStore(t)
	require.NoError(t, BulkSetStatus(context.Background(), mem, []string{"b"}, models.Resolved))

	issues, err := mem.ListIssues(context.Background(), store.Filter{Sort: "oldest"})
	require.NoError(t, err)
	require.Len(t, issues, 3)

	payload, err := ExportFiltered(issues, FormatJSON)
	require.NoError(t, err)

	records, err := ParseImport(payload)
	require.NoError(t, err)

	fresh := store.NewMemory()
	require.NoError(t, ImportMerge(context.Background(), fresh, records))

	restored, err := fresh.ListIssues(context.Background(), store.Filter{Sort: "oldest"})
	require.NoError(t, err)
	require.Len(t, restored, 3)

	for i := range issues {
		assert.Equal(t, issues[i].ID, restored[i].ID)
		assert.Equal(t, issues[i].Title, restored[i].Title)
		assert.Equal(t, issues[i].Category, restored[i].Category)
		assert.Equal(t, issues[i].Status, restored[i].Status)
		assert.Equal(t, issues[i].LikesCount, restored[i].LikesCount)
		assert.True(t, issues[i].CreatedAt.Equal(restored[i].CreatedAt))
	}
}

func TestImportMergeIsIdempotent(t *testing.T) {
	mem := seedStore(t)

	issues, err := mem.ListIssues(context.Background(), store.Filter{Sort: "oldest"})
	require.NoError(t, err)

	payload, err := ExportJSON(issues)
	require.NoError(t, err)
	records, err := ParseImport(payload)
	require.NoError(t, err)

	require.NoError(t, ImportMerge(context.Background(), mem, records))
	require.NoError(t, ImportMerge(context.Background(), mem, records))

	after, err := mem.ListIssues(context.Background(), store.Filter{Sort: "oldest"})
	require.NoError(t, err)
	assert.Len(t, after, len(issues))
}

func TestImportMergeOverwritesExistingAndInsertsNew(t *testing.T) {
	mem := seedStore(t)

	changed := sampleIssue()
	changed.ID = "a"
	changed.Title = "Updated title"
	changed.Status = models.Rejected

	fresh := sampleIssue()
	fresh.ID = "d"

	require.NoError(t, ImportMerge(context.Background(), mem, []models.Issue{changed, fresh}))

	a, err := mem.GetIssue(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Updated title", a.Title)
	assert.Equal(t, models.Rejected, a.Status)

	d, err := mem.GetIssue(context.Background(), "d")
	require.NoError(t, err)
	assert.Equal(t, "d", d.ID)

	count, err := mem.CountIssues(context.Background(), store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestParseImportRejectsMalformedPayloads(t *testing.T) {
	good := sampleIssue()
	goodJSON, err := ExportJSON([]models.Issue{good})
	require.NoError(t, err)

	_, err = ParseImport(goodJSON)
	require.NoError(t, err)

	bad := []struct {
		name    string
		payload string
	}{
		{"not json", "not json at all"},
		{"object not array", `{"id": "x"}`},
		{"empty array", `[]`},
		{"missing id", `[{"title": "t", "category": "Roads", "status": "Open"}]`},
		{"missing title", `[{"id": "x", "category": "Roads", "status": "Open"}]`},
		{"unknown category", `[{"id": "x", "title": "t", "category": "Parking", "status": "Open"}]`},
		{"unknown status", `[{"id": "x", "title": "t", "category": "Roads", "status": "Escalated"}]`},
		{"unknown field", `[{"id": "x", "title": "t", "category": "Roads", "status": "Open", "bogus": 1}]`},
		{"negative likes", `[{"id": "x", "title": "t", "category": "Roads", "status": "Open", "likesCount": -1}]`},
		{"negative comments", `[{"id": "x", "title": "t", "category": "Roads", "status": "Open", "commentsCount": -1}]`},
	}

	for _, tt := range bad {
		_, err := ParseImport([]byte(tt.payload))
		assert.ErrorIs(t, err, models.ErrMalformedImport, tt.name)
	}
}

func TestImportValidationBlocksWholePayload(t *testing.T) {
	// One bad record fails the import before anything is written.
	payload := `[
		{"id": "ok", "title": "fine", "category": "Roads", "status": "Open"},
		{"id": "", "title": "broken", "category": "Roads", "status": "Open"}
	]`

	_, err := ParseImport([]byte(payload))
	assert.ErrorIs(t, err, models.ErrMalformedImport)
}

func TestExportCSVQuotesEveryField(t *testing.T) {
	issue := sampleIssue()
	issue.ID = "id-1"
	issue.Title = `Pothole on "Main" street`
	issue.Address = "Main st, 5"
	issue.AuthorName = "Aigerim"
	issue.CreatedAt = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	out := string(ExportCSV([]models.Issue{issue}))

	assert.Contains(t, out, `"id","title","address","category","status","author_name","created_at"`)
	// Embedded quotes doubled, field still fully quoted.
	assert.Contains(t, out, `"Pothole on ""Main"" street"`)
	// Comma survives thanks to the quoting.
	assert.Contains(t, out, `"Main st, 5"`)
	assert.Contains(t, out, `"2026-03-01T10:00:00Z"`)

	lines := []byte(out)
	assert.Equal(t, byte('\n'), lines[len(lines)-1])
}

func TestExportFilteredUnknownFormat(t *testing.T) {
	_, err := ExportFiltered(nil, "xml")
	assert.Error(t, err)
}

func TestExportJSONEmptySet(t *testing.T) {
	payload, err := ExportJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(payload))

	// An empty export is not a valid import: the merge refuses it.
	_, err = ParseImport(payload)
	assert.ErrorIs(t, err, models.ErrMalformedImport)
}
