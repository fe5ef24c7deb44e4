package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"citypulse-be/models"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// csvHeader is fixed; created_at serializes as RFC 3339 so spreadsheet
// exports stay machine-readable.
var csvHeader = []string{"id", "title", "address", "category", "status", "author_name", "created_at"}

// ExportFiltered serializes an issue snapshot. JSON is the canonical
// round-trip format for ImportMerge; CSV targets spreadsheet tools.
func ExportFiltered(issues []models.Issue, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportJSON(issues)
	case FormatCSV:
		return ExportCSV(issues), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportJSON renders the full field set as a pretty-printed array.
func ExportJSON(issues []models.Issue) ([]byte, error) {
	if issues == nil {
		issues = []models.Issue{}
	}
	return json.MarshalIndent(issues, "", "  ")
}

// ExportCSV renders the export columns with every field quoted and
// embedded quotes doubled. encoding/csv only quotes when it must, so
// the quoting is done by hand to keep the output stable for external
// tools.
func ExportCSV(issues []models.Issue) []byte {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for _, issue := range issues {
		writeCSVRow(&b, []string{
			issue.ID,
			issue.Title,
			issue.Address,
			string(issue.Category),
			string(issue.Status),
			issue.AuthorName,
			issue.CreatedAt.Format(time.RFC3339),
		})
	}
	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
