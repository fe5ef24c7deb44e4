package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"citypulse-be/models"
)

// Memory is a map-backed IssueStore with the same contract as Mongo.
// It backs the service tests and keeps insertion order so aggregation
// tie-breaks are deterministic.
type Memory struct {
	mu       sync.Mutex
	issues   map[string]models.Issue
	order    []string
	likes    map[string]models.Like
	comments map[string][]models.Comment

	// FailWith, when set, makes every mutating call return that error
	// without touching state. Tests use it to exercise the
	// all-or-nothing batch contract.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{
		issues:   make(map[string]models.Issue),
		likes:    make(map[string]models.Like),
		comments: make(map[string][]models.Comment),
	}
}

func likeKey(userID, issueID string) string {
	return userID + "\x00" + issueID
}

func matches(issue models.Issue, f Filter) bool {
	if f.Category != "" && issue.Category != f.Category {
		return false
	}
	if f.Status != "" && issue.Status != f.Status {
		return false
	}
	if f.AuthorID != "" && issue.AuthorID != f.AuthorID {
		return false
	}
	if f.HasLocation && (issue.Latitude == 0 || issue.Longitude == 0) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(issue.Title), needle) &&
			!strings.Contains(strings.ToLower(issue.Description), needle) {
			return false
		}
	}
	return true
}

func (m *Memory) ListIssues(ctx context.Context, f Filter) ([]models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Issue
	for _, id := range m.order {
		if issue, ok := m.issues[id]; ok && matches(issue, f) {
			out = append(out, issue)
		}
	}

	switch f.Sort {
	case "oldest":
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case "likes":
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikesCount > out[j].LikesCount })
	case "comments":
		sort.SliceStable(out, func(i, j int) bool { return out[i].CommentsCount > out[j].CommentsCount })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	if f.Skip > 0 {
		if f.Skip >= int64(len(out)) {
			return nil, nil
		}
		out = out[f.Skip:]
	}
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Memory) CountIssues(ctx context.Context, f Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, issue := range m.issues {
		if matches(issue, f) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	issue, ok := m.issues[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &issue, nil
}

func (m *Memory) InsertIssue(ctx context.Context, issue *models.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, exists := m.issues[issue.ID]; !exists {
		m.order = append(m.order, issue.ID)
	}
	m.issues[issue.ID] = *issue
	return nil
}

func (m *Memory) UpdateIssue(ctx context.Context, id string, p Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	issue, ok := m.issues[id]
	if !ok {
		return models.ErrNotFound
	}
	if p.Title != nil {
		issue.Title = *p.Title
	}
	if p.Description != nil {
		issue.Description = *p.Description
	}
	if p.Category != nil {
		issue.Category = *p.Category
	}
	if p.Status != nil {
		issue.Status = *p.Status
	}
	if p.Address != nil {
		issue.Address = *p.Address
	}
	if p.ImageURL != nil {
		issue.ImageURL = p.ImageURL
	}
	if p.Latitude != nil {
		issue.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		issue.Longitude = *p.Longitude
	}
	issue.UpdatedAt = time.Now()
	m.issues[id] = issue
	return nil
}

func (m *Memory) UpdateStatusBatch(ctx context.Context, ids []string, status models.IssueStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	for _, id := range ids {
		if issue, ok := m.issues[id]; ok {
			issue.Status = status
			issue.UpdatedAt = time.Now()
			m.issues[id] = issue
		}
	}
	return nil
}

func (m *Memory) DeleteBatch(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
		delete(m.issues, id)
	}

	kept := m.order[:0]
	for _, id := range m.order {
		if !doomed[id] {
			kept = append(kept, id)
		}
	}
	m.order = kept

	for key, like := range m.likes {
		if doomed[like.IssueID] {
			delete(m.likes, key)
		}
	}
	for issueID := range m.comments {
		if doomed[issueID] {
			delete(m.comments, issueID)
		}
	}
	return nil
}

func (m *Memory) UpsertIssues(ctx context.Context, issues []models.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	for _, issue := range issues {
		if _, exists := m.issues[issue.ID]; !exists {
			m.order = append(m.order, issue.ID)
		}
		m.issues[issue.ID] = issue
	}
	return nil
}

func (m *Memory) InsertLike(ctx context.Context, userID, issueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	key := likeKey(userID, issueID)
	if _, exists := m.likes[key]; exists {
		return models.ErrDuplicateLike
	}
	m.likes[key] = models.Like{UserID: userID, IssueID: issueID, CreatedAt: time.Now()}
	return nil
}

func (m *Memory) IncrementLikeCounter(ctx context.Context, issueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	issue, ok := m.issues[issueID]
	if !ok {
		return models.ErrNotFound
	}
	issue.LikesCount++
	m.issues[issueID] = issue
	return nil
}

// LikeCount reports the number of persisted like relations for an
// issue, straight from the relation table.
func (m *Memory) LikeCount(issueID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, like := range m.likes {
		if like.IssueID == issueID {
			n++
		}
	}
	return n
}

func (m *Memory) HasLike(ctx context.Context, userID, issueID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.likes[likeKey(userID, issueID)]
	return exists, nil
}

func (m *Memory) ListComments(ctx context.Context, issueID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	thread := m.comments[issueID]
	out := make([]models.Comment, len(thread))
	copy(out, thread)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) InsertComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	m.comments[comment.IssueID] = append(m.comments[comment.IssueID], *comment)
	return nil
}

func (m *Memory) IncrementCommentCounter(ctx context.Context, issueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	issue, ok := m.issues[issueID]
	if !ok {
		return models.ErrNotFound
	}
	issue.CommentsCount++
	m.issues[issueID] = issue
	return nil
}
