package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"aiready/internal/cache"
	"aiready/internal/model"
)

// In-memory repository stubs shared by the service tests.

type stubQuestionRepo struct {
	categories map[string]*model.Category
	questions  map[string]*model.Question
}

func (r *stubQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	return r.questions[id], nil
}

func (r *stubQuestionRepo) GetActiveByCategory(_ context.Context, categoryID string) ([]*model.Question, error) {
	var ids []string
	for id, q := range r.questions {
		if q.CategoryID == categoryID && q.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]*model.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.questions[id])
	}
	return out, nil
}

func (r *stubQuestionRepo) ListCategories(_ context.Context) ([]*model.Category, error) {
	var ids []string
	for id := range r.categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*model.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.categories[id])
	}
	return out, nil
}

func (r *stubQuestionRepo) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	return r.categories[id], nil
}

type stubSessionRepo struct {
	sessions map[string]*model.Session
	nextID   int
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: map[string]*model.Session{}}
}

func (r *stubSessionRepo) Create(_ context.Context, session *model.Session) (string, error) {
	if session.ID == "" {
		r.nextID++
		session.ID = fmt.Sprintf("sess%d", r.nextID)
	}
	cp := *session
	r.sessions[session.ID] = &cp
	return session.ID, nil
}

func (r *stubSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *stubSessionRepo) MarkCompleted(_ context.Context, session *model.Session) error {
	stored, ok := r.sessions[session.ID]
	if !ok {
		return fmt.Errorf("session %s not stored", session.ID)
	}
	stored.Status = session.Status
	stored.CompletedAt = session.CompletedAt
	stored.TotalScore = session.TotalScore
	stored.MaxPossibleScore = session.MaxPossibleScore
	stored.PercentageScore = session.PercentageScore
	stored.Tier = session.Tier
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type stubResponseRepo struct {
	responses []*model.Response
	upsertErr error
}

func (r *stubResponseRepo) Upsert(_ context.Context, response *model.Response) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for _, existing := range r.responses {
		if existing.SessionID == response.SessionID && existing.QuestionID == response.QuestionID {
			existing.UserAnswer = response.UserAnswer
			existing.PointsEarned = response.PointsEarned
			existing.TimeSpentSec = response.TimeSpentSec
			existing.AnsweredAt = response.AnsweredAt
			return nil
		}
	}
	cp := *response
	cp.ID = fmt.Sprintf("resp%d", len(r.responses)+1)
	r.responses = append(r.responses, &cp)
	return nil
}

func (r *stubResponseRepo) GetBySessionID(_ context.Context, sessionID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, resp := range r.responses {
		if resp.SessionID == sessionID {
			cp := *resp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubResponseRepo) DeleteBySessionID(_ context.Context, sessionID string) error {
	kept := r.responses[:0]
	for _, resp := range r.responses {
		if resp.SessionID != sessionID {
			kept = append(kept, resp)
		}
	}
	r.responses = kept
	return nil
}

type stubHistoryRepo struct {
	entries   []*model.HistoryEntry
	insertErr error
	readErr   error
	clock     time.Time
}

func (r *stubHistoryRepo) Insert(_ context.Context, entry *model.HistoryEntry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	cp := *entry
	cp.ID = fmt.Sprintf("hist%d", len(r.entries)+1)
	if r.clock.IsZero() {
		r.clock = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	r.clock = r.clock.Add(time.Minute)
	cp.CreatedAt = r.clock
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *stubHistoryRepo) GetLatestByUser(_ context.Context, userID string) (*model.HistoryEntry, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			cp := *r.entries[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubHistoryRepo) GetByUser(_ context.Context, userID string, limit int) ([]*model.HistoryEntry, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	var out []*model.HistoryEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubReadinessCache struct {
	scores  map[string]int
	ranks   map[string]int64
	rankErr error
}

func newStubReadinessCache() *stubReadinessCache {
	return &stubReadinessCache{scores: map[string]int{}, ranks: map[string]int64{}}
}

func (c *stubReadinessCache) UpdateScore(_ context.Context, userID string, percentage int) error {
	c.scores[userID] = percentage
	return nil
}

func (c *stubReadinessCache) GetTop(_ context.Context, limit int) ([]cache.BoardEntry, error) {
	return nil, nil
}

func (c *stubReadinessCache) GetRank(_ context.Context, userID string) (int64, error) {
	if c.rankErr != nil {
		return 0, c.rankErr
	}
	rank, ok := c.ranks[userID]
	if !ok {
		return -1, nil
	}
	return rank, nil
}
