package service

import (
	"context"
	"fmt"
	"log"

	"aiready/internal/cache"
	"aiready/internal/model"
	"aiready/internal/repository"
)

// HistoryService maintains the append-only assessment history ledger
// used for trend tracking.
type HistoryService struct {
	historyRepo    repository.HistoryRepo
	sessionRepo    repository.SessionRepo
	readinessCache cache.ReadinessCache
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repository.HistoryRepo, sessionRepo repository.SessionRepo, readinessCache cache.ReadinessCache) *HistoryService {
	return &HistoryService{
		historyRepo:    historyRepo,
		sessionRepo:    sessionRepo,
		readinessCache: readinessCache,
	}
}

// SaveHistory appends one ledger entry with the score delta against the
// user's most recent prior attempt (0 when none). Entries are never
// updated or deleted.
func (s *HistoryService) SaveHistory(ctx context.Context, userID, sessionID string, totalScore, percentageScore int, tier model.ReadinessTier) error {
	previous, err := s.historyRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get previous entry: %w", err)
	}

	improvement := 0
	if previous != nil {
		improvement = percentageScore - previous.PercentageScore
	}

	entry := &model.HistoryEntry{
		UserID:              userID,
		SessionID:           sessionID,
		TotalScore:          totalScore,
		PercentageScore:     percentageScore,
		Tier:                tier,
		ImprovementFromPrev: improvement,
	}
	if err := s.historyRepo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// GetUserHistory returns the user's most recent entries, newest first,
// joined with each session's completion timestamp and token. History is
// a non-critical read, so any failure yields an empty list.
func (s *HistoryService) GetUserHistory(ctx context.Context, userID string, limit int) []model.HistoryView {
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.historyRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		log.Printf("history read failed for user %s: %v", userID, err)
		return []model.HistoryView{}
	}

	views := make([]model.HistoryView, 0, len(entries))
	for _, entry := range entries {
		view := model.HistoryView{
			SessionID:           entry.SessionID,
			AssessmentDate:      entry.CreatedAt,
			TotalScore:          entry.TotalScore,
			PercentageScore:     entry.PercentageScore,
			Tier:                entry.Tier,
			ImprovementFromPrev: entry.ImprovementFromPrev,
		}
		session, err := s.sessionRepo.GetByID(ctx, entry.SessionID)
		if err != nil {
			log.Printf("session join failed for history entry %s: %v", entry.ID, err)
		} else if session != nil {
			view.SessionToken = session.Token
			view.CompletedAt = session.CompletedAt
		}
		views = append(views, view)
	}
	return views
}

// GetUserRank returns the user's 1-indexed position on the readiness
// board by latest percentage, or 0 when the user has no completed
// assessment. Like history reads, this is non-critical and fails open.
func (s *HistoryService) GetUserRank(ctx context.Context, userID string) int64 {
	if s.readinessCache == nil {
		return 0
	}
	rank, err := s.readinessCache.GetRank(ctx, userID)
	if err != nil {
		log.Printf("readiness rank read failed for user %s: %v", userID, err)
		return 0
	}
	if rank < 0 {
		return 0
	}
	return rank
}
