package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"aiready/internal/cache"
	"aiready/internal/model"
	"aiready/internal/repository"
	"aiready/internal/scoring"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionCompleted = errors.New("session already completed")
)

// AssessmentService runs the assessment lifecycle: start, per-question
// scoring, completion with tier classification, and the best-effort
// side effects around it. All scores are recomputed server-side from
// persisted responses; client-reported totals are never trusted.
type AssessmentService struct {
	sessionRepo    repository.SessionRepo
	responseRepo   repository.ResponseRepo
	questionRepo   repository.QuestionRepo
	historySvc     *HistoryService
	readinessCache cache.ReadinessCache
	scoringMap     *scoring.Map

	now func() time.Time
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	sessionRepo repository.SessionRepo,
	responseRepo repository.ResponseRepo,
	questionRepo repository.QuestionRepo,
	historySvc *HistoryService,
	readinessCache cache.ReadinessCache,
	scoringMap *scoring.Map,
) *AssessmentService {
	return &AssessmentService{
		sessionRepo:    sessionRepo,
		responseRepo:   responseRepo,
		questionRepo:   questionRepo,
		historySvc:     historySvc,
		readinessCache: readinessCache,
		scoringMap:     scoringMap,
		now:            time.Now,
	}
}

// StartSession creates a new in-progress session with a fresh token.
// Nothing prevents a user from holding several in-progress sessions.
func (s *AssessmentService) StartSession(ctx context.Context, userID string) (*model.Session, error) {
	session := &model.Session{
		UserID:    userID,
		Token:     uuid.New().String(),
		Status:    model.SessionInProgress,
		StartedAt: s.now(),
	}

	if _, err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// RecordResponse scores a single answer and upserts it on the
// (sessionID, questionID) pair; re-answering overwrites in place.
// A question text missing from the scoring map degrades to zero points
// with a logged warning, never a failed request.
func (s *AssessmentService) RecordResponse(ctx context.Context, sessionID, questionID, userAnswer string, timeSpentSec int) (*model.RecordResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	weight := 0.0
	category, err := s.questionRepo.GetCategoryByID(ctx, question.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category != nil {
		weight = category.Weight
	}

	points := s.scoreAnswer(question, userAnswer)

	// Clients report elapsed time; a skewed clock can send it negative.
	if timeSpentSec < 0 {
		timeSpentSec = 0
	}

	response := &model.Response{
		SessionID:    sessionID,
		QuestionID:   questionID,
		UserAnswer:   userAnswer,
		PointsEarned: points,
		TimeSpentSec: timeSpentSec,
		AnsweredAt:   s.now(),
	}
	if err := s.responseRepo.Upsert(ctx, response); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	return &model.RecordResult{
		PointsEarned:   points,
		MaxPoints:      model.MaxPointsPerQuestion,
		CategoryWeight: weight,
	}, nil
}

// scoreAnswer resolves points for an answer. Only multiple_choice is
// scored; everything else is recorded for completeness only.
func (s *AssessmentService) scoreAnswer(question *model.Question, userAnswer string) int {
	if question.Type != model.QuestionTypeMultipleChoice {
		return 0
	}

	optionIndex := -1
	for i, opt := range question.Options {
		if opt == userAnswer {
			optionIndex = i
			break
		}
	}
	if optionIndex < 0 {
		return 0
	}

	points, ok := s.scoringMap.PointsFor(question.Text, optionIndex)
	if !ok {
		log.Printf("scoring map has no entry for question %q option %d, awarding 0 points", question.Text, optionIndex)
		return 0
	}
	if points < 0 {
		return 0
	}
	if points > model.MaxPointsPerQuestion {
		return model.MaxPointsPerQuestion
	}
	return points
}

// CalculateCategoryScores aggregates a session's responses by category.
// Categories with no responses are omitted, not zero-filled.
func (s *AssessmentService) CalculateCategoryScores(ctx context.Context, sessionID string) ([]model.CategoryScore, error) {
	responses, err := s.responseRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get responses: %w", err)
	}
	return s.aggregateCategoryScores(ctx, responses)
}

func (s *AssessmentService) aggregateCategoryScores(ctx context.Context, responses []*model.Response) ([]model.CategoryScore, error) {
	type bucket struct {
		category model.Category
		raw      int
		count    int
	}
	buckets := map[string]*bucket{}
	categoriesByID := map[string]*model.Category{}

	for _, resp := range responses {
		question, err := s.questionRepo.GetByID(ctx, resp.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("get question: %w", err)
		}
		if question == nil {
			log.Printf("response references unknown question %s, skipping", resp.QuestionID)
			continue
		}

		category, found := categoriesByID[question.CategoryID]
		if !found {
			category, err = s.questionRepo.GetCategoryByID(ctx, question.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("get category: %w", err)
			}
			categoriesByID[question.CategoryID] = category
		}
		if category == nil {
			log.Printf("question %s references unknown category %s, skipping", question.ID, question.CategoryID)
			continue
		}

		b, found := buckets[category.ID]
		if !found {
			b = &bucket{category: *category}
			buckets[category.ID] = b
		}
		b.raw += resp.PointsEarned
		b.count++
	}

	scores := make([]model.CategoryScore, 0, len(buckets))
	for _, b := range buckets {
		maxScore := b.count * model.MaxPointsPerQuestion
		percentage := 0
		if maxScore > 0 {
			percentage = int(math.Round(float64(b.raw) / float64(maxScore) * 100))
			if percentage > 100 {
				percentage = 100
			}
		}
		scores = append(scores, model.CategoryScore{
			CategoryID:   b.category.ID,
			CategoryName: b.category.Name,
			RawScore:     b.raw,
			MaxScore:     maxScore,
			Percentage:   percentage,
			Weight:       b.category.Weight,
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].CategoryName < scores[j].CategoryName })
	return scores, nil
}

// CompleteAssessment computes the weighted score, classifies the tier,
// marks the session completed (one-way), and runs the best-effort side
// effects: history append and readiness board update. Side-effect
// failures are logged and reported via HistorySaved, never rolled back.
func (s *AssessmentService) CompleteAssessment(ctx context.Context, sessionID string) (*model.AssessmentResults, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	responses, err := s.responseRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get responses: %w", err)
	}

	categoryScores, err := s.aggregateCategoryScores(ctx, responses)
	if err != nil {
		return nil, err
	}

	// Weighted sum over categories present. Skipped categories drop out
	// without renormalizing remaining weights.
	weightedTotal := 0.0
	for _, cs := range categoryScores {
		weightedTotal += float64(cs.Percentage) * cs.Weight
	}
	percentage := int(math.Round(weightedTotal))
	if percentage > 100 {
		percentage = 100
	}

	totalScore := 0
	for _, resp := range responses {
		totalScore += resp.PointsEarned
	}
	maxPossible := len(responses) * model.MaxPointsPerQuestion

	tier := ClassifyTier(percentage)
	completedAt := s.now()

	session.Status = model.SessionCompleted
	session.CompletedAt = &completedAt
	session.TotalScore = totalScore
	session.MaxPossibleScore = maxPossible
	session.PercentageScore = percentage
	session.Tier = tier

	if err := s.sessionRepo.MarkCompleted(ctx, session); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	historySaved := true
	if err := s.historySvc.SaveHistory(ctx, session.UserID, sessionID, totalScore, percentage, tier); err != nil {
		log.Printf("history save failed for session %s: %v", sessionID, err)
		historySaved = false
	}

	if s.readinessCache != nil {
		if err := s.readinessCache.UpdateScore(ctx, session.UserID, percentage); err != nil {
			log.Printf("readiness board update failed for user %s: %v", session.UserID, err)
		}
	}

	return &model.AssessmentResults{
		SessionID:         sessionID,
		TotalScore:        totalScore,
		MaxPossibleScore:  maxPossible,
		PercentageScore:   percentage,
		Tier:              tier,
		CategoryScores:    categoryScores,
		Recommendations:   BuildRecommendations(percentage, categoryScores),
		QuestionsAnswered: len(responses),
		HistorySaved:      historySaved,
	}, nil
}

// GetSession returns the session detail row.
func (s *AssessmentService) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// CancelSession hard-deletes the session's responses, then the session.
func (s *AssessmentService) CancelSession(ctx context.Context, sessionID string) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}

	if err := s.responseRepo.DeleteBySessionID(ctx, sessionID); err != nil {
		return fmt.Errorf("delete responses: %w", err)
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
