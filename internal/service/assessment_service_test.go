package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"aiready/internal/model"
	"aiready/internal/scoring"
)

func testCatalogRepo() *stubQuestionRepo {
	return &stubQuestionRepo{
		categories: map[string]*model.Category{
			"catA": {ID: "catA", Name: "AI Tool Usage", Weight: 0.5},
			"catB": {ID: "catB", Name: "Data Literacy", Weight: 0.5},
		},
		questions: map[string]*model.Question{
			"q1": {ID: "q1", CategoryID: "catA", Text: "Do you use AI tools weekly?",
				Type: model.QuestionTypeMultipleChoice, Options: []string{"Never", "Sometimes", "Often"}, Active: true},
			"q2": {ID: "q2", CategoryID: "catA", Text: "Have you automated a task?",
				Type: model.QuestionTypeMultipleChoice, Options: []string{"No", "Once", "Regularly"}, Active: true},
			"q3": {ID: "q3", CategoryID: "catB", Text: "Can you read a dashboard?",
				Type: model.QuestionTypeMultipleChoice, Options: []string{"No", "Somewhat", "Yes"}, Active: true},
			"q4": {ID: "q4", CategoryID: "catB", Text: "Do you work with datasets?",
				Type: model.QuestionTypeMultipleChoice, Options: []string{"No", "Sometimes", "Often"}, Active: true},
			"q5": {ID: "q5", CategoryID: "catB", Text: "How much do you trust AI output?",
				Type: model.QuestionTypeScale, ScaleMin: 1, ScaleMax: 10, Active: true},
		},
	}
}

func testScoringMap() *scoring.Map {
	return scoring.NewFromPoints(map[string][]int{
		"Do you use AI tools weekly?": {0, 3, 5},
		"Have you automated a task?":  {0, 3, 5},
		"Can you read a dashboard?":   {0, 3, 5},
		"Do you work with datasets?":  {0, 3, 5},
	})
}

func newTestService(scoringMap *scoring.Map) (*AssessmentService, *stubSessionRepo, *stubResponseRepo, *stubHistoryRepo) {
	sessionRepo := newStubSessionRepo()
	responseRepo := &stubResponseRepo{}
	historyRepo := &stubHistoryRepo{}
	historySvc := NewHistoryService(historyRepo, sessionRepo, nil)
	svc := NewAssessmentService(sessionRepo, responseRepo, testCatalogRepo(), historySvc, nil, scoringMap)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc, sessionRepo, responseRepo, historyRepo
}

func mustStart(t *testing.T, svc *AssessmentService, userID string) *model.Session {
	t.Helper()
	session, err := svc.StartSession(context.Background(), userID)
	if err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	return session
}

func TestStartSession(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())

	session := mustStart(t, svc, "alice@company.com")
	if session.ID == "" {
		t.Error("session ID not assigned")
	}
	if session.Token == "" {
		t.Error("session token not generated")
	}
	if session.Status != model.SessionInProgress {
		t.Errorf("status = %q, want %q", session.Status, model.SessionInProgress)
	}
}

func TestRecordResponsePoints(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")

	result, err := svc.RecordResponse(context.Background(), session.ID, "q1", "Often", 12)
	if err != nil {
		t.Fatalf("RecordResponse returned error: %v", err)
	}
	if result.PointsEarned != 5 {
		t.Errorf("PointsEarned = %d, want 5", result.PointsEarned)
	}
	if result.MaxPoints != 5 {
		t.Errorf("MaxPoints = %d, want 5", result.MaxPoints)
	}
	if result.CategoryWeight != 0.5 {
		t.Errorf("CategoryWeight = %v, want 0.5", result.CategoryWeight)
	}
}

func TestRecordResponseScoringMapMiss(t *testing.T) {
	// Map has no entry for q1's text: request still succeeds with 0 points
	svc, _, responseRepo, _ := newTestService(scoring.NewFromPoints(map[string][]int{}))
	session := mustStart(t, svc, "alice@company.com")

	result, err := svc.RecordResponse(context.Background(), session.ID, "q1", "Often", 12)
	if err != nil {
		t.Fatalf("RecordResponse returned error: %v", err)
	}
	if result.PointsEarned != 0 {
		t.Errorf("PointsEarned = %d, want 0", result.PointsEarned)
	}
	if len(responseRepo.responses) != 1 {
		t.Errorf("stored %d responses, want 1", len(responseRepo.responses))
	}
}

func TestRecordResponseNegativeTimeClamped(t *testing.T) {
	svc, _, responseRepo, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")

	if _, err := svc.RecordResponse(context.Background(), session.ID, "q1", "Often", -30); err != nil {
		t.Fatalf("RecordResponse returned error: %v", err)
	}
	if got := responseRepo.responses[0].TimeSpentSec; got != 0 {
		t.Errorf("stored TimeSpentSec = %d, want 0 for negative input", got)
	}
}

func TestRecordResponseAnswerNotInOptions(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")

	result, err := svc.RecordResponse(context.Background(), session.ID, "q1", "Constantly", 12)
	if err != nil {
		t.Fatalf("RecordResponse returned error: %v", err)
	}
	if result.PointsEarned != 0 {
		t.Errorf("PointsEarned = %d, want 0", result.PointsEarned)
	}
}

func TestRecordResponseUnscoredType(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")

	result, err := svc.RecordResponse(context.Background(), session.ID, "q5", "7", 5)
	if err != nil {
		t.Fatalf("RecordResponse returned error: %v", err)
	}
	if result.PointsEarned != 0 {
		t.Errorf("PointsEarned = %d, want 0 for scale question", result.PointsEarned)
	}
}

func TestRecordResponseUnknownQuestion(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")

	_, err := svc.RecordResponse(context.Background(), session.ID, "missing", "Often", 12)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestRecordResponseUnknownSession(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())

	_, err := svc.RecordResponse(context.Background(), "missing", "q1", "Often", 12)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRecordResponsePointsClamped(t *testing.T) {
	svc, _, _, _ := newTestService(scoring.NewFromPoints(map[string][]int{
		"Do you use AI tools weekly?": {0, 3, 9},
	}))
	session := mustStart(t, svc, "alice@company.com")

	result, err := svc.RecordResponse(context.Background(), session.ID, "q1", "Often", 12)
	if err != nil {
		t.Fatalf("RecordResponse returned error: %v", err)
	}
	if result.PointsEarned != model.MaxPointsPerQuestion {
		t.Errorf("PointsEarned = %d, want clamped to %d", result.PointsEarned, model.MaxPointsPerQuestion)
	}
}

func TestIdempotentReanswer(t *testing.T) {
	svc, _, responseRepo, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()

	if _, err := svc.RecordResponse(ctx, session.ID, "q1", "Never", 10); err != nil {
		t.Fatalf("first RecordResponse: %v", err)
	}
	if _, err := svc.RecordResponse(ctx, session.ID, "q1", "Often", 20); err != nil {
		t.Fatalf("second RecordResponse: %v", err)
	}

	if len(responseRepo.responses) != 1 {
		t.Fatalf("stored %d responses, want 1", len(responseRepo.responses))
	}
	if responseRepo.responses[0].UserAnswer != "Often" {
		t.Errorf("stored answer = %q, want latest %q", responseRepo.responses[0].UserAnswer, "Often")
	}

	scores, err := svc.CalculateCategoryScores(ctx, session.ID)
	if err != nil {
		t.Fatalf("CalculateCategoryScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d category scores, want 1", len(scores))
	}
	if scores[0].RawScore != 5 {
		t.Errorf("RawScore = %d, want 5 (latest answer only)", scores[0].RawScore)
	}
}

func TestCalculateCategoryScores(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()

	// catA: 5 + 3 = 8/10, catB: 3 + 0 = 3/10
	answers := []struct{ q, a string }{
		{"q1", "Often"}, {"q2", "Once"},
		{"q3", "Somewhat"}, {"q4", "No"},
	}
	for _, ans := range answers {
		if _, err := svc.RecordResponse(ctx, session.ID, ans.q, ans.a, 10); err != nil {
			t.Fatalf("RecordResponse(%s): %v", ans.q, err)
		}
	}

	scores, err := svc.CalculateCategoryScores(ctx, session.ID)
	if err != nil {
		t.Fatalf("CalculateCategoryScores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d category scores, want 2", len(scores))
	}

	// sorted by category name: AI Tool Usage, Data Literacy
	if scores[0].RawScore != 8 || scores[0].MaxScore != 10 || scores[0].Percentage != 80 {
		t.Errorf("catA = %d/%d (%d%%), want 8/10 (80%%)", scores[0].RawScore, scores[0].MaxScore, scores[0].Percentage)
	}
	if scores[1].RawScore != 3 || scores[1].MaxScore != 10 || scores[1].Percentage != 30 {
		t.Errorf("catB = %d/%d (%d%%), want 3/10 (30%%)", scores[1].RawScore, scores[1].MaxScore, scores[1].Percentage)
	}

	for _, cs := range scores {
		if cs.Percentage < 0 || cs.Percentage > 100 {
			t.Errorf("category %s percentage %d out of bounds", cs.CategoryName, cs.Percentage)
		}
	}
}

func TestCompleteAssessmentWeightedScore(t *testing.T) {
	svc, sessionRepo, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()

	// 80% × 0.5 + 30% × 0.5 = 55 -> AI Learner
	answers := []struct{ q, a string }{
		{"q1", "Often"}, {"q2", "Once"},
		{"q3", "Somewhat"}, {"q4", "No"},
	}
	for _, ans := range answers {
		if _, err := svc.RecordResponse(ctx, session.ID, ans.q, ans.a, 10); err != nil {
			t.Fatalf("RecordResponse(%s): %v", ans.q, err)
		}
	}

	results, err := svc.CompleteAssessment(ctx, session.ID)
	if err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}

	if results.PercentageScore != 55 {
		t.Errorf("PercentageScore = %d, want 55", results.PercentageScore)
	}
	if results.Tier != model.TierLearner {
		t.Errorf("Tier = %q, want %q", results.Tier, model.TierLearner)
	}
	if results.TotalScore != 11 {
		t.Errorf("TotalScore = %d, want 11", results.TotalScore)
	}
	if results.MaxPossibleScore != 20 {
		t.Errorf("MaxPossibleScore = %d, want 20", results.MaxPossibleScore)
	}
	if results.QuestionsAnswered != 4 {
		t.Errorf("QuestionsAnswered = %d, want 4", results.QuestionsAnswered)
	}
	if !results.HistorySaved {
		t.Error("HistorySaved = false, want true")
	}

	stored, _ := sessionRepo.GetByID(ctx, session.ID)
	if stored.Status != model.SessionCompleted {
		t.Errorf("stored status = %q, want completed", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Error("stored CompletedAt is nil")
	}
	if stored.PercentageScore != 55 || stored.Tier != model.TierLearner {
		t.Errorf("stored score/tier = %d/%q, want 55/%q", stored.PercentageScore, stored.Tier, model.TierLearner)
	}
}

func TestCompleteAssessmentSkippedCategoryNotRenormalized(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()

	// Only catA answered (100%); catB's 0.5 weight drops out of the sum
	if _, err := svc.RecordResponse(ctx, session.ID, "q1", "Often", 10); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}
	if _, err := svc.RecordResponse(ctx, session.ID, "q2", "Regularly", 10); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}

	results, err := svc.CompleteAssessment(ctx, session.ID)
	if err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}
	if results.PercentageScore != 50 {
		t.Errorf("PercentageScore = %d, want 50 (100%% × 0.5, no renormalization)", results.PercentageScore)
	}
}

func TestCompleteAssessmentNoResponses(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")

	results, err := svc.CompleteAssessment(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}
	if results.PercentageScore != 0 {
		t.Errorf("PercentageScore = %d, want 0", results.PercentageScore)
	}
	if results.Tier != model.TierNeedsDevelopment {
		t.Errorf("Tier = %q, want %q", results.Tier, model.TierNeedsDevelopment)
	}
}

func TestCompleteAssessmentOneWay(t *testing.T) {
	svc, _, _, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()

	if _, err := svc.CompleteAssessment(ctx, session.ID); err != nil {
		t.Fatalf("first CompleteAssessment: %v", err)
	}
	if _, err := svc.CompleteAssessment(ctx, session.ID); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("second complete err = %v, want ErrSessionCompleted", err)
	}
	if _, err := svc.RecordResponse(ctx, session.ID, "q1", "Often", 5); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("record after complete err = %v, want ErrSessionCompleted", err)
	}
}

func TestCompleteAssessmentHistoryFailureIsBestEffort(t *testing.T) {
	sessionRepo := newStubSessionRepo()
	responseRepo := &stubResponseRepo{}
	historyRepo := &stubHistoryRepo{insertErr: errors.New("mongo down")}
	historySvc := NewHistoryService(historyRepo, sessionRepo, nil)
	svc := NewAssessmentService(sessionRepo, responseRepo, testCatalogRepo(), historySvc, nil, testScoringMap())

	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()
	if _, err := svc.RecordResponse(ctx, session.ID, "q1", "Often", 10); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}

	results, err := svc.CompleteAssessment(ctx, session.ID)
	if err != nil {
		t.Fatalf("CompleteAssessment returned error despite best-effort history: %v", err)
	}
	if results.HistorySaved {
		t.Error("HistorySaved = true, want false when history write fails")
	}

	stored, _ := sessionRepo.GetByID(ctx, session.ID)
	if stored.Status != model.SessionCompleted {
		t.Error("session not completed despite history failure")
	}
}

func TestCancelSession(t *testing.T) {
	svc, sessionRepo, responseRepo, _ := newTestService(testScoringMap())
	session := mustStart(t, svc, "alice@company.com")
	ctx := context.Background()

	if _, err := svc.RecordResponse(ctx, session.ID, "q1", "Often", 10); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}

	if err := svc.CancelSession(ctx, session.ID); err != nil {
		t.Fatalf("CancelSession: %v", err)
	}
	if len(responseRepo.responses) != 0 {
		t.Errorf("responses remain after cancel: %d", len(responseRepo.responses))
	}
	if stored, _ := sessionRepo.GetByID(ctx, session.ID); stored != nil {
		t.Error("session row remains after cancel")
	}

	if err := svc.CancelSession(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("cancel of deleted session err = %v, want ErrSessionNotFound", err)
	}
}
