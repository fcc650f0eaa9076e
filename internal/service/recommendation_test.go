package service

import (
	"strings"
	"testing"

	"aiready/internal/model"
)

func TestClassifyTier(t *testing.T) {
	cases := []struct {
		percentage int
		want       model.ReadinessTier
	}{
		{0, model.TierNeedsDevelopment},
		{49, model.TierNeedsDevelopment},
		{50, model.TierLearner},
		{64, model.TierLearner},
		{65, model.TierExplorer},
		{79, model.TierExplorer},
		{80, model.TierChampion},
		{100, model.TierChampion},
	}
	for _, c := range cases {
		if got := ClassifyTier(c.percentage); got != c.want {
			t.Errorf("ClassifyTier(%d) = %q, want %q", c.percentage, got, c.want)
		}
	}
}

func TestTierMonotonicity(t *testing.T) {
	prev := -1
	for pct := 0; pct <= 100; pct++ {
		rank := ClassifyTier(pct).Rank()
		if rank < prev {
			t.Fatalf("tier rank decreased at %d%%: %d -> %d", pct, prev, rank)
		}
		prev = rank
	}
}

func TestBuildRecommendationsThresholds(t *testing.T) {
	scores := []model.CategoryScore{
		{CategoryName: "AI Tool Usage", Percentage: 85, Weight: 0.5},
		{CategoryName: "Data Literacy", Percentage: 70, Weight: 0.3},
		{CategoryName: "AI Ethics & Safety", Percentage: 40, Weight: 0.2},
	}

	rec := BuildRecommendations(72, scores)

	if len(rec.Strengths) != 2 {
		t.Errorf("got %d strengths, want 2 (>= 70%%)", len(rec.Strengths))
	}
	if len(rec.ImprovementAreas) != 1 {
		t.Errorf("got %d improvement areas, want 1 (< 50%%)", len(rec.ImprovementAreas))
	}
	if len(rec.NextSteps) != 5 {
		t.Errorf("got %d next steps, want 5", len(rec.NextSteps))
	}
	if rec.TierDescription == "" {
		t.Error("TierDescription is empty")
	}
	if !strings.Contains(rec.Message, "72%") {
		t.Errorf("message %q does not mention the score", rec.Message)
	}
	if !strings.Contains(rec.Message, string(model.TierExplorer)) {
		t.Errorf("message %q does not mention the tier", rec.Message)
	}
}

func TestBuildRecommendationsUnknownCategoryFallback(t *testing.T) {
	scores := []model.CategoryScore{
		{CategoryName: "Quantum Vibes", Percentage: 90},
		{CategoryName: "Time Travel", Percentage: 10},
	}

	rec := BuildRecommendations(50, scores)

	if len(rec.Strengths) != 1 || rec.Strengths[0] != "Strong Quantum Vibes" {
		t.Errorf("Strengths = %v, want generic fallback phrase", rec.Strengths)
	}
	if len(rec.ImprovementAreas) != 1 || rec.ImprovementAreas[0] != "Develop Time Travel" {
		t.Errorf("ImprovementAreas = %v, want generic fallback phrase", rec.ImprovementAreas)
	}
}

func TestBuildRecommendationsEmptyListsAreValid(t *testing.T) {
	scores := []model.CategoryScore{
		{CategoryName: "AI Tool Usage", Percentage: 60},
	}

	rec := BuildRecommendations(60, scores)

	if rec.Strengths == nil || len(rec.Strengths) != 0 {
		t.Errorf("Strengths = %v, want empty non-nil list", rec.Strengths)
	}
	if rec.ImprovementAreas == nil || len(rec.ImprovementAreas) != 0 {
		t.Errorf("ImprovementAreas = %v, want empty non-nil list", rec.ImprovementAreas)
	}
	if len(rec.NextSteps) != 5 {
		t.Errorf("got %d next steps, want 5", len(rec.NextSteps))
	}
}
