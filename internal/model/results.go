package model

// ReadinessTier is one of four ordered labels summarizing overall performance
type ReadinessTier string

const (
	TierChampion         ReadinessTier = "AI Champion"
	TierExplorer         ReadinessTier = "AI Explorer"
	TierLearner          ReadinessTier = "AI Learner"
	TierNeedsDevelopment ReadinessTier = "Needs Development"
)

// Rank orders tiers from weakest (0) to strongest (3).
func (t ReadinessTier) Rank() int {
	switch t {
	case TierChampion:
		return 3
	case TierExplorer:
		return 2
	case TierLearner:
		return 1
	default:
		return 0
	}
}

// CategoryScore is the per-category aggregate derived from a session's
// responses. Percentage is an integer in [0, 100].
type CategoryScore struct {
	CategoryID   string  `json:"categoryId" bson:"categoryId"`
	CategoryName string  `json:"categoryName" bson:"categoryName"`
	RawScore     int     `json:"rawScore" bson:"rawScore"`
	MaxScore     int     `json:"maxScore" bson:"maxScore"`
	Percentage   int     `json:"percentage" bson:"percentage"`
	Weight       float64 `json:"weight" bson:"weight"`
}

// Recommendations is the curated output built from tier and category scores
type Recommendations struct {
	TierDescription  string   `json:"tierDescription"`
	NextSteps        []string `json:"nextSteps"`
	Strengths        []string `json:"strengths"`
	ImprovementAreas []string `json:"improvementAreas"`
	Message          string   `json:"message"`
}

// AssessmentResults is the full completion payload. HistorySaved reports
// whether the best-effort history append succeeded; the primary completion
// is valid either way.
type AssessmentResults struct {
	SessionID         string          `json:"sessionId"`
	TotalScore        int             `json:"totalScore"`
	MaxPossibleScore  int             `json:"maxPossibleScore"`
	PercentageScore   int             `json:"percentageScore"`
	Tier              ReadinessTier   `json:"tier"`
	CategoryScores    []CategoryScore `json:"categoryScores"`
	Recommendations   Recommendations `json:"recommendations"`
	QuestionsAnswered int             `json:"questionsAnswered"`
	HistorySaved      bool            `json:"historySaved"`
}

// RecordResult is returned per recorded answer so clients can keep a
// running total; the server never trusts client-side totals.
type RecordResult struct {
	PointsEarned   int     `json:"pointsEarned"`
	MaxPoints      int     `json:"maxPoints"`
	CategoryWeight float64 `json:"categoryWeight"`
}
