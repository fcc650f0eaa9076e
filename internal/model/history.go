package model

import "time"

// HistoryEntry is one row of the append-only assessment ledger.
type HistoryEntry struct {
	ID                  string        `json:"id" bson:"_id,omitempty"`
	UserID              string        `json:"userId" bson:"userId"`
	SessionID           string        `json:"sessionId" bson:"sessionId"`
	TotalScore          int           `json:"totalScore" bson:"totalScore"`
	PercentageScore     int           `json:"percentageScore" bson:"percentageScore"`
	Tier                ReadinessTier `json:"tier" bson:"tier"`
	ImprovementFromPrev int           `json:"improvementFromPrevious" bson:"improvementFromPrevious"`
	CreatedAt           time.Time     `json:"createdAt" bson:"createdAt"`
}

// HistoryView is the client-facing history row, joined with the
// session's completion timestamp and token.
type HistoryView struct {
	SessionID           string        `json:"sessionId"`
	SessionToken        string        `json:"sessionToken"`
	AssessmentDate      time.Time     `json:"assessmentDate"`
	CompletedAt         *time.Time    `json:"completedAt,omitempty"`
	TotalScore          int           `json:"totalScore"`
	PercentageScore     int           `json:"percentageScore"`
	Tier                ReadinessTier `json:"tier"`
	ImprovementFromPrev int           `json:"improvementFromPrevious"`
}
