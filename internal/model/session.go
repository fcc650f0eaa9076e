package model

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Session is one assessment attempt. Score fields stay zero until
// completion, which is a one-way transition.
type Session struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	UserID           string        `json:"userId" bson:"userId"`
	Token            string        `json:"token" bson:"token"`
	Status           SessionStatus `json:"status" bson:"status"`
	StartedAt        time.Time     `json:"startedAt" bson:"startedAt"`
	CompletedAt      *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	TotalScore       int           `json:"totalScore" bson:"totalScore"`
	MaxPossibleScore int           `json:"maxPossibleScore" bson:"maxPossibleScore"`
	PercentageScore  int           `json:"percentageScore" bson:"percentageScore"`
	Tier             ReadinessTier `json:"tier,omitempty" bson:"tier,omitempty"`
}
