package model

import "time"

// MaxPointsPerQuestion is the fixed ceiling for a single question,
// regardless of category weight.
const MaxPointsPerQuestion = 5

// Response is a recorded answer within a session. (SessionID, QuestionID)
// identifies at most one row; re-answering overwrites in place.
type Response struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	SessionID    string    `json:"sessionId" bson:"sessionId"`
	QuestionID   string    `json:"questionId" bson:"questionId"`
	UserAnswer   string    `json:"userAnswer" bson:"userAnswer"`
	PointsEarned int       `json:"pointsEarned" bson:"pointsEarned"`
	TimeSpentSec int       `json:"timeSpentSec" bson:"timeSpentSec"`
	AnsweredAt   time.Time `json:"answeredAt" bson:"answeredAt"`
}
