package model

// QuestionType defines the type of assessment question
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice" // Scored via the scoring map
	QuestionTypeScale          QuestionType = "scale"           // Informational rating, not scored
	QuestionTypeText           QuestionType = "text"            // Free text, not scored
)

// Category is a weighted group of assessment questions. Weights are
// fractions and sum to 1.0 across the active catalog.
type Category struct {
	ID     string  `json:"id" bson:"_id,omitempty"`
	Name   string  `json:"name" bson:"name"`
	Weight float64 `json:"weight" bson:"weight"`
}

// Question is one catalog entry. Text doubles as the scoring-map key,
// so it must be unique among active questions.
type Question struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	CategoryID string       `json:"categoryId" bson:"categoryId"`
	Text       string       `json:"text" bson:"text"`
	Type       QuestionType `json:"type" bson:"type"`
	Options    []string     `json:"options,omitempty" bson:"options,omitempty"`
	ScaleMin   int          `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"` // scale only
	ScaleMax   int          `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"` // scale only
	Difficulty string       `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Active     bool         `json:"active" bson:"active"`
}

// QuestionProjection is the client-facing view of a question. It carries
// category metadata but never the per-option point values.
type QuestionProjection struct {
	ID             string       `json:"id"`
	CategoryID     string       `json:"categoryId"`
	CategoryName   string       `json:"categoryName"`
	CategoryWeight float64      `json:"categoryWeight"`
	Prompt         string       `json:"prompt"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	ScaleMin       int          `json:"scaleMin,omitempty"`
	ScaleMax       int          `json:"scaleMax,omitempty"`
	Difficulty     string       `json:"difficulty,omitempty"`
}
